package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasker-api/domain"
)

const requestBodyMaxSize = 1 << 20

// Register wires up all routes on the provided Echo instance.
func Register(e *echo.Echo, store Storage, logger *log.Logger) {
	e.Renderer = NewRenderer()
	e.Use(GzipRequestMiddleware())

	e.GET("/healthz", healthz())

	e.GET("/api/tasks", listTasks(store, logger))
	e.POST("/api/tasks", createTask(store))
	e.GET("/api/tasks/:id", getTask(store))
	e.PATCH("/api/tasks/:id", updateTask(store))
	e.PATCH("/api/tasks/:id/status", moveTask(store))
	e.DELETE("/api/tasks/:id", deleteTask(store))
	e.GET("/api/board", getBoard(store, logger))
	e.GET("/api/analysis", getAnalysis(store))

	e.GET("/", index(store, logger))
	e.GET("/partials/board", boardPartial(store, logger))
	e.GET("/partials/analysis", analysisPartial(store))
	e.GET("/tasks/:id/analysis", taskAnalysisPartial(store))
	e.POST("/tasks", createTaskFromForm(store, logger))
	e.PATCH("/tasks/:id/status", moveTaskFromForm(store, logger))

	e.StaticFS("/static", staticAssets())
}

type tasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

type boardResponse struct {
	Columns map[domain.Status][]domain.Task `json:"columns"`
}

// storeErrorResponse maps store errors onto 4xx responses; anything untyped
// is a 500.
func storeErrorResponse(c echo.Context, err error) error {
	var nf NotFoundError
	if errors.As(err, &nf) {
		return c.String(http.StatusNotFound, nf.Error())
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		return c.String(http.StatusBadRequest, ve.Error())
	}
	c.Logger().Error(err)
	return c.String(http.StatusInternalServerError, err.Error())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

func listTasks(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, "/api/tasks", logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := store.ListTasks(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}
		metrics.SetTasksReturned(len(tasks))
		err = c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func createTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var req domain.TaskCreate
		if err := dec.Decode(&req); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		task, err := store.CreateTask(c.Request().Context(), req)
		if err != nil {
			return storeErrorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func getTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := store.GetTask(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func updateTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var upd domain.TaskUpdate
		if err := dec.Decode(&upd); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		task, err := store.UpdateTask(c.Request().Context(), c.Param("id"), upd)
		if err != nil {
			return storeErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func moveTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.QueryParam("status")
		if raw == "" {
			lr := io.LimitReader(c.Request().Body, requestBodyMaxSize)
			dec := sonic.ConfigStd.NewDecoder(lr)
			var body struct {
				Status string `json:"status"`
			}
			if err := dec.Decode(&body); err != nil {
				return c.String(http.StatusBadRequest, "invalid body")
			}
			raw = body.Status
		}
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		task, err := store.UpdateTask(c.Request().Context(), c.Param("id"), domain.TaskUpdate{Status: &status})
		if err != nil {
			return storeErrorResponse(c, err)
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.DeleteTask(c.Request().Context(), c.Param("id")); err != nil {
			return storeErrorResponse(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func getBoard(store Storage, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, "/api/board", logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := store.ListTasks(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}
		metrics.SetTasksReturned(len(tasks))
		err = c.JSON(http.StatusOK, boardResponse{Columns: domain.GroupByStatus(tasks)})
		if err != nil {
			metrics.SetErrorStage("encode_response")
		}
		return err
	}
}

func getAnalysis(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := store.ListTasks(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, domain.Summarize(tasks, time.Now().UTC()))
	}
}

func index(store Storage, logger *log.Logger) echo.HandlerFunc {
	return renderBoard(store, logger, "/", "index.html", http.StatusOK)
}

func boardPartial(store Storage, logger *log.Logger) echo.HandlerFunc {
	return renderBoard(store, logger, "/partials/board", "board.html", http.StatusOK)
}

// renderBoard fetches the full task list and renders it grouped by status
// with the named template.
func renderBoard(store Storage, logger *log.Logger, route, tmpl string, status int) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, route, logger)
		if spanCtx != nil {
			c.SetRequest(c.Request().WithContext(spanCtx))
			ctx = spanCtx
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		fetchStart := time.Now()
		tasks, fetchErr := store.ListTasks(ctx)
		metrics.ObserveFetch(time.Since(fetchStart))
		if fetchErr != nil {
			metrics.SetErrorStage("storage")
			c.Logger().Error(fetchErr)
			err = c.String(http.StatusInternalServerError, fetchErr.Error())
			return err
		}
		metrics.SetTasksReturned(len(tasks))
		renderStart := time.Now()
		err = c.Render(status, tmpl, buildBoardView(tasks))
		metrics.ObserveRender(time.Since(renderStart))
		if err != nil {
			metrics.SetErrorStage("render")
		}
		return err
	}
}

func analysisPartial(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := store.ListTasks(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		return c.Render(http.StatusOK, "analysis.html", buildSummaryView(domain.Summarize(tasks, time.Now().UTC())))
	}
}

func taskAnalysisPartial(store Storage) echo.HandlerFunc {
	return func(c echo.Context) error {
		task, err := store.GetTask(c.Request().Context(), c.Param("id"))
		if err != nil {
			return storeErrorResponse(c, err)
		}
		view := taskAnalysisView{
			Task:     task,
			Insights: domain.AnalyzeTask(task, time.Now().UTC()),
		}
		return c.Render(http.StatusOK, "task_analysis.html", view)
	}
}

func createTaskFromForm(store Storage, logger *log.Logger) echo.HandlerFunc {
	board := renderBoard(store, logger, "/tasks", "board.html", http.StatusOK)
	return func(c echo.Context) error {
		req := domain.TaskCreate{
			Title:       c.FormValue("title"),
			Description: c.FormValue("description"),
			Priority:    domain.Priority(c.FormValue("priority")),
		}
		if _, err := store.CreateTask(c.Request().Context(), req); err != nil {
			return storeErrorResponse(c, err)
		}
		return board(c)
	}
}

func moveTaskFromForm(store Storage, logger *log.Logger) echo.HandlerFunc {
	board := renderBoard(store, logger, "/tasks/:id/status", "board.html", http.StatusOK)
	return func(c echo.Context) error {
		status, err := domain.ParseStatus(c.FormValue("status"))
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		if _, err := store.UpdateTask(c.Request().Context(), c.Param("id"), domain.TaskUpdate{Status: &status}); err != nil {
			return storeErrorResponse(c, err)
		}
		return board(c)
	}
}
