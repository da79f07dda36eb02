package main

import (
	"crypto/tls"
	"os"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"tasker-api/api"
	"tasker-api/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	store, err := newStore()
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger := log.New()
	api.Register(e, store, logger)

	e.Logger.Fatal(e.Start(listenAddr()))
}

func newStore() (api.Storage, error) {
	backend := os.Getenv("STORAGE_BACKEND")
	switch backend {
	case "", "memory":
		return storage.NewMemory(), nil
	case "redis":
		redisConn := os.Getenv("REDIS_CONNECTION_STRING")
		if redisConn == "" {
			log.Fatal("missing redis config")
		}
		return storage.NewRedis(redis.NewClient(redisOptions(redisConn))), nil
	case "aztable":
		connStr := os.Getenv("STORAGE_CONNECTION_STRING")
		tasksTableName := os.Getenv("TASKS_TABLE")
		if connStr == "" || tasksTableName == "" {
			log.Fatal("missing table storage config")
		}
		store, err := storage.NewTable(connStr, tasksTableName)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	log.Fatalf("unknown STORAGE_BACKEND %q", backend)
	return nil, nil
}

// redisOptions understands both redis:// URLs and the comma-separated
// host,password,ssl form used by managed caches.
func redisOptions(conn string) *redis.Options {
	opts, err := redis.ParseURL(conn)
	if err == nil {
		return opts
	}
	parts := strings.Split(conn, ",")
	opts = &redis.Options{Addr: parts[0]}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch strings.ToLower(kv[0]) {
		case "password":
			opts.Password = kv[1]
		case "ssl":
			if strings.ToLower(kv[1]) == "true" {
				opts.TLSConfig = &tls.Config{}
			}
		}
	}
	return opts
}

// listenAddr builds the bind address from HOST/PORT, honoring the UVICORN_*
// names the original container entrypoint exported.
func listenAddr() string {
	host := os.Getenv("HOST")
	if host == "" {
		host = os.Getenv("UVICORN_HOST")
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = os.Getenv("UVICORN_PORT")
	}
	if port == "" {
		port = "8080"
	}
	return host + ":" + port
}
