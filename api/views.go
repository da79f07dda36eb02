package api

import (
	"fmt"

	"tasker-api/domain"
)

// boardView feeds the index page and the board partial. Columns follow the
// fixed status order so empty columns still render.
type boardView struct {
	Columns []boardColumn
}

type boardColumn struct {
	Status domain.Status
	Label  string
	Tasks  []domain.Task
}

func buildBoardView(tasks []domain.Task) boardView {
	grouped := domain.GroupByStatus(tasks)
	columns := make([]boardColumn, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		columns = append(columns, boardColumn{
			Status: s,
			Label:  s.Label(),
			Tasks:  grouped[s],
		})
	}
	return boardView{Columns: columns}
}

// summaryView feeds the board analysis partial.
type summaryView struct {
	Rows  []summaryRow
	Total int
}

type summaryRow struct {
	Status domain.Status
	Label  string
	Count  int
	AvgAge string
}

func buildSummaryView(s domain.Summary) summaryView {
	rows := make([]summaryRow, 0, len(domain.Statuses))
	total := 0
	for _, status := range domain.Statuses {
		total += s.Counts[status]
		rows = append(rows, summaryRow{
			Status: status,
			Label:  status.Label(),
			Count:  s.Counts[status],
			AvgAge: fmt.Sprintf("%.0fs", s.AvgAgeSeconds[status]),
		})
	}
	return summaryView{Rows: rows, Total: total}
}

type taskAnalysisView struct {
	Task     domain.Task
	Insights domain.TaskInsights
}
