package service

import (
	"context"

	"task-tracker/internal/analytics"
	"task-tracker/internal/model"
)

// BoardColumn holds the tasks of one status column.
type BoardColumn struct {
	Status analytics.Status `json:"status"`
	Count  int              `json:"count"`
	Tasks  []model.Task     `json:"tasks"`
}

// Board is a user's tasks grouped by status.
type Board struct {
	Columns    []BoardColumn `json:"columns"`
	TotalTasks int           `json:"totalTasks"`
}

// Column returns the column for status, or nil.
func (b Board) Column(status analytics.Status) *BoardColumn {
	for i := range b.Columns {
		if b.Columns[i].Status == status {
			return &b.Columns[i]
		}
	}
	return nil
}

// BoardService groups assigned tasks into board columns.
type BoardService struct {
	tasks TaskSource
}

func NewBoardService(tasks TaskSource) *BoardService {
	return &BoardService{tasks: tasks}
}

func (s *BoardService) Board(ctx context.Context, userID uint) (Board, error) {
	tasks, err := s.tasks.ListAssignedTo(ctx, userID, nil)
	if err != nil {
		return Board{}, err
	}

	index := make(map[analytics.Status]int, len(analytics.BoardColumns))
	board := Board{TotalTasks: len(tasks)}
	for i, status := range analytics.BoardColumns {
		index[status] = i
		board.Columns = append(board.Columns, BoardColumn{Status: status, Tasks: []model.Task{}})
	}

	for _, task := range tasks {
		col := &board.Columns[index[analytics.NormalizeBoard(task.Status)]]
		col.Tasks = append(col.Tasks, task)
		col.Count++
	}
	return board, nil
}
