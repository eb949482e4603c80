package analytics

import "strings"

// Status is a normalized task status label.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
	StatusBlocked    Status = "Blocked"
	StatusOther      Status = "Other"
)

// BoardColumns lists the board view columns in display order.
var BoardColumns = []Status{StatusOpen, StatusInProgress, StatusBlocked, StatusDone}

// Normalize maps a free-form status to one of the analytics buckets.
// Unknown and empty values land in StatusOther.
func Normalize(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "done":
		return StatusDone
	case "in progress":
		return StatusInProgress
	case "open":
		return StatusOpen
	case "blocked":
		return StatusBlocked
	default:
		return StatusOther
	}
}

// NormalizeBoard maps a free-form status to a board column. It accepts
// the "inprogress" and "closed" aliases and falls back to StatusOpen, so
// it never yields StatusOther.
func NormalizeBoard(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "open":
		return StatusOpen
	case "in progress", "inprogress":
		return StatusInProgress
	case "blocked":
		return StatusBlocked
	case "done", "closed":
		return StatusDone
	default:
		return StatusOpen
	}
}
