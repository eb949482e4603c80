package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]Status{
		"done":          StatusDone,
		"  DONE ":       StatusDone,
		"In Progress":   StatusInProgress,
		"in progress\t": StatusInProgress,
		"open":          StatusOpen,
		"Blocked":       StatusBlocked,
		"inprogress":    StatusOther,
		"closed":        StatusOther,
		"":              StatusOther,
		"   ":           StatusOther,
		"wontfix":       StatusOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeBoard(t *testing.T) {
	cases := map[string]Status{
		"open":        StatusOpen,
		"In Progress": StatusInProgress,
		"InProgress":  StatusInProgress,
		" blocked ":   StatusBlocked,
		"Done":        StatusDone,
		"closed":      StatusDone,
		"":            StatusOpen,
		"wontfix":     StatusOpen,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeBoard(in), "input %q", in)
	}
}

func TestNormalizersDisagreeOnFallback(t *testing.T) {
	for _, in := range []string{"", "review", "closed", "inprogress"} {
		assert.NotEqual(t, Normalize(in), NormalizeBoard(in), "input %q", in)
	}
}

func TestNormalizeBoard_NeverOther(t *testing.T) {
	for _, in := range []string{"", "x", "Other", "other", "done", "??"} {
		assert.Contains(t, BoardColumns, NormalizeBoard(in))
	}
}
