package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"task-tracker/internal/analytics"
	"task-tracker/internal/model"
)

// SummaryFormat selects how a report summary is rendered.
type SummaryFormat int

const (
	FormatText SummaryFormat = iota
	FormatHTML
)

// SummaryService renders analytics reports as short documents for export
// and chat digests.
type SummaryService struct {
	analytics *AnalyticsService
}

func NewSummaryService(reports *AnalyticsService) *SummaryService {
	return &SummaryService{analytics: reports}
}

// Digest builds the weekly chat digest for user.
func (s *SummaryService) Digest(ctx context.Context, user model.User, now time.Time) (string, error) {
	report, err := s.analytics.Report(ctx, user.ID, RangeRequest{Selector: analytics.RangeWeek})
	if err != nil {
		return "", err
	}
	return Render(report, user.Name, FormatHTML, now), nil
}

// Render formats a report. HTML output uses only the tags Telegram accepts.
func Render(r analytics.Report, name string, format SummaryFormat, now time.Time) string {
	bold := func(s string) string { return s }
	esc := func(s string) string { return s }
	if format == FormatHTML {
		bold = func(s string) string { return "<b>" + s + "</b>" }
		esc = html.EscapeString
	}

	var sb strings.Builder
	sb.WriteString("📊 " + bold("Analytics report"))
	if name = strings.TrimSpace(name); name != "" {
		sb.WriteString(" · " + esc(name))
	}
	sb.WriteByte('\n')
	sb.WriteString(fmt.Sprintf("🗓 %s – %s\n", r.From.Format("2006-01-02"), r.To.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format("2006-01-02 15:04")))

	sb.WriteString(bold("Tasks") + "\n")
	if r.TotalTasks == 0 {
		sb.WriteString("• no tasks in this period\n")
	} else {
		sb.WriteString(fmt.Sprintf("• Total: %d\n", r.TotalTasks))
		sb.WriteString(fmt.Sprintf("• Completed: %d (%.1f%%)\n", r.CompletedTasks, r.CompletedRatePct))
		sb.WriteString(fmt.Sprintf("• Open %d · In progress %d · Blocked %d", r.OpenCount, r.InProgressCount, r.BlockedCount))
		if r.OtherCount > 0 {
			sb.WriteString(fmt.Sprintf(" · Other %d", r.OtherCount))
		}
		sb.WriteByte('\n')
		for _, s := range r.DonutSlices {
			sb.WriteString(fmt.Sprintf("  %s %.1f%%\n", esc(string(s.Key)), s.Percentage))
		}
	}

	sb.WriteString("\n" + bold("Weekly completions") + fmt.Sprintf(" (avg %.1f/week)\n", r.AvgCompletedPerWeek))
	for _, p := range r.WeeklyProductivity {
		sb.WriteString(fmt.Sprintf("%-4s %s %d\n", p.Label, bar(p.Completed, r.ProductivityMax), p.Completed))
	}

	sb.WriteString("\n" + bold("Created / done by month") + "\n")
	for _, m := range r.Monthly {
		sb.WriteString(fmt.Sprintf("%s: %d / %d\n", esc(m.Label), m.Created, m.Done))
	}

	return strings.TrimSpace(sb.String())
}

const barWidth = 10

func bar(value, peak int) string {
	if peak <= 0 || value <= 0 {
		return "·"
	}
	n := value * barWidth / peak
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
