package reporter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/hoverbar/hoverbar/internal/database"
	"github.com/hoverbar/hoverbar/internal/models"
)

// Reporter builds transition history from the journal
type Reporter struct {
	repo *database.Repository
	now  func() time.Time
}

// New creates a new reporter
func New(repo *database.Repository) *Reporter {
	return &Reporter{
		repo: repo,
		now:  time.Now,
	}
}

// GenerateHistory returns the newest transitions, at most limit of them.
// A positive window restricts the result to transitions inside it.
func (r *Reporter) GenerateHistory(limit int, window time.Duration) (*models.History, error) {
	if limit <= 0 {
		return nil, errors.Errorf("limit must be positive, got %d", limit)
	}

	var (
		transitions []models.Transition
		err         error
	)
	if window > 0 {
		transitions, err = r.repo.Since(r.now().Add(-window))
		if err == nil {
			reverse(transitions)
			if len(transitions) > limit {
				transitions = transitions[:limit]
			}
		}
	} else {
		transitions, err = r.repo.Recent(limit)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load transitions")
	}

	counts, err := r.repo.CountByKind()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count transitions")
	}

	return &models.History{
		Transitions: transitions,
		Counts:      counts,
		GeneratedAt: r.now(),
	}, nil
}

// FormatText formats the history as a human-readable table
func (r *Reporter) FormatText(h *models.History) string {
	var b strings.Builder

	b.WriteString("Bar Transition History\n")
	if len(h.Counts) > 0 {
		parts := make([]string, 0, len(h.Counts))
		for _, c := range h.Counts {
			parts = append(parts, fmt.Sprintf("%s=%s", c.Kind, humanize.Comma(c.Count)))
		}
		fmt.Fprintf(&b, "Totals: %s\n", strings.Join(parts, ", "))
	}
	b.WriteString("\n")

	if len(h.Transitions) == 0 {
		b.WriteString("No transitions recorded.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "%-20s %-16s %-13s %8s %10s\n", "Time", "When", "Kind", "Y", "Dwell")
	b.WriteString(strings.Repeat("-", 71) + "\n")

	for _, tr := range h.Transitions {
		dwell := "-"
		if tr.Kind == "shown" {
			dwell = (time.Duration(tr.DwellMs) * time.Millisecond).String()
		}
		fmt.Fprintf(&b, "%-20s %-16s %-13s %8d %10s\n",
			tr.Timestamp.Local().Format("2006-01-02 15:04:05"),
			truncate(humanize.RelTime(tr.Timestamp, h.GeneratedAt, "ago", "from now"), 16),
			tr.Kind,
			tr.PointerY,
			dwell)
	}

	return b.String()
}

// FormatJSON formats the history as JSON
func (r *Reporter) FormatJSON(h *models.History) (string, error) {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal JSON")
	}
	return string(data), nil
}

// FormatYAML formats the history as YAML
func (r *Reporter) FormatYAML(h *models.History) (string, error) {
	data, err := yaml.Marshal(h)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal YAML")
	}
	return string(data), nil
}

// Format dispatches on an output format name: text, json or yaml
func (r *Reporter) Format(h *models.History, format string) (string, error) {
	switch format {
	case "", "text":
		return r.FormatText(h), nil
	case "json":
		return r.FormatJSON(h)
	case "yaml":
		return r.FormatYAML(h)
	default:
		return "", errors.Errorf("invalid format: %s (valid: text, json, yaml)", format)
	}
}

func reverse(ts []models.Transition) {
	for i, j := 0, len(ts)-1; i < j; i, j = i+1, j-1 {
		ts[i], ts[j] = ts[j], ts[i]
	}
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
