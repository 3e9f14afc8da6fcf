package command

import (
	"context"
	"strings"
	"testing"

	"github.com/pwr22/covbot/internal/core"
)

func TestCompareCommand(t *testing.T) {
	stats := &fakeStats{matches: map[string][]core.Match{
		"cn": {match("China", 81054, 3261, 72440)},
		"us": {match("United States", 33276, 417, 178)},
		"congo": {
			match("Congo (Brazzaville)", 4, 0, 0),
			match("Congo (Kinshasa)", 36, 2, 0),
		},
	}}
	cmd := NewCompareCommand(stats, NewResponseFormatter())
	ctx := context.Background()

	t.Run("renders a table row per location", func(t *testing.T) {
		got, err := cmd.Execute(ctx, core.Request{Args: "cn;us"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"```", "Location", "Cases", "China", "81,054", "United States", "33,276"} {
			if !strings.Contains(got, want) {
				t.Errorf("table %q missing %q", got, want)
			}
		}
	})

	t.Run("unknown location aborts the comparison", func(t *testing.T) {
		got, err := cmd.Execute(ctx, core.Request{Args: "cn;elbonia"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "I cannot find a match for elbonia") {
			t.Errorf("unexpected reply: %q", got)
		}
	})

	t.Run("ambiguous location asks for one", func(t *testing.T) {
		got, err := cmd.Execute(ctx, core.Request{Args: "congo"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "Multiple results for congo") || !strings.Contains(got, "Please provide one.") {
			t.Errorf("unexpected reply: %q", got)
		}
	})

	t.Run("empty args prompts for usage", func(t *testing.T) {
		got, err := cmd.Execute(ctx, core.Request{Args: "  "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(got, "Tell me which locations to compare") {
			t.Errorf("unexpected reply: %q", got)
		}
	})
}

func TestCompareCommand_MissingOutcomeColumns(t *testing.T) {
	stats := &fakeStats{matches: map[string][]core.Match{
		"london": {{
			Location: "London, United Kingdom",
			Stats:    core.CaseStats{Cases: 4122},
		}},
	}}
	cmd := NewCompareCommand(stats, NewResponseFormatter())

	got, err := cmd.Execute(context.Background(), core.Request{Args: "london"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "4,122") || !strings.Contains(got, missingData) {
		t.Errorf("table should use placeholders for missing outcome data: %q", got)
	}
}
