package command

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pwr22/covbot/internal/core"
)

func TestCasesCommand(t *testing.T) {
	stats := &fakeStats{matches: map[string][]core.Match{
		"world": {match("World", 341365, 14759, 99039)},
		"china": {match("China", 81054, 3261, 72440)},
		"congo": {
			match("Congo (Brazzaville)", 4, 0, 0),
			match("Congo (Kinshasa)", 36, 2, 0),
		},
		"e": {
			match("Ecuador", 789, 14, 3), match("Egypt", 327, 14, 56),
			match("Estonia", 326, 0, 2), match("Ethiopia", 11, 0, 0),
			match("El Salvador", 3, 0, 0), match("Eritrea", 1, 0, 0),
		},
	}}
	cmd := NewCasesCommand(stats, NewResponseFormatter())
	ctx := context.Background()

	tests := []struct {
		name        string
		args        string
		wantContain []string
	}{
		{
			name: "empty location defaults to world",
			args: "",
			wantContain: []string{
				"In World there have been a total of 341,365 cases as of 2020-03-23 11:28:21 UTC.",
			},
		},
		{
			name: "single match includes outcome breakdown",
			args: "china",
			wantContain: []string{
				"In China there have been a total of 81,054 cases",
				"5,353 (6.6%) are still sick",
				"72,440 (89.4%) have definitely recovered",
				"3,261 (4.0%) have died",
			},
		},
		{
			name:        "ambiguous match asks to choose",
			args:        "congo",
			wantContain: []string{"Which of these did you mean?", "Congo (Brazzaville)", "Congo (Kinshasa)"},
		},
		{
			name:        "too many matches asks to narrow down",
			args:        "e",
			wantContain: []string{"I found a lot of matches for e"},
		},
		{
			name:        "unknown location",
			args:        "elbonia",
			wantContain: []string{"My data doesn't seem to include elbonia"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cmd.Execute(ctx, core.Request{Args: tt.args})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("reply %q missing %q", got, want)
				}
			}
		})
	}
}

func TestCasesCommand_StaleDataWarning(t *testing.T) {
	stats := &fakeStats{
		matches:  map[string][]core.Match{"world": {match("World", 341365, 14759, 99039)}},
		freshErr: errors.New("feed unreachable"),
	}
	cmd := NewCasesCommand(stats, NewResponseFormatter())

	got, err := cmd.Execute(context.Background(), core.Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "Something went wrong fetching the latest data so stats may be outdated.") {
		t.Errorf("reply should lead with the stale data warning, got %q", got)
	}
	if !strings.Contains(got, "In World") {
		t.Errorf("reply should still answer from cached data, got %q", got)
	}
	if stats.ensured != 1 {
		t.Errorf("EnsureFresh called %d times, want 1", stats.ensured)
	}
}

func TestCasesCommand_NoOutcomeData(t *testing.T) {
	stats := &fakeStats{matches: map[string][]core.Match{
		"london": {{
			Location: "London, United Kingdom",
			Stats:    core.CaseStats{Cases: 4122, LastUpdate: match("x", 0, 0, 0).Stats.LastUpdate},
		}},
	}}
	cmd := NewCasesCommand(stats, NewResponseFormatter())

	got, err := cmd.Execute(context.Background(), core.Request{Args: "london"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "In London, United Kingdom there have been a total of 4,122 cases") {
		t.Errorf("unexpected reply: %q", got)
	}
	if strings.Contains(got, "recovered") {
		t.Errorf("reply should omit the outcome sentence without outcome data: %q", got)
	}
}
