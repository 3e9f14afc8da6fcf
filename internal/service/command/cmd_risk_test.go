package command

import (
	"context"
	"strings"
	"testing"

	"github.com/pwr22/covbot/internal/core"
)

func TestRiskCommand(t *testing.T) {
	cmd := NewRiskCommand(NewResponseFormatter())
	ctx := context.Background()

	tests := []struct {
		name        string
		args        string
		wantContain []string
	}{
		{
			name:        "not a number",
			args:        "banana",
			wantContain: []string{"banana does not look like a number to me."},
		},
		{
			name:        "negative age rejected",
			args:        "-3",
			wantContain: []string{"The risk model only handles ages between 0 and 110."},
		},
		{
			name:        "age above range rejected",
			args:        "111",
			wantContain: []string{"The risk model only handles ages between 0 and 110."},
		},
		{
			name: "newborn has zero modeled risk",
			args: "0",
			wantContain: []string{
				"a 0 year old patient",
				"100.0% chance of survival",
				"0.0% likelihood of needing to go to hospital",
				"0.0% risk of needing intensive care",
				"0.0% chance of death",
			},
		},
		{
			name:        "older patient has nonzero risk",
			args:        "80",
			wantContain: []string{"I estimate a 80 year old patient", "chance of death"},
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

func TestRiskRates_MonotonicWithAge(t *testing.T) {
	prevDeath := -1.0
	for age := 0; age <= 110; age += 10 {
		death, hospital, ic := riskRates(age)
		if death < prevDeath {
			t.Errorf("death rate decreased at age %d", age)
		}
		prevDeath = death
		for name, rate := range map[string]float64{"death": death, "hospital": hospital, "ic": ic} {
			if rate < 0 {
				t.Errorf("%s rate negative at age %d: %f", name, age, rate)
			}
		}
	}
}
