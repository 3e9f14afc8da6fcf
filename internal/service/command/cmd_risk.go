package command

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type RiskCommand struct {
	formatter *ResponseFormatter
}

func NewRiskCommand(formatter *ResponseFormatter) *RiskCommand {
	return &RiskCommand{formatter: formatter}
}

func (c *RiskCommand) Name() string {
	return "risk"
}

func (c *RiskCommand) Usage() string {
	return "!risk age"
}

func (c *RiskCommand) Description() string {
	return "For a person of the given age, what is the risk to them if they become sick with COVID-19?"
}

func (c *RiskCommand) Execute(ctx context.Context, req core.Request) (string, error) {
	arg := strings.TrimSpace(req.Args)
	age, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Sprintf("%s does not look like a number to me.", arg), nil
	}
	if age < 0 || age > 110 {
		return "The risk model only handles ages between 0 and 110.", nil
	}

	log.FromCtx(ctx).Info().Int("age", age).Msg("responding to risk request")

	death, hospital, intensiveCare := riskRates(age)
	survival := 1 - death

	return fmt.Sprintf(
		"I estimate a %d year old patient sick with COVID-19 has a %.1f%% chance of survival,"+
			" a %.1f%% likelihood of needing to go to hospital, a %.1f%% risk of needing intensive care there"+
			" and a %.1f%% chance of death.",
		age, survival*100, hospital*100, intensiveCare*100, death*100,
	), nil
}

// riskRates evaluates the fitted curves from
// https://www.desmos.com/calculator/v0zif7tflm, clamped at zero for young
// ages where the linear fits go negative.
func riskRates(age int) (death, hospital, intensiveCare float64) {
	a := float64(age)

	death = math.Max(0, -0.00186807+0.00000351867*math.Pow(a, 2)+2.7595e-15*math.Pow(a, 7))
	intensiveCare = math.Max(0, -0.0572602+0.0027617*a)
	hospital = math.Max(0, -0.0730827+0.00628289*a)
	return death, hospital, intensiveCare
}
