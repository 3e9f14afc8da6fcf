package command

import (
	"context"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type HelpCommand struct {
	commands  []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(formatter *ResponseFormatter) *HelpCommand {
	return &HelpCommand{formatter: formatter}
}

// SetCommands wires in the visible command list after all commands exist,
// since help lists itself.
func (c *HelpCommand) SetCommands(commands []core.Command) {
	c.commands = commands
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Usage() string {
	return "!help"
}

func (c *HelpCommand) Description() string {
	return "Get a reminder what I can do for you."
}

func (c *HelpCommand) Execute(ctx context.Context, req core.Request) (string, error) {
	log.FromCtx(ctx).Info().Msg("responding to help request")
	return c.formatter.HelpText(c.commands), nil
}
