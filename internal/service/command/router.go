package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/internal/metrics"
	"github.com/pwr22/covbot/pkg/log"
)

type Router struct {
	commands map[string]core.Command
	order    []string
}

func New(commands []core.Command) *Router {
	r := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
		r.order = append(r.order, cmd.Name())
	}
	return r
}

// Execute dispatches one message. Only bang-prefixed text counts as a
// command; everything else returns handled=false so the transport can
// decide whether to greet. Verbs match case-insensitively and the rest of
// the line is passed through raw, since locations contain spaces.
func (r *Router) Execute(ctx context.Context, req core.Request, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "!") {
		return "", false
	}

	verb, rest, _ := strings.Cut(strings.TrimPrefix(input, "!"), " ")
	name := strings.ToLower(verb)
	if name == "" {
		return "", false
	}

	cmd, ok := r.commands[name]
	if !ok {
		return fmt.Sprintf("I don't know the command !%s. Try !help to see what I can do.", name), true
	}

	metrics.CommandsServed.WithLabelValues(name).Inc()
	req.Args = strings.TrimSpace(rest)

	result, err := cmd.Execute(ctx, req)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("command", name).Msg("command failed")
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

// ListCommands returns the commands in registration order, which is the
// order help output presents them in.
func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(r.order))
	for _, name := range r.order {
		res = append(res, r.commands[name])
	}
	return res
}
