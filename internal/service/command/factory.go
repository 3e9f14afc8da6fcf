package command

import (
	"github.com/pwr22/covbot/internal/config"
	"github.com/pwr22/covbot/internal/core"
)

// NewCommands builds the command set. The first return value is everything
// the router should dispatch; the second is the subset listed by help and
// the greeting (announce stays hidden).
func NewCommands(
	stats core.StatsProvider,
	sources *config.SourcesConfig,
	isAdmin func(userID int64) bool,
	chats core.ChatsRepository,
	broadcaster core.Broadcaster,
) (all, visible []core.Command) {
	f := NewResponseFormatter()

	help := NewHelpCommand(f)
	visible = []core.Command{
		NewCasesCommand(stats, f),
		NewCompareCommand(stats, f),
		NewRiskCommand(f),
		NewSourceCommand(sources),
		help,
	}
	help.SetCommands(visible)

	all = append(append([]core.Command{}, visible...),
		NewAnnounceCommand(isAdmin, chats, broadcaster),
	)
	return all, visible
}

// Greeting is the unsolicited introduction sent when the bot joins a chat
// or receives plain chatter in a direct conversation.
func Greeting(visible []core.Command) string {
	return NewResponseFormatter().Greeting(visible)
}
