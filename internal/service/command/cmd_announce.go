package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

// AnnounceCommand broadcasts a message to every chat the bot knows about.
// It is admin-only and deliberately absent from help output.
type AnnounceCommand struct {
	isAdmin     func(userID int64) bool
	chats       core.ChatsRepository
	broadcaster core.Broadcaster
}

func NewAnnounceCommand(isAdmin func(userID int64) bool, chats core.ChatsRepository, broadcaster core.Broadcaster) *AnnounceCommand {
	return &AnnounceCommand{
		isAdmin:     isAdmin,
		chats:       chats,
		broadcaster: broadcaster,
	}
}

func (c *AnnounceCommand) Name() string {
	return "announce"
}

func (c *AnnounceCommand) Usage() string {
	return "!announce message"
}

func (c *AnnounceCommand) Description() string {
	return "Broadcast a message to all chats."
}

func (c *AnnounceCommand) Execute(ctx context.Context, req core.Request) (string, error) {
	logger := log.FromCtx(ctx)

	if c.isAdmin == nil || !c.isAdmin(req.SenderID) {
		logger.Warn().Int64("sender", req.SenderID).Str("message", req.Args).
			Msg("unauthorized announce attempt")
		return "You do not have permission to !announce.", nil
	}

	if strings.TrimSpace(req.Args) == "" {
		return "Tell me what to announce, e.g. !announce scheduled downtime at noon.", nil
	}

	if c.broadcaster == nil {
		return "Announcements need a connected chat transport.", nil
	}

	chats, err := c.chats.ListChats(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list chats: %w", err)
	}

	ids := make([]int64, len(chats))
	for i, chat := range chats {
		ids[i] = chat.ID
	}

	logger.Info().Int("chats", len(ids)).Str("message", req.Args).Msg("sending announcement")
	if err := c.broadcaster.Broadcast(ctx, ids, req.Args); err != nil {
		return "", fmt.Errorf("failed to broadcast: %w", err)
	}

	return fmt.Sprintf("Announcement sent to %d chats.", len(ids)), nil
}
