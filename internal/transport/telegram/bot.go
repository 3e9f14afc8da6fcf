package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/pwr22/covbot/internal/config"
	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot      *tele.Bot
	cfg      *config.TelegramConfig
	chats    core.ChatsRepository
	router   core.CmdRouter
	greeting string
	sender   *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	chats core.ChatsRepository,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:    b,
		cfg:    cfg,
		chats:  chats,
		sender: newSender(b),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)
	b.Handle(tele.OnAddedToGroup, bot.handleAddedToGroup)

	return bot, nil
}

// SetRouter wires the command router and greeting in after construction.
// The announce command needs the bot as its broadcaster, so the command set
// (and the greeting derived from it) is built second.
func (b *Bot) SetRouter(router core.CmdRouter, greeting string) {
	b.router = router
	b.greeting = greeting
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// Broadcast sends a message to every given chat, dropping chats that have
// kicked the bot in the meantime.
func (b *Bot) Broadcast(ctx context.Context, chatIDs []int64, message string) error {
	logger := log.FromCtx(ctx)
	for _, id := range chatIDs {
		if err := b.sender.sendMarkdown(ctx, tele.ChatID(id), message, true); err != nil {
			logger.Warn().Err(err).Int64("chat_id", id).Msg("failed to broadcast to chat")
			if isChatGone(err) {
				if rmErr := b.chats.RemoveChat(ctx, id); rmErr != nil {
					logger.Error().Err(rmErr).Int64("chat_id", id).Msg("failed to remove dead chat")
				}
			}
		}
	}
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	chat := c.Chat()

	if _, err := b.chats.UpsertChat(ctx, chat.ID, chatTitle(chat)); err != nil {
		logger.Error().Err(err).Int64("chat_id", chat.ID).Msg("failed to upsert chat")
	}

	req := core.Request{
		ChatID:   chat.ID,
		SenderID: c.Sender().ID,
	}

	reply, handled := b.router.Execute(ctx, req, c.Text())
	if handled {
		return b.sender.sendMarkdown(ctx, chat, reply, false)
	}

	// Plain chatter in a direct conversation is never left unanswered; the
	// introduction doubles as the usage hint. Groups stay quiet unless
	// addressed with a command.
	if chat.Type == tele.ChatPrivate {
		if err := b.sender.sendMarkdown(ctx, chat, b.greeting, false); err != nil {
			return err
		}
		return b.markGreeted(ctx, chat.ID)
	}
	return nil
}

func (b *Bot) handleAddedToGroup(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)
	chat := c.Chat()

	greeted, err := b.chats.UpsertChat(ctx, chat.ID, chatTitle(chat))
	if err != nil {
		logger.Error().Err(err).Int64("chat_id", chat.ID).Msg("failed to upsert chat")
	}
	if greeted {
		return nil
	}

	if err := b.sender.sendMarkdown(ctx, chat, b.greeting, false); err != nil {
		return err
	}
	return b.markGreeted(ctx, chat.ID)
}

func (b *Bot) markGreeted(ctx context.Context, chatID int64) error {
	if err := b.chats.MarkGreeted(ctx, chatID); err != nil {
		log.FromCtx(ctx).Error().Err(err).Int64("chat_id", chatID).Msg("failed to mark chat greeted")
	}
	return nil
}

func chatTitle(chat *tele.Chat) string {
	if chat.Title != "" {
		return chat.Title
	}
	if chat.Username != "" {
		return chat.Username
	}
	return chat.FirstName
}

// isChatGone reports whether the error means the bot can no longer reach the
// chat at all, as opposed to a transient failure.
func isChatGone(err error) bool {
	for _, gone := range []error{
		tele.ErrChatNotFound, tele.ErrBlockedByUser, tele.ErrKickedFromGroup,
		tele.ErrKickedFromSuperGroup, tele.ErrKickedFromChannel,
		tele.ErrNotStartedByUser, tele.ErrUserIsDeactivated,
	} {
		if errors.Is(err, gone) {
			return true
		}
	}
	return false
}
