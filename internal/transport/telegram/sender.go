package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/pwr22/covbot/pkg/conv"
	"github.com/pwr22/covbot/pkg/log"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, silent bool) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))

	chunks := splitHTML(html, maxTelegramMsgLen)
	for i, chunk := range chunks {
		opts := []interface{}{tele.ModeHTML}
		if silent && i == 0 {
			opts = append(opts, tele.Silent)
		}

		if err := s.sendChunk(ctx, to, chunk, opts...); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// sendChunk sends one message, waiting out a single flood limit if Telegram
// asks us to back off.
func (s *sender) sendChunk(ctx context.Context, to tele.Recipient, chunk string, opts ...interface{}) error {
	_, err := s.bot.Send(to, chunk, opts...)

	var flood tele.FloodError
	if errors.As(err, &flood) {
		log.FromCtx(ctx).Warn().Int("retry_after", flood.RetryAfter).Msg("telegram flood limit hit")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(flood.RetryAfter) * time.Second):
		}
		_, err = s.bot.Send(to, chunk, opts...)
	}
	return err
}

// splitHTML splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting and never cuts
// through a tag or character entity, which Telegram rejects in HTML
// parse mode.
func splitHTML(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Try to find a good break point (newline) in the second half of the chunk
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}
		cut = tagSafeCut(text, cut)

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}

// tagSafeCut moves a cut point back to before any HTML tag or entity it
// would land inside. A chunk that is a single oversized token cannot be
// made safe and is cut as-is.
func tagSafeCut(text string, cut int) int {
	idx := strings.LastIndexAny(text[:cut], "<&")
	if idx <= 0 {
		return cut
	}

	frag := text[idx:cut]
	if frag[0] == '<' && !strings.ContainsRune(frag, '>') {
		return idx
	}
	if frag[0] == '&' && !strings.ContainsRune(frag, ';') {
		return idx
	}
	return cut
}
