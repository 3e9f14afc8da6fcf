package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/pkg/log"
)

type ChatsRepo struct {
	db *sql.DB
}

func NewChatsRepo(db *sql.DB) *ChatsRepo {
	return &ChatsRepo{db: db}
}

// UpsertChat records a chat and reports whether it was already greeted. The
// title is refreshed on every call since chats get renamed.
func (r *ChatsRepo) UpsertChat(ctx context.Context, id int64, title string) (bool, error) {
	query := `INSERT INTO chats (id, title) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title`
	if _, err := r.db.ExecContext(ctx, query, id, title); err != nil {
		return false, fmt.Errorf("failed to upsert chat: %w", err)
	}

	var greeted bool
	if err := r.db.QueryRowContext(ctx, `SELECT greeted FROM chats WHERE id = ?`, id).Scan(&greeted); err != nil {
		return false, fmt.Errorf("failed to read chat greeting state: %w", err)
	}
	return greeted, nil
}

func (r *ChatsRepo) MarkGreeted(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE chats SET greeted = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to mark chat greeted: %w", err)
	}
	return nil
}

func (r *ChatsRepo) ListChats(ctx context.Context) ([]core.Chat, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, greeted, added_at FROM chats ORDER BY added_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []core.Chat
	for rows.Next() {
		var chat core.Chat
		if err := rows.Scan(&chat.ID, &chat.Title, &chat.Greeted, &chat.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(chats)).Msg("loaded chats")
	return chats, nil
}

// RemoveChat forgets a chat, e.g. after the bot was kicked.
func (r *ChatsRepo) RemoveChat(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chats WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove chat: %w", err)
	}
	return nil
}
