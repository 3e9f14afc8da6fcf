package core

import (
	"context"
	"errors"
	"time"
)

// ErrNoSnapshot is returned when no snapshot has ever been persisted.
var ErrNoSnapshot = errors.New("no snapshot stored")

type Chat struct {
	ID      int64
	Title   string
	Greeted bool
	AddedAt time.Time
}

type ChatsRepository interface {
	// UpsertChat records a chat the bot can see and reports whether it has
	// already been greeted.
	UpsertChat(ctx context.Context, id int64, title string) (greeted bool, err error)
	MarkGreeted(ctx context.Context, id int64) error
	ListChats(ctx context.Context) ([]Chat, error)
	RemoveChat(ctx context.Context, id int64) error
}

type SnapshotRepository interface {
	Save(ctx context.Context, countries map[string]*CountryRecord, fetchedAt time.Time) error
	// LoadLatest returns ErrNoSnapshot when the table is empty.
	LoadLatest(ctx context.Context) (map[string]*CountryRecord, time.Time, error)
}
