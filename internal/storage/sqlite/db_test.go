package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwr22/covbot/internal/core"
)

func TestChatsRepo(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "covbot.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewChatsRepo(db)

	greeted, err := repo.UpsertChat(ctx, 42, "Test Chat")
	require.NoError(t, err)
	assert.False(t, greeted)

	require.NoError(t, repo.MarkGreeted(ctx, 42))

	greeted, err = repo.UpsertChat(ctx, 42, "Renamed Chat")
	require.NoError(t, err)
	assert.True(t, greeted)

	_, err = repo.UpsertChat(ctx, 7, "Another")
	require.NoError(t, err)

	chats, err := repo.ListChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, int64(42), chats[0].ID)
	assert.Equal(t, "Renamed Chat", chats[0].Title)
	assert.True(t, chats[0].Greeted)
	assert.Equal(t, int64(7), chats[1].ID)
	assert.False(t, chats[1].Greeted)

	require.NoError(t, repo.RemoveChat(ctx, 42))
	chats, err = repo.ListChats(ctx)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, int64(7), chats[0].ID)
}

func TestSnapshotRepo(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "covbot.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewSnapshotRepo(db)

	_, _, err = repo.LoadLatest(ctx)
	assert.ErrorIs(t, err, core.ErrNoSnapshot)

	fetchedAt := time.Date(2020, 3, 25, 12, 0, 0, 0, time.UTC)
	countries := map[string]*core.CountryRecord{
		"China": {
			Totals: &core.CaseStats{
				Cases:       81054,
				Deaths:      3261,
				Recoveries:  72440,
				HasOutcomes: true,
				LastUpdate:  fetchedAt,
			},
			Areas: map[string]core.CaseStats{
				"Hubei": {Cases: 67801, Deaths: 3160, Recoveries: 60811, HasOutcomes: true, LastUpdate: fetchedAt},
			},
		},
	}
	require.NoError(t, repo.Save(ctx, countries, fetchedAt))

	loaded, at, err := repo.LoadLatest(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(fetchedAt))
	require.Contains(t, loaded, "China")
	require.NotNil(t, loaded["China"].Totals)
	assert.Equal(t, int64(81054), loaded["China"].Totals.Cases)
	assert.Equal(t, int64(67801), loaded["China"].Areas["Hubei"].Cases)

	// A later save replaces the previous snapshot.
	later := fetchedAt.Add(15 * time.Minute)
	countries["China"].Areas["Hubei"] = core.CaseStats{Cases: 67802, HasOutcomes: true, LastUpdate: later}
	require.NoError(t, repo.Save(ctx, countries, later))

	loaded, at, err = repo.LoadLatest(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(later))
	assert.Equal(t, int64(67802), loaded["China"].Areas["Hubei"].Cases)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count))
	assert.Equal(t, 1, count)
}
