package mastery

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spacetimes/internal/database"
	"github.com/at-ishikawa/spacetimes/internal/fact"
)

func TestDBStore_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "spacetimes.db"))
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.Migrate(ctx, db))
	store := NewDBStore(db)

	_, err = store.Get(ctx, "alice")
	require.ErrorIs(t, err, ErrLearnerNotFound)

	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	submitted := 22.0
	record := NewRecord("alice", "Alice", createdAt)
	record.Settings.SoundOn = false
	record.Facts["3|7"] = FactMastery{Streak: 0, Misses: 1}
	record.Facts["4|7"] = FactMastery{Streak: 2}
	record.AppendSession(SessionRecord{
		ID:                "session-1",
		FinishedAt:        createdAt.Add(5 * time.Minute),
		Mode:              ModeMixed,
		Tables:            []int{3, 7},
		Asked:             2,
		Correct:           1,
		Incorrect:         1,
		Accuracy:          0.5,
		TargetSuccessRate: 0.8,
		Attempts: []Attempt{
			{Fact: fact.New(3, 7), SubmittedAnswer: &submitted, CorrectAnswer: 21, Result: ResultWrong, DurationMs: 1200},
			{Fact: fact.New(4, 7), CorrectAnswer: 28, Result: ResultTimeout, DurationMs: 15000},
		},
	})
	require.NoError(t, store.Put(ctx, "alice", record))
	require.NoError(t, store.Put(ctx, "bob", NewRecord("bob", "Bob", createdAt)))

	got, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.False(t, got.Settings.SoundOn)
	assert.True(t, createdAt.Equal(got.CreatedAt))
	assert.Equal(t, record.Facts, got.Facts)
	require.Len(t, got.Sessions, 1)
	session := got.Sessions[0]
	assert.Equal(t, "session-1", session.ID)
	assert.Equal(t, ModeMixed, session.Mode)
	assert.Equal(t, []int{3, 7}, session.Tables)
	assert.True(t, createdAt.Add(5*time.Minute).Equal(session.FinishedAt))
	assert.InDelta(t, 0.5, session.Accuracy, 1e-9)
	assert.Equal(t, record.Sessions[0].Attempts, session.Attempts)

	// a second put replaces the previous state
	got.Facts["3|7"] = FactMastery{Streak: 1, Misses: 1}
	require.NoError(t, store.Put(ctx, "alice", got))
	again, err := store.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, FactMastery{Streak: 1, Misses: 1}, again.Facts["3|7"])
	assert.Len(t, again.Sessions, 1)

	learners, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, learners, 2)
	assert.Equal(t, "Alice", learners[0].Name)
	assert.Equal(t, "Bob", learners[1].Name)
}
