package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.RunMigrations(context.Background()))
	return db
}

func TestRunMigrations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	version, err := db.MigrationVersion(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))

	// Running twice is a no-op
	require.NoError(t, db.RunMigrations(ctx))

	for _, table := range []string{"users", "user_goals", "questions", "daily_logs", "habits", "habit_logs", "skills", "topics", "user_skill_progress", "user_attempts"} {
		var name string
		err := db.QueryRowContext(ctx, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestExecReturningID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first, err := db.ExecReturningID(ctx, "INSERT INTO skills (name, icon, description) VALUES (?, ?, ?)", "Go", "", "")
	require.NoError(t, err)
	second, err := db.ExecReturningID(ctx, "INSERT INTO skills (name, icon, description) VALUES (?, ?, ?);", "Rust", "", "")
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestWithTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	count := func() int {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM skills").Scan(&n))
		return n
	}

	err := db.WithTx(ctx, func(tx *Tx) error {
		_, err := tx.ExecReturningID(ctx, "INSERT INTO skills (name) VALUES (?)", "Kept")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count())

	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO skills (name) VALUES (?)", "Dropped"); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, count())
}

func TestForeignKeysEnforced(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		"INSERT INTO daily_logs (user_id, log_date) VALUES (?, ?)", "missing-user", "2024-01-01")
	assert.Error(t, err)

	_, err = db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
		"u1", "a@example.com", "hash", time.Now().UTC())
	require.NoError(t, err)
	_, err = db.ExecContext(ctx,
		"INSERT INTO daily_logs (user_id, log_date) VALUES (?, ?)", "u1", "2024-01-01")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx,
		"INSERT INTO daily_logs (user_id, log_date) VALUES (?, ?)", "u1", "2024-01-01")
	assert.Error(t, err, "one log per user per day")
}
