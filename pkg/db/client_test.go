package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.Exec(`CREATE TABLE IF NOT EXISTS probe (id INTEGER PRIMARY KEY, note TEXT)`).Error; err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTxCommits(t *testing.T) {
	client := &Client{conn: openSQLite(t)}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec(`INSERT INTO probe (note) VALUES ('kept')`).Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, client.conn.Raw(`SELECT COUNT(*) FROM probe WHERE note = 'kept'`).Scan(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	client := &Client{conn: openSQLite(t)}

	err := client.WithTx(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Exec(`INSERT INTO probe (note) VALUES ('discarded')`).Error; err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	var count int64
	require.NoError(t, client.conn.Raw(`SELECT COUNT(*) FROM probe WHERE note = 'discarded'`).Scan(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestIsUniqueViolation(t *testing.T) {
	require.False(t, IsUniqueViolation(nil, ""))
	require.True(t, IsUniqueViolation(errFake("duplicate key value violates unique constraint \"guests_email_key\""), ""))
	require.True(t, IsUniqueViolation(errFake("UNIQUE constraint failed: guests.email"), "guests.email"))
	require.False(t, IsUniqueViolation(errFake("connection refused"), ""))
}

type errFake string

func (e errFake) Error() string { return string(e) }
