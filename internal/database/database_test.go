package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {

	db, teardown, err := InitDB(":memory:", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	if teardown != nil {
		defer teardown()
	} else {
		defer db.Close()
	}

	for _, table := range []string{"players", "player_mode_stats", "tournaments", "tournament_players", "tournament_matches", "tg_chats", "chat_admins", "chat_members"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name, "The '%s' table should be created", table)
	}

	// Foreign key enforcement must be on for cascade deletes to work.
	var fk int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}
