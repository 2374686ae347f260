package slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB renders statements without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=pg dbname=pg sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestUpsertSlotOverwritesOnKeyConflict(t *testing.T) {
	db := dryRunDB(t)
	row := stateSlot{
		Key:       "pg_connect_fees",
		Payload:   datatypes.JSON(`{"version":1,"seq":5,"data":[]}`),
		UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return upsertSlot(tx, &row)
	})

	assert.Contains(t, sql, `INSERT INTO "state_slots"`)
	assert.Contains(t, sql, `ON CONFLICT ("key") DO UPDATE SET`)
	assert.Contains(t, sql, `"payload"="excluded"."payload"`)
	assert.Contains(t, sql, `"updated_at"="excluded"."updated_at"`)
	assert.Contains(t, sql, "pg_connect_fees")
}

func TestFindSlotSelectsByKey(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var row stateSlot
		return findSlot(tx, "pg_connect_tickets", &row)
	})

	assert.Contains(t, sql, `FROM "state_slots"`)
	assert.Contains(t, sql, `key = 'pg_connect_tickets'`)
	assert.Contains(t, sql, "LIMIT 1")
}
