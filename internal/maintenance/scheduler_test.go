package maintenance_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isdelr/shopsmart-be/internal/database"
	"github.com/isdelr/shopsmart-be/internal/maintenance"
	"github.com/isdelr/shopsmart-be/internal/metrics"
)

func TestScheduler_RunOnce(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db))

	s := maintenance.NewScheduler(db, metrics.New())
	assert.NoError(t, s.RunOnce(context.Background()))
}

func TestScheduler_StartStop(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := maintenance.NewScheduler(db, nil)
	assert.Error(t, s.Start("not a cron line"))

	require.NoError(t, s.Start("@daily"))
	s.Stop()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := maintenance.NewScheduler(nil, nil)
	s.Stop()
}
