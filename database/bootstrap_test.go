package database

import (
	"bytes"
	stdlog "log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"agromonitor/entities"
)

func TestOpenMigratesPendingAlertIndex(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Raw(
		"SELECT count(*) FROM sqlite_master WHERE type = 'index' AND name = 'ux_alerts_pending_scope'",
	).Scan(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "x")
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	db, err := Open("sqlite", ":memory:")
	require.NoError(t, err)

	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newGormLogger(stdlog.New(&buf, "", 0))})

	var a entities.Alert
	err = quiet.First(&a, 12345).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	// real errors are still logged
	_ = quiet.Exec("SELECT * FROM no_such_table").Error
	assert.Contains(t, buf.String(), "no_such_table")
}
