// database/bootstrap.go
package database

import (
	"fmt"
	stdlog "log"
	"os"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"agromonitor/entities"
	"agromonitor/pkg/logger"
)

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&entities.Firm{},
		&entities.Premise{},
		&entities.Lot{},
		&entities.SeedVariety{},
		&entities.SoilAnalysis{},
		&entities.SoilObjective{},
		&entities.SeedAnalysis{},
		&entities.RainfallRecord{},
		&entities.PastureReading{},
		&entities.Fertilization{},
		&entities.Alert{},
	}
}

// Open connects with the configured driver and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         newGormLogger(stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags)),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "", "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		if err == nil {
			err = limitSQLiteConns(db)
		}
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// newGormLogger logs slow queries and real errors. Empty "latest" lookups are
// normal and are not reported as record-not-found errors.
func newGormLogger(w gormlogger.Writer) gormlogger.Interface {
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// sqlite serialises writers anyway; a single connection also keeps
// ":memory:" databases shared across goroutines.
func limitSQLiteConns(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	// run after AutoMigrate: the index needs the alerts table
	if err := migratePendingAlertIndex(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// migratePendingAlertIndex adds a partial unique index so two concurrent
// verification runs cannot both insert a pending alert for the same scope
// and rule. MySQL has no partial indexes; there the application-level check
// is the only guard.
func migratePendingAlertIndex(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		log := logger.WithComponent("database")
		log.Warn().
			Str("dialect", db.Dialector.Name()).
			Msg("pending alert uniqueness enforced by application check only")
		return nil
	}
	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS ux_alerts_pending_scope
ON alerts (entity_type, entity_id, rule_id)
WHERE status = 'pending'
`).Error
}
