package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agromonitor/pkg/rules"
)

var appStart = time.Now()

type HealthCtrl struct {
	db  *gorm.DB
	reg *rules.Registry
}

func NewHealthCtrl(db *gorm.DB, reg *rules.Registry) *HealthCtrl { return &HealthCtrl{db: db, reg: reg} }

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbOK := true
	dbErr := ""
	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil {
			dbOK = false
			dbErr = "db.DB(): " + err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
	} else {
		dbOK = false
		dbErr = "gorm db is nil"
	}

	rulesOK := h.reg != nil
	status := http.StatusOK
	if !dbOK || !rulesOK {
		status = http.StatusServiceUnavailable
	}

	type sub struct {
		OK    bool   `json:"ok"`
		Err   string `json:"err,omitempty"`
		Count int    `json:"count,omitempty"`
	}
	ruleCount := 0
	if rulesOK {
		ruleCount = len(h.reg.Catalog())
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": dbOK && rulesOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": sub{OK: dbOK, Err: dbErr},
			"rules":    sub{OK: rulesOK, Count: ruleCount},
		},
		"time": time.Now().Format(time.RFC3339),
	}

	return c.JSON(status, resp)
}
