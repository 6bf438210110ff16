package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct{ db *gorm.DB }

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

func (h *HealthCtrl) Check(c echo.Context) error {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err != nil {
		status, dbStatus = "degraded", err.Error()
	} else {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
		defer cancel()
		if err := sqlDB.PingContext(ctx); err != nil {
			status, dbStatus = "degraded", err.Error()
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]any{
		"status":  status,
		"db":      dbStatus,
		"uptime":  time.Since(appStart).Round(time.Second).String(),
		"checked": time.Now().UTC().Format(time.RFC3339),
	})
}
