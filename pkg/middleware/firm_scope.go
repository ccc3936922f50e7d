package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	catalog "agromonitor/pkg/catalog/service"
)

const (
	FirmHeader = "X-Firm-ID"
	FirmKey    = "firm_id"
)

// FirmScope reads the caller's firm from the X-Firm-ID header. When enforced
// is false it only records the header if present (development). When true a
// missing header is 401, a :firm_id route parameter naming another firm
// is 403, and the firm is attached to the request context so services hide
// other firms' entities.
func FirmScope(enforced bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(FirmHeader)
			if raw == "" {
				if ck, err := c.Cookie("FIRM_ID"); err == nil {
					raw = ck.Value
				}
			}
			if raw == "" {
				if !enforced {
					return next(c)
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing " + FirmHeader})
			}
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + FirmHeader})
			}
			if enforced {
				if p := c.Param("firm_id"); p != "" && p != strconv.FormatUint(id, 10) {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "firm out of scope"})
				}
				req := c.Request()
				c.SetRequest(req.WithContext(catalog.WithFirm(req.Context(), uint(id))))
			}
			c.Set(FirmKey, uint(id))
			return next(c)
		}
	}
}
