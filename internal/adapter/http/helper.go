package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

// pathID parses a numeric path param; 0 means absent or malformed.
func pathID(c echo.Context, name string) uint64 {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func queryBool(c echo.Context, name string) bool {
	v := strings.ToLower(strings.TrimSpace(c.QueryParam(name)))
	return v == "true" || v == "1" || v == "yes"
}

func queryInt(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func queryFloat(c echo.Context, name string, def float64) float64 {
	if v := c.QueryParam(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
