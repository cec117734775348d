package server

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func parseOptionalInt64(value string) (*int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseIntQuery reads an optional integer query parameter. Absent values
// yield def; malformed or negative values are a validation error on name.
func parseIntQuery(c *gin.Context, name string, def int) (int, error) {
	parsed, err := parseOptionalInt64(c.Query(name))
	if err != nil || (parsed != nil && *parsed < 0) {
		return 0, newValidationError(name, "invalid_"+name, name+" must be a non-negative integer")
	}
	if parsed == nil {
		return def, nil
	}
	return int(*parsed), nil
}

func parseInt64Query(c *gin.Context, name string) (int64, error) {
	parsed, err := parseOptionalInt64(c.Query(name))
	if err != nil || (parsed != nil && *parsed < 0) {
		return 0, newValidationError(name, "invalid_"+name, name+" must be a non-negative integer")
	}
	if parsed == nil {
		return 0, nil
	}
	return *parsed, nil
}

// parseIDParam reads a positive integer path parameter.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	parsed, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || parsed <= 0 {
		return 0, newValidationError(name, "invalid_"+name, name+" must be a positive integer")
	}
	return parsed, nil
}
