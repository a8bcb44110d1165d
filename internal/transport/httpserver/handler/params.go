package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledger-app-go/internal/codec"
)

// parseDateFallback parses YYYY-MM-DD, returning the zero time when the value
// is blank or malformed so callers default to "now".
func parseDateFallback(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(codec.DateLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int %q", value)
	}
	return parsed, nil
}

func parseUintID(value string) (uint, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return uint(parsed), nil
}

func hasExtension(filename string, extensions ...string) bool {
	lowered := strings.ToLower(filename)
	for _, ext := range extensions {
		if strings.HasSuffix(lowered, ext) {
			return true
		}
	}
	return false
}
