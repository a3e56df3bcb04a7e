package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/plotdesk/plotdesk-backend/pkg/errors"
)

// ParseQueryUint reads an optional numeric query parameter. A missing or
// blank value yields nil.
func ParseQueryUint(r *http.Request, key string) (*uint, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	parsed := uint(value)
	return &parsed, nil
}

// ParsePathUint reads a required numeric path segment value.
func ParsePathUint(raw, field string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive number").WithDetails(map[string]any{"field": field})
	}
	return uint(value), nil
}
