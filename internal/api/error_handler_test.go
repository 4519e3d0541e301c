package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"role not found", domain.ErrRoleNotFound, http.StatusNotFound, "role not found"},
		{"product not found", domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
		{"client already assigned", domain.ErrClientAlreadyAssigned, http.StatusConflict, "product already has a client"},
		{"duplicate key", domain.ErrDuplicateKey, http.StatusConflict, "duplicate value for unique field"},
		{"echo error passthrough", echo.NewHTTPError(http.StatusBadRequest, "bad payload"), http.StatusBadRequest, "bad payload"},
		{"unexpected error", errors.New("mongo: socket closed"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/products/p-1", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handle(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["error"] != tc.msg {
				t.Errorf("expected %q, got %q", tc.msg, resp["error"])
			}
		})
	}
}

// Wrapped errors must still map; services add context with fmt.Errorf %w.
func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/users/u-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handle(fmt.Errorf("load user: %w", domain.ErrUserNotFound), c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
