package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/pack"
	pkgErrors "agentpacks-registry/pkg/errors"
)

func TestMapError(t *testing.T) {
	h := New(nil, nil, 1024)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized, string(pkgErrors.CategoryUnauthenticated)},
		{"scope", pack.ErrInsufficientScope, http.StatusForbidden, codeInsufficientScope},
		{"not author", pack.ErrNotAuthor, http.StatusForbidden, string(pkgErrors.CategoryForbidden)},
		{"rate limited", pack.ErrRateLimited, http.StatusTooManyRequests, string(pkgErrors.CategoryRateLimited)},
		{"too large", pack.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, string(pkgErrors.CategoryPayloadTooLarge)},
		{"short name", pack.ErrNameTooShort, http.StatusBadRequest, codeInvalidName},
		{"reserved", pack.ErrNameReserved, http.StatusBadRequest, codeInvalidName},
		{"version", pack.ErrInvalidVersion, http.StatusBadRequest, codeInvalidVersion},
		{"manifest", fmt.Errorf("%w: keywords: expected array", pack.ErrInvalidManifest), http.StatusBadRequest, codeInvalidManifest},
		{"exists", pack.ErrVersionExists, http.StatusConflict, codeVersionExists},
		{"pack 404", pack.ErrPackNotFound, http.StatusNotFound, string(pkgErrors.CategoryNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr, ok := pkgErrors.AsHTTPError(h.mapError(tt.err))
			if !ok {
				t.Fatalf("mapError(%v) is not an HTTPError", tt.err)
			}
			if httpErr.Status != tt.status || httpErr.Code != tt.code {
				t.Errorf("got %d %s, want %d %s", httpErr.Status, httpErr.Code, tt.status, tt.code)
			}
		})
	}

	unknown := errors.New("boom")
	if got := h.mapError(unknown); got != unknown {
		t.Errorf("unknown errors should pass through, got %v", got)
	}
}

func TestTooLargeMessageNamesLimit(t *testing.T) {
	h := New(nil, nil, 2048)
	httpErr, _ := pkgErrors.AsHTTPError(h.tooLarge())
	if httpErr.Message != "Tarball exceeds maximum size of 2048 bytes" {
		t.Errorf("unexpected message %q", httpErr.Message)
	}
}
