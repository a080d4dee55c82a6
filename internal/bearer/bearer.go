// Package bearer extracts bearer tokens from Authorization headers.
package bearer

import (
	"net/http"
	"strings"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
)

// FromRequest returns the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func FromRequest(r *http.Request) (string, error) {
	return Parse(r.Header.Get("Authorization"))
}

func Parse(header string) (string, error) {
	scheme, tok, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrUnauthenticated
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", domain.ErrUnauthenticated
	}
	return tok, nil
}
