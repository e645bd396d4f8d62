package auth

import (
	"net/http"
	"strings"
)

// ExtractBearerToken returns the token from "Authorization: Bearer <token>".
// Any other header shape yields "".
func ExtractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
