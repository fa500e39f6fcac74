package handler

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// sessionMaxAge bounds how long a login survives before the user has to go
// through the Google consent flow again.
const sessionMaxAge = 30 * 24 * 60 * 60 // seconds

// NewSessionStore builds the cookie store shared by gothic's OAuth state and
// the login session. Lax SameSite keeps the cookie on the OAuth redirect back
// from Google.
func NewSessionStore(secret []byte) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}
