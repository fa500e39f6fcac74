package handler

import (
	"net/http"
	"net/url"

	"mailmate/internal/config"
	"mailmate/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
)

type AuthHandler struct {
	authService service.AuthService
	config      *config.Config
	logger      echo.Logger
}

func NewAuthHandler(authService service.AuthService, config *config.Config, logger echo.Logger) *AuthHandler {
	// Set up goth with Google provider
	gothic.Store = NewSessionStore([]byte(config.SessionSecret))

	goth.UseProviders(
		google.New(
			config.GoogleClientID,
			config.GoogleClientSecret,
			config.BaseURL+"/auth/callback",
			"https://www.googleapis.com/auth/gmail.readonly",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		),
	)

	return &AuthHandler{
		authService: authService,
		config:      config,
		logger:      logger,
	}
}

// withProvider marks the request as a Google auth request so gothic can
// resolve the provider.
func withProvider(c echo.Context) *http.Request {
	req := c.Request()
	q := req.URL.Query()
	q.Set("provider", "google")
	req.URL.RawQuery = q.Encode()
	return req
}

// LoginHandler redirects the browser to the Google consent screen.
func (h *AuthHandler) LoginHandler(c echo.Context) error {
	gothic.BeginAuthHandler(c.Response(), withProvider(c))
	return nil
}

// CallbackHandler is the OAuth redirect target. It upserts the user with
// fresh tokens and sends the browser back to the frontend with the
// authenticated address in the query string.
func (h *AuthHandler) CallbackHandler(c echo.Context) error {
	req := withProvider(c)

	googleUser, err := gothic.CompleteUserAuth(c.Response(), req)
	if err != nil {
		h.logger.Error("Failed to complete user auth:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Authentication failed",
		})
	}

	user, err := h.authService.GetOrCreateUser(
		c.Request().Context(),
		googleUser.Provider+"_"+googleUser.UserID,
		googleUser.Email,
		googleUser.Name,
		googleUser.AccessToken,
		googleUser.RefreshToken,
		googleUser.ExpiresAt,
	)
	if err != nil {
		h.logger.Error("Failed to get or create user:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to process user",
		})
	}

	session, _ := gothic.Store.Get(req, "mailmate_session")
	session.Values["user_email"] = user.Email
	if err := session.Save(req, c.Response()); err != nil {
		h.logger.Error("Failed to save session:", err)
	}

	redirect := h.config.FrontendURL + "/app?email=" + url.QueryEscape(user.Email)
	return c.Redirect(http.StatusTemporaryRedirect, redirect)
}

// LogoutHandler clears the session and sends the browser home. The frontend
// drops its stored address on this redirect.
func (h *AuthHandler) LogoutHandler(c echo.Context) error {
	req := withProvider(c)
	_ = gothic.Logout(c.Response(), req)

	session, _ := gothic.Store.Get(req, "mailmate_session")
	delete(session.Values, "user_email")
	_ = session.Save(req, c.Response())

	return c.Redirect(http.StatusTemporaryRedirect, "/")
}
