package router

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"mailmate/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	emailHandler *handler.EmailHandler,
	dossierHandler *handler.DossierHandler,
	gmailHandler *handler.GmailHandler,
	templatesPath string,
) {
	// Authentication
	e.GET("/auth/login", authHandler.LoginHandler)
	e.GET("/auth/callback", authHandler.CallbackHandler)
	e.GET("/auth/logout", authHandler.LogoutHandler)

	// Email workflow
	e.GET("/emails/categories", emailHandler.GetCategories)
	e.GET("/emails/fetch/:user_email", emailHandler.FetchEmails)
	e.POST("/emails/process/:user_email", emailHandler.ProcessEmails)
	e.GET("/emails/:user_email", emailHandler.GetEmails)

	// Analytics
	e.GET("/dossier/:user_email", dossierHandler.GetDossier)
	e.GET("/gmail/direct-conversations/:user_email", gmailHandler.DirectConversations)

	// Ops
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Frontend pages
	servePage := func(name string) echo.HandlerFunc {
		return func(c echo.Context) error {
			pagePath := filepath.Join(templatesPath, name)
			content, err := os.ReadFile(pagePath)
			if err != nil {
				return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("Template not found: %v", err))
			}
			return c.HTML(http.StatusOK, string(content))
		}
	}
	e.GET("/", servePage("index.html"))
	e.GET("/app", servePage("app.html"))
	e.GET("/dossier-view", servePage("dossier.html"))
	e.GET("/thread-view", servePage("thread.html"))
}
