package handler

import (
	"fmt"
	"net/http"

	"mailmate/internal/enrich"
	"mailmate/internal/service"

	"github.com/labstack/echo/v4"
)

type EmailHandler struct {
	emailService service.EmailService
	logger       echo.Logger
}

func NewEmailHandler(emailService service.EmailService, logger echo.Logger) *EmailHandler {
	return &EmailHandler{
		emailService: emailService,
		logger:       logger,
	}
}

// FetchEmails pulls new messages from Gmail into storage for the user.
func (h *EmailHandler) FetchEmails(c echo.Context) error {
	userEmail := c.Param("user_email")

	count, err := h.emailService.FetchEmails(c.Request().Context(), userEmail)
	if err != nil {
		h.logger.Error("Failed to fetch emails:", err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Successfully fetched and saved %d emails.", count),
	})
}

// ProcessEmails triggers the background enrichment job and acknowledges
// immediately; results appear once the job finishes.
func (h *EmailHandler) ProcessEmails(c echo.Context) error {
	userEmail := c.Param("user_email")

	queued, err := h.emailService.StartProcessing(c.Request().Context(), userEmail)
	if err != nil {
		h.logger.Error("Failed to start processing:", err)
		return errorResponse(c, err)
	}

	if queued == 0 {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "No new emails to process.",
		})
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": fmt.Sprintf("Started processing %d emails in the background.", queued),
	})
}

// GetEmails lists the user's processed emails, highest priority first, with
// an optional case-insensitive category filter.
func (h *EmailHandler) GetEmails(c echo.Context) error {
	userEmail := c.Param("user_email")
	category := c.QueryParam("category")

	emails, err := h.emailService.ListEmails(c.Request().Context(), userEmail, category)
	if err != nil {
		h.logger.Error("Failed to list emails:", err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, emails)
}

// GetCategories lists the labels the categorizer can assign, so the frontend
// filter stays in sync with the pipeline.
func (h *EmailHandler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"categories": enrich.Categories(),
	})
}
