package handler

import (
	"net/http"
	"strconv"

	"mailmate/internal/service"

	"github.com/labstack/echo/v4"
)

type GmailHandler struct {
	emailService service.EmailService
	logger       echo.Logger
}

func NewGmailHandler(emailService service.EmailService, logger echo.Logger) *GmailHandler {
	return &GmailHandler{
		emailService: emailService,
		logger:       logger,
	}
}

// DirectConversations returns raw, unenriched thread messages for a sender
// search, each tagged incoming or outgoing, capped at max_results.
func (h *GmailHandler) DirectConversations(c echo.Context) error {
	userEmail := c.Param("user_email")
	query := c.QueryParam("search_query")

	var maxResults int64
	if raw := c.QueryParam("max_results"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && parsed > 0 {
			maxResults = parsed
		}
	}

	messages, err := h.emailService.ListConversations(c.Request().Context(), userEmail, query, maxResults)
	if err != nil {
		h.logger.Error("Failed to list conversations:", err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, messages)
}
