package handler

import (
	"net/http"

	"mailmate/internal/service"

	"github.com/labstack/echo/v4"
)

type DossierHandler struct {
	dossierService service.DossierService
	logger         echo.Logger
}

func NewDossierHandler(dossierService service.DossierService, logger echo.Logger) *DossierHandler {
	return &DossierHandler{
		dossierService: dossierService,
		logger:         logger,
	}
}

// GetDossier returns the aggregate view for emails matching the search
// query. A query with no matches returns an empty dossier, not an error.
func (h *DossierHandler) GetDossier(c echo.Context) error {
	userEmail := c.Param("user_email")
	query := c.QueryParam("search_query")

	dossier, err := h.dossierService.GetDossier(c.Request().Context(), userEmail, query)
	if err != nil {
		h.logger.Error("Failed to build dossier:", err)
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, dossier)
}
