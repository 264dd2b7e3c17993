package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// AgroplanHandler serves the crop-planning analysis endpoint.
type AgroplanHandler struct {
	service ports.AgroplanService
}

func NewAgroplanHandler(service ports.AgroplanService) *AgroplanHandler {
	return &AgroplanHandler{service: service}
}

// Analyze produces a crop recommendation plan from soil and location
// input. The form is multipart to allow an optional field-photo upload,
// which is accepted and ignored by the analysis.
//
// @Summary      Analyze soil and location for crop recommendations
// @Tags         agroplan
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  ports.RecommendationPlan
// @Failure      400  {object}  map[string]string
// @Router       /api/agroplan/analyze [post]
func (h *AgroplanHandler) Analyze(c echo.Context) error {
	plan, err := h.service.Analyze(c.Request().Context(), ports.AnalyzeInput{
		UserID:        c.FormValue("user_id"),
		SoilType:      c.FormValue("soil_type"),
		Location:      c.FormValue("location"),
		PreviousCrops: c.FormValue("previous_crops"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, plan)
}
