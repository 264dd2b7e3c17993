package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// CropHandler handles HTTP requests for crop listings.
type CropHandler struct {
	service ports.CropService
}

func NewCropHandler(service ports.CropService) *CropHandler {
	return &CropHandler{service: service}
}

type listCropsResponse struct {
	Crops []*ports.CropWithFarmer `json:"crops"`
	Total int64                   `json:"total"`
}

// List returns a filtered, paginated page of listings.
//
// @Summary      List crop listings
// @Tags         crops
// @Produce      json
// @Param        farmerId  query  string  false  "Filter by owning farmer"
// @Param        q         query  string  false  "Free-text name search"
// @Param        status    query  string  false  "Filter by status"
// @Param        page      query  int     false  "Page number (default 1)"
// @Param        limit     query  int     false  "Page size (default 10, max 100)"
// @Success      200  {object}  listCropsResponse
// @Router       /api/crops [get]
func (h *CropHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListCropsInput{
		FarmerID: c.QueryParam("farmerId"),
		Query:    c.QueryParam("q"),
		Status:   c.QueryParam("status"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	if result.Crops == nil {
		result.Crops = []*ports.CropWithFarmer{}
	}
	return c.JSON(http.StatusOK, listCropsResponse{Crops: result.Crops, Total: result.Total})
}

// Create inserts a new listing from a multipart form.
//
// @Summary      Create a crop listing
// @Tags         crops
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  domain.Crop
// @Failure      400  {object}  map[string]string
// @Router       /api/crops [post]
func (h *CropHandler) Create(c echo.Context) error {
	input := ports.CreateCropInput{
		FarmerID:    c.FormValue("farmer_id"),
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Unit:        c.FormValue("unit"),
		HarvestDate: c.FormValue("harvest_date"),
		Location:    c.FormValue("location"),
	}

	var err error
	input.Quantity, err = strconv.ParseFloat(c.FormValue("quantity"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a number")
	}
	input.PricePerUnit, err = decimal.NewFromString(c.FormValue("price_per_unit"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_unit must be a number")
	}

	input.Image, err = formImage(c)
	if err != nil {
		return err
	}

	crop, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, crop)
}

// Update replaces a listing's mutable fields from a multipart form.
//
// @Summary      Update a crop listing
// @Tags         crops
// @Accept       multipart/form-data
// @Produce      json
// @Success      200  {object}  domain.Crop
// @Failure      404  {object}  map[string]string
// @Router       /api/crops/{id} [put]
func (h *CropHandler) Update(c echo.Context) error {
	input := ports.UpdateCropInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Unit:        c.FormValue("unit"),
		HarvestDate: c.FormValue("harvest_date"),
		Location:    c.FormValue("location"),
		Status:      c.FormValue("status"),
	}

	var err error
	input.Quantity, err = strconv.ParseFloat(c.FormValue("quantity"), 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a number")
	}
	input.PricePerUnit, err = decimal.NewFromString(c.FormValue("price_per_unit"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "price_per_unit must be a number")
	}

	input.Image, err = formImage(c)
	if err != nil {
		return err
	}

	crop, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, crop)
}

// Delete removes a listing and its image.
//
// @Summary      Delete a crop listing
// @Tags         crops
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/crops/{id} [delete]
func (h *CropHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// formImage reads the optional "image" part of a multipart request. A
// missing part returns (nil, nil); the open file is closed when the
// request ends, which outlives the service call.
func formImage(c echo.Context) (*ports.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable image upload")
	}
	c.Response().After(func() { _ = src.Close() })
	return &ports.ImageUpload{Filename: fh.Filename, Content: src}, nil
}
