package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/model"
	"github.com/nightbite/restaurant-booking/internal/repository"
)

type restaurantReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	PriceRange  *int     `json:"price_range"`
	Tag         string   `json:"tag"`
	Ratings     *float64 `json:"ratings"`
	ImageURLs   []string `json:"image_urls"`
}

func (req *restaurantReq) toModel() (*model.Restaurant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	rec := &model.Restaurant{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Address:     strings.TrimSpace(req.Address),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Tag:         strings.ToLower(strings.TrimSpace(req.Tag)),
	}
	if req.PriceRange != nil && model.ValidPriceRange(*req.PriceRange) {
		pr := *req.PriceRange
		rec.PriceRange = &pr
	}
	if req.Ratings != nil {
		rec.Ratings = model.ClampRating(*req.Ratings)
	}
	return rec, nil
}

// ListRestaurants returns every restaurant unfiltered for the admin table.
func (h *AdminHandler) ListRestaurants(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	items, err := h.Restaurants.List(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list restaurants failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": items})
}

// CreateRestaurant inserts a restaurant, or updates the existing row when
// one with the same name and address already exists.
func (h *AdminHandler) CreateRestaurant(c echo.Context) error {
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rec, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	id, err := h.Restaurants.Create(ctx, rec, req.ImageURLs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create restaurant failed"})
	}
	created, err := h.Restaurants.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateRestaurant overwrites the record and its image references.
func (h *AdminHandler) UpdateRestaurant(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rec, err := req.toModel()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rec.ID = id

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Restaurants.Update(ctx, rec, req.ImageURLs); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update restaurant failed"})
	}
	updated, err := h.Restaurants.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteRestaurant removes the record and its image references.
func (h *AdminHandler) DeleteRestaurant(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Restaurants.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete restaurant failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
