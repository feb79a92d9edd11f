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

type menuItemReq struct {
	RestaurantID uint64  `json:"restaurant_id"`
	ItemName     string  `json:"item_name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
}

// AddMenuItem inserts one dish under an existing restaurant.
func (h *AdminHandler) AddMenuItem(c echo.Context) error {
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ItemName = strings.TrimSpace(req.ItemName)
	if req.RestaurantID == 0 || req.ItemName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurant_id and item_name required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if _, err := h.Restaurants.Get(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}

	item := &model.MenuItem{
		RestaurantID: req.RestaurantID,
		ItemName:     req.ItemName,
		Description:  strings.TrimSpace(req.Description),
		Price:        req.Price,
		ImageURL:     strings.TrimSpace(req.ImageURL),
	}
	if err := h.Menu.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrNegativePrice) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create menu item failed"})
	}
	return c.JSON(http.StatusCreated, item)
}

// DeleteMenuItem removes one dish by id.
func (h *AdminHandler) DeleteMenuItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	if err := h.Menu.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete menu item failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
