package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nightbite/restaurant-booking/internal/catalog"
	"github.com/nightbite/restaurant-booking/internal/repository"
)

// PublicHandler serves the guest-facing catalog: the filtered and sorted
// restaurant list, search, venue details and events. No auth required.
type PublicHandler struct {
	Catalog *catalog.Service
	Events  *repository.EventRepo
}

func NewPublicHandler(s *catalog.Service, ev *repository.EventRepo) *PublicHandler {
	return &PublicHandler{Catalog: s, Events: ev}
}

// ListRestaurants handles GET /v1/restaurants with optional price_range,
// tag, sort (ratings|distance) and user_lat/user_lng query parameters. Tag
// counts in the response honor the price filter but ignore the tag filter.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	q := catalog.RankQuery{
		Tag:  strings.TrimSpace(c.QueryParam("tag")),
		Sort: strings.TrimSpace(c.QueryParam("sort")),
	}
	if v := c.QueryParam("price_range"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.PriceRange = &n
		}
	}
	if lat, err := strconv.ParseFloat(c.QueryParam("user_lat"), 64); err == nil {
		if lng, err := strconv.ParseFloat(c.QueryParam("user_lng"), 64); err == nil {
			q.UserLat, q.UserLng = &lat, &lng
		}
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	ranked, counts, err := h.Catalog.ListForDashboard(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list restaurants failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"restaurants": ranked,
		"tag_counts":  counts,
	})
}

// Search handles GET /v1/restaurants/search?q=term.
func (h *PublicHandler) Search(c echo.Context) error {
	term := strings.TrimSpace(c.QueryParam("q"))
	if term == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	items, err := h.Catalog.Search(ctx, term)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": items})
}

// Details handles GET /v1/restaurants/:id, returning the venue and its menu.
func (h *PublicHandler) Details(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	r, menu, err := h.Catalog.Details(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurant": r, "menu": menu})
}

// ListEvents handles GET /v1/events, soonest first, with restaurant name and
// cover image joined in.
func (h *PublicHandler) ListEvents(c echo.Context) error {
	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	items, err := h.Events.ListWithRestaurant(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": items})
}

type rateReq struct {
	Rating json.Number `json:"rating" form:"rating"`
}

// Rate handles POST /v1/restaurants/:id/rating. Values outside [0,5] are
// clamped; a non-numeric value is rejected as rating_out_of_range.
func (h *PublicHandler) Rate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req rateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	rating, err := strconv.ParseFloat(req.Rating.String(), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating_out_of_range"})
	}

	ctx, cancel := dbCtx(c.Request().Context())
	defer cancel()

	stored, err := h.Catalog.UpdateRating(ctx, id, rating)
	if err != nil {
		if errors.Is(err, repository.ErrRestaurantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rating failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "ratings": stored})
}
