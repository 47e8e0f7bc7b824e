package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/zvg-webapp/zvg-backend/models"
	"github.com/zvg-webapp/zvg-backend/shared"
)

type SearchHandler struct {
	Service SearchService
}

// SearchService is what the handler needs from the orchestrator.
type SearchService interface {
	Search(ctx context.Context, state string, auctionTypes, propertyTypes []string, minDays int) ([]models.Listing, error)
}

func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{Service: service}
}

// Search handles GET /api/search. The response is a bare JSON array of
// listings; an unknown state is a 400 echoing the input, a portal failure
// with nothing cached is a 502.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	state := c.Query("state")
	if state == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing required parameter: state",
		})
	}

	auctionTypes := splitParam(c.Query("auctionTypes"))
	propertyTypes := splitParam(c.Query("propertyTypes"))
	minDays := parseMinDays(c.Query("minDays"))

	listings, err := h.Service.Search(c.Context(), state, auctionTypes, propertyTypes, minDays)
	if err != nil {
		var unknownState *shared.UnknownStateError
		if errors.As(err, &unknownState) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": unknownState.Error(),
			})
		}
		var serviceErr *shared.ServiceError
		if errors.As(err, &serviceErr) && serviceErr.Category == shared.ErrorCategoryNetwork {
			serviceErr.LogError()
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "upstream portal unavailable",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(listings)
}

// Health handles GET /api/health
func (h *SearchHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// splitParam splits a comma-separated query parameter, dropping empties.
func splitParam(param string) []string {
	var values []string
	for _, v := range strings.Split(param, ",") {
		if v != "" {
			values = append(values, v)
		}
	}
	return values
}

// parseMinDays parses the minDays parameter. Non-numeric or negative input
// is treated as 0, never as a request error.
func parseMinDays(param string) int {
	days, err := strconv.Atoi(param)
	if err != nil || days < 0 {
		return 0
	}
	return days
}
