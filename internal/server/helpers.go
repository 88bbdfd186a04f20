package server

import (
	"errors"

	"weconnect/internal/models"
	"weconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePagination extracts the page and per_page query parameters with
// the given default page size. Non-numeric or non-positive values fall
// back to the defaults.
func parsePagination(c *fiber.Ctx, defaultPerPage int) service.Page {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", defaultPerPage)
	return service.NewPage(page, perPage, defaultPerPage)
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// bodyPayload parses a flat JSON object of string fields, the shape the
// schema validator consumes. Non-string values fail the parse.
func bodyPayload(c *fiber.Ctx) (map[string]string, error) {
	payload := map[string]string{}
	if err := c.BodyParser(&payload); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}
	return payload, nil
}

// currentUser returns the authenticated user stored by AuthRequired.
func currentUser(c *fiber.Ctx) *models.User {
	return c.Locals("currentUser").(*models.User)
}

// respondError maps a service error to its HTTP status and renders it.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.HTTPStatus(err), err)
}
