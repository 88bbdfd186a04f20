package server

import (
	"weconnect/internal/models"
	"weconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateReview handles POST /api/v2/businesses/:businessId/reviews
// @Summary Review a business
// @Tags reviews
// @Security AccessToken
// @Success 201 {object} object{message=string,review=models.Review}
// @Failure 404 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /businesses/{businessId}/reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	businessID, err := s.parseID(c, "businessId")
	if err != nil {
		return nil
	}
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	review, err := s.reviewService.Create(c.Context(), currentUser(c).ID, businessID, payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Review sent",
		"review":  review,
	})
}

// GetBusinessReviews handles GET /api/v2/businesses/:businessId/reviews
// @Summary List a business's reviews, newest first
// @Tags reviews
// @Success 200 {object} object{results=[]models.Review}
// @Failure 404 {object} object{error=string}
// @Router /businesses/{businessId}/reviews [get]
func (s *Server) GetBusinessReviews(c *fiber.Ctx) error {
	businessID, err := s.parseID(c, "businessId")
	if err != nil {
		return nil
	}
	page := parsePagination(c, service.DefaultPublicPerPage)

	result, err := s.reviewService.ListForBusiness(c.Context(), businessID, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"results":       result.Reviews,
		"total_results": result.Info.TotalResults,
		"total_pages":   result.Info.TotalPages,
		"page":          result.Info.Page,
		"per_page":      result.Info.PerPage,
		"next_page":     result.Info.NextPage,
		"prev_page":     result.Info.PrevPage,
	})
}

// UpdateReview handles PUT /api/v2/businesses/reviews/:id
// @Summary Edit a review (author only)
// @Tags reviews
// @Security AccessToken
// @Success 200 {object} object{message=string,review=models.Review}
// @Failure 404 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /businesses/reviews/{id} [put]
func (s *Server) UpdateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	review, err := s.reviewService.Update(c.Context(), currentUser(c).ID, id, payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "review updated successfully",
		"review":  review,
	})
}

// DeleteReview handles DELETE /api/v2/businesses/reviews/:id
// @Summary Delete a review (author only)
// @Tags reviews
// @Security AccessToken
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /businesses/reviews/{id} [delete]
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.reviewService.Delete(c.Context(), currentUser(c).ID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "review deleted"})
}
