package server

import (
	"weconnect/internal/models"
	"weconnect/internal/repository"
	"weconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateBusiness handles POST /api/v2/businesses
// @Summary Register a new business owned by the current user
// @Tags businesses
// @Security AccessToken
// @Success 201 {object} object{message=string,business=models.Business}
// @Failure 400 {object} object{errors=object}
// @Router /businesses [post]
func (s *Server) CreateBusiness(c *fiber.Ctx) error {
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	business, err := s.businessService.Create(c.Context(), currentUser(c).ID, payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Business created",
		"business": business,
	})
}

// GetBusiness handles GET /api/v2/businesses/:id
// @Summary Fetch one business
// @Tags businesses
// @Success 200 {object} models.Business
// @Failure 404 {object} object{error=string}
// @Router /businesses/{id} [get]
func (s *Server) GetBusiness(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	business, err := s.businessService.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(business)
}

// GetUserBusinesses handles GET /api/v2/businesses/user
// @Summary List the current user's businesses, paginated
// @Tags businesses
// @Security AccessToken
// @Success 200 {object} object{results=[]models.Business}
// @Router /businesses/user [get]
func (s *Server) GetUserBusinesses(c *fiber.Ctx) error {
	page := parsePagination(c, service.DefaultOwnerPerPage)

	result, err := s.businessService.ListByOwner(c.Context(), currentUser(c).ID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(businessPageResponse(result))
}

// GetAllBusinesses handles GET /api/v2/businesses
// @Summary List all businesses, paginated, with optional filters
// @Tags businesses
// @Success 200 {object} object{results=[]models.Business}
// @Router /businesses [get]
func (s *Server) GetAllBusinesses(c *fiber.Ctx) error {
	return s.searchBusinesses(c)
}

// SearchBusinesses handles GET /api/v2/businesses/search
// @Summary Search businesses by name, location and/or category
// @Tags businesses
// @Success 200 {object} object{results=[]models.Business}
// @Router /businesses/search [get]
func (s *Server) SearchBusinesses(c *fiber.Ctx) error {
	return s.searchBusinesses(c)
}

// searchBusinesses backs both the public listing and the search
// endpoint; an absent filter imposes no constraint, so the unfiltered
// listing is just a search with no filters.
func (s *Server) searchBusinesses(c *fiber.Ctx) error {
	page := parsePagination(c, service.DefaultPublicPerPage)
	filters := repository.SearchFilters{
		Name:     c.Query("q"),
		Location: c.Query("location"),
		Category: c.Query("category"),
	}

	result, err := s.businessService.Search(c.Context(), filters, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(businessPageResponse(result))
}

// UpdateBusiness handles PUT /api/v2/businesses/:id
// @Summary Overwrite a business's mutable fields (owner only)
// @Tags businesses
// @Security AccessToken
// @Success 200 {object} object{message=string,business=models.Business}
// @Failure 404 {object} object{error=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /businesses/{id} [put]
func (s *Server) UpdateBusiness(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	business, err := s.businessService.Update(c.Context(), currentUser(c).ID, id, payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Business updated",
		"business": business,
	})
}

// DeleteBusiness handles DELETE /api/v2/businesses/:id
// @Summary Delete a business and its reviews (owner only)
// @Tags businesses
// @Security AccessToken
// @Success 201 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Router /businesses/{id} [delete]
func (s *Server) DeleteBusiness(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.businessService.Delete(c.Context(), currentUser(c).ID, id); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "business deleted"})
}

func businessPageResponse(page *service.BusinessPage) fiber.Map {
	return fiber.Map{
		"results":       page.Businesses,
		"total_results": page.Info.TotalResults,
		"total_pages":   page.Info.TotalPages,
		"page":          page.Info.Page,
		"per_page":      page.Info.PerPage,
		"next_page":     page.Info.NextPage,
		"prev_page":     page.Info.PrevPage,
	}
}
