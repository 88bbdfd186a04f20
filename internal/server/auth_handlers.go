package server

import (
	"weconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/v2/auth/register
// @Summary Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string,user=models.PublicProfile}
// @Failure 400 {object} object{errors=object}
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	user, err := s.authService.Register(c.Context(), payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user created!",
		"user":    user.Public(),
	})
}

// Login handles POST /api/v2/auth/login
// @Summary Authenticate a user and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{message=string,access-token=string}
// @Failure 404 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	payload, err := bodyPayload(c)
	if err != nil {
		// The login boundary deliberately hides parse details from
		// the client.
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("incorrect information"))
	}

	token, _, err := s.authService.Login(c.Context(), payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":      "Login successful!",
		"access-token": token,
	})
}

// Logout handles POST /api/v2/auth/logout
// @Summary Clear the current session
// @Tags auth
// @Security AccessToken
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.authService.Logout(c.Context(), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "logged out"})
}

// ResetPassword handles PUT /api/v2/auth/reset-password
// @Summary Replace the current user's password
// @Tags auth
// @Security AccessToken
// @Success 201 {object} object{message=string}
// @Failure 401 {object} object{errors=object}
// @Router /auth/reset-password [put]
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.authService.ResetPassword(c.Context(), currentUser(c), payload); err != nil {
		// Validation failures on this endpoint respond 401, matching
		// the original API contract.
		if _, ok := err.(models.FieldErrors); ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "password updated"})
}

// UpdateProfile handles PUT /api/v2/auth/update-profile
// @Summary Overwrite the current user's profile fields
// @Tags auth
// @Security AccessToken
// @Success 201 {object} object{message=string,user=models.PublicProfile}
// @Failure 401 {object} object{errors=object}
// @Router /auth/update-profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	user, err := s.authService.UpdateProfile(c.Context(), currentUser(c), payload)
	if err != nil {
		if _, ok := err.(models.FieldErrors); ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user updated!",
		"user":    user.Public(),
	})
}

// ForgotPassword handles PUT /api/v2/auth/forgot-password
// @Summary Email a temporary password to a registered address
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/forgot-password [put]
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	payload, err := bodyPayload(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.authService.ForgotPassword(c.Context(), payload); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "check your email and log in with the new password",
	})
}
