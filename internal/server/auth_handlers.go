package server

import (
	"time"

	"fieldbook/internal/auth"
	"fieldbook/internal/cache"
	"fieldbook/internal/models"
	"fieldbook/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// tokenPair issues a fresh access/refresh pair for the user and persists the
// refresh JTI, superseding any previously issued refresh token.
func (s *Server) tokenPair(c *fiber.Ctx, user *models.User) (string, string, error) {
	accessToken, _, err := auth.NewAccessToken(user, s.config.AccessTokenSecret)
	if err != nil {
		return "", "", err
	}
	refreshToken, refreshJTI, err := auth.NewRefreshToken(user.ID, s.config.RefreshTokenSecret)
	if err != nil {
		return "", "", err
	}
	if err := s.userRepo.SetRefreshTokenID(c.Context(), user.ID, refreshJTI); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new account with an email or phone number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,phone_number=string,password=string,first_name=string,last_name=string} true "Signup request"
// @Success 201 {object} object{access_token=string,refresh_token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password"`
		FirstName   string `json:"first_name"`
		LastName    string `json:"last_name"`
		DateOfBirth string `json:"date_of_birth"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Email == "" && req.PhoneNumber == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("An email or phone number is required"))
	}
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}
	if req.PhoneNumber != "" {
		if err := validation.ValidatePhoneNumber(req.PhoneNumber); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}
	if err := validation.ValidateName("first_name", req.FirstName); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateName("last_name", req.LastName); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if req.Email != "" {
		existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if existing != nil {
			return models.RespondWithError(c, fiber.StatusConflict,
				models.NewConflictError("An account with this email already exists"))
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  req.DateOfBirth,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return respondServiceError(c, err)
	}

	accessToken, refreshToken, err := s.tokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate and return an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{email=string,password=string} true "Login credentials"
// @Success 200 {object} object{access_token=string,refresh_token=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil || !auth.ComparePassword(req.Password, user.PasswordHash) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	accessToken, refreshToken, err := s.tokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          user,
	})
}

// Refresh handles POST /api/auth/refresh
// @Summary Rotate token pair
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{refresh_token=string} true "Refresh request"
// @Success 200 {object} object{access_token=string,refresh_token=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	userID, jti, err := auth.ParseRefreshToken(req.RefreshToken, s.config.RefreshTokenSecret)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired refresh token"))
	}

	// Rotation check: only the most recently issued refresh token is usable.
	if user.RefreshTokenID == "" || user.RefreshTokenID != jti {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token has been superseded"))
	}

	accessToken, refreshToken, err := s.tokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the presented access token and invalidate the session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	// Blacklist the presented access token for the rest of its lifetime.
	if jti, ok := c.Locals("jti").(string); ok && jti != "" {
		ttl := auth.AccessTokenTTL
		if expiresAt, expOk := c.Locals("tokenExpiresAt").(time.Time); expOk {
			ttl = time.Until(expiresAt)
		}
		if ttl > 0 {
			if err := cache.BlacklistToken(c.Context(), jti, ttl); err != nil {
				return models.RespondWithError(c, fiber.StatusInternalServerError,
					models.NewInternalError(err))
			}
		}
	}

	// Clearing the stored JTI makes every outstanding refresh token unusable.
	if err := s.userRepo.SetRefreshTokenID(c.Context(), userID, ""); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}
