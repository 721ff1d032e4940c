package server

import (
	"fieldbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follows/:userId
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if targetID == userID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot follow yourself"))
	}

	// The target must exist before an edge is created.
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return respondServiceError(c, err)
	}

	if err := s.followRepo.Create(ctx, userID, targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Now following"})
}

// UnfollowUser handles DELETE /api/follows/:userId. Unfollowing someone you
// do not follow is a no-op.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if err := s.followRepo.Delete(c.Context(), userID, targetID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowers handles GET /api/follows/followers/:userId
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	followers, err := s.followRepo.Followers(c.Context(), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(followers)
}

// GetFollowing handles GET /api/follows/following/:userId
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, err := s.followRepo.Following(c.Context(), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(following)
}

// GetFollowCounts handles GET /api/follows/counts/:userId
func (s *Server) GetFollowCounts(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	counts, err := s.followRepo.Counts(c.Context(), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(counts)
}

// GetFollowStatus handles GET /api/follows/status/:userId, whether the caller
// follows the given user.
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	following, err := s.followRepo.Exists(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"user_id":   targetID,
		"following": following,
	})
}
