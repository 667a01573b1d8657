package handler

import (
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LeaderboardHandler serves the public ranking endpoint
type LeaderboardHandler struct {
	service service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance
func NewLeaderboardHandler(service service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Description Users ranked by best percentage, ties broken by earliest achievement. Authenticated callers get their own row flagged.
// @Tags leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum entries" default(20)
// @Success 200 {object} dto.LeaderboardResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	resp, err := h.service.GetLeaderboard(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	// The service returns a fresh response per call, so flagging the caller's
	// row here never leaks into the cached copy.
	if username, _ := c.Locals(middleware.UsernameKey).(string); username != "" {
		for i := range resp.Entries {
			if resp.Entries[i].Username == username {
				resp.Entries[i].IsMe = true
			}
		}
	}
	return c.JSON(resp)
}
