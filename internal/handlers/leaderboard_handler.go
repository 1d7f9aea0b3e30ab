package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/services"
)

type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// Top serves the public biggest-spenders board.
func (h *LeaderboardHandler) Top(c *gin.Context) {
	entries, err := h.leaderboard.Top(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
