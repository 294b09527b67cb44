package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/response"
	"github.com/boxbox-club/boxbox-api/internal/domain"
)

type LeaderboardService interface {
	Season(ctx context.Context, season int) ([]domain.Standing, error)
}

type LeaderboardHandler struct {
	svc LeaderboardService
}

func NewLeaderboardHandler(svc LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		svc: svc,
	}
}

// HandleGetLeaderboard godoc
// @Summary      Season leaderboard with position trend
// @Tags         leaderboard
// @Security     BearerAuth
// @Produce      json
// @Param        season   path       int true "season year"
// @Success      200      {object}   response.LeaderboardResponse
// @Failure      500      {object}   response.Err
// @Router       /seasons/{season}/leaderboard [get]
func (h *LeaderboardHandler) HandleGetLeaderboard(ctx *gin.Context) {
	season, err := strconv.Atoi(ctx.Param("season"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid season")))

		return
	}

	standings, err := h.svc.Season(ctx.Request.Context(), season)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetLeaderboard -> h.svc.Season -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LeaderboardResponse{
		Season:    season,
		Standings: standings,
	})
}
