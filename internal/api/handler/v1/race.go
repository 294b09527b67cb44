package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/request"
	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/response"
	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/service"
)

type RaceService interface {
	Create(ctx context.Context, race domain.Race) (domain.Race, error)
	Get(ctx context.Context, id string) (domain.Race, error)
	ListSeason(ctx context.Context, season int) ([]domain.Race, error)
	Delete(ctx context.Context, id string) error
	SubmitResults(ctx context.Context, raceID string, results domain.RaceResults) error
	CreateSprint(ctx context.Context, race domain.SprintRace) (domain.SprintRace, error)
	GetSprint(ctx context.Context, id string) (domain.SprintRace, error)
	ListSprintSeason(ctx context.Context, season int) ([]domain.SprintRace, error)
	DeleteSprint(ctx context.Context, id string) error
	SubmitSprintResults(ctx context.Context, raceID string, results domain.SprintResults) error
}

type RaceHandler struct {
	svc RaceService
}

func NewRaceHandler(svc RaceService) *RaceHandler {
	return &RaceHandler{
		svc: svc,
	}
}

func seasonParam(ctx *gin.Context) (int, error) {
	return strconv.Atoi(ctx.Param("season"))
}

// HandleListRaces godoc
// @Summary      List the races of a season
// @Tags         races
// @Security     BearerAuth
// @Produce      json
// @Param        season   path       int true "season year"
// @Success      200      {array}    domain.Race
// @Failure      500      {object}   response.Err
// @Router       /seasons/{season}/races [get]
func (h *RaceHandler) HandleListRaces(ctx *gin.Context) {
	season, err := seasonParam(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid season")))

		return
	}

	races, err := h.svc.ListSeason(ctx.Request.Context(), season)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRaces -> h.svc.ListSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, races)
}

// HandleGetRace godoc
// @Summary      Get one race
// @Tags         races
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "race ID, e.g. 2026-1"
// @Success      200      {object}   domain.Race
// @Failure      404      {object}   response.Err
// @Router       /races/{raceID} [get]
func (h *RaceHandler) HandleGetRace(ctx *gin.Context) {
	race, err := h.svc.Get(ctx.Request.Context(), ctx.Param("raceID"))
	if err != nil {
		if errors.Is(err, service.ErrRaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaceNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetRace -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, race)
}

// HandleCreateRace godoc
// @Summary      Add a race to the calendar (admin)
// @Tags         races
// @Security     BearerAuth
// @Produce      json
// @Param        request  body       request.CreateRaceRequest true "request body"
// @Success      201      {object}   domain.Race
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Router       /races [post]
func (h *RaceHandler) HandleCreateRace(ctx *gin.Context) {
	var req request.CreateRaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	race, err := h.svc.Create(ctx.Request.Context(), req.ToRace())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateRace -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, race)
}

// HandleDeleteRace godoc
// @Summary      Delete a race and its predictions (admin)
// @Tags         races
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "race ID"
// @Success      204
// @Failure      404      {object}   response.Err
// @Router       /races/{raceID} [delete]
func (h *RaceHandler) HandleDeleteRace(ctx *gin.Context) {
	if err := h.svc.Delete(ctx.Request.Context(), ctx.Param("raceID")); err != nil {
		if errors.Is(err, service.ErrRaceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaceNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteRace -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSubmitResults godoc
// @Summary      Finalize race results and score predictions (admin)
// @Tags         races
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "race ID"
// @Param        request  body       request.RaceResultsRequest true "request body"
// @Success      200      {object}   domain.Race
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /races/{raceID}/results [put]
func (h *RaceHandler) HandleSubmitResults(ctx *gin.Context) {
	var req request.RaceResultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raceID := ctx.Param("raceID")
	if err := h.svc.SubmitResults(ctx.Request.Context(), raceID, req.ToResults()); err != nil {
		switch {
		case errors.Is(err, service.ErrRaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaceNotFound))
		case errors.Is(err, service.ErrIncompleteResults), errors.Is(err, service.ErrUnknownResultDriver):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitResults -> h.svc.SubmitResults -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	race, err := h.svc.Get(ctx.Request.Context(), raceID)
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitResults -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, race)
}

// HandleListSprints godoc
// @Summary      List the sprint races of a season
// @Tags         sprints
// @Security     BearerAuth
// @Produce      json
// @Param        season   path       int true "season year"
// @Success      200      {array}    domain.SprintRace
// @Router       /seasons/{season}/sprints [get]
func (h *RaceHandler) HandleListSprints(ctx *gin.Context) {
	season, err := seasonParam(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid season")))

		return
	}

	races, err := h.svc.ListSprintSeason(ctx.Request.Context(), season)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSprints -> h.svc.ListSprintSeason -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, races)
}

// HandleCreateSprint godoc
// @Summary      Add a sprint race to the calendar (admin)
// @Tags         sprints
// @Security     BearerAuth
// @Produce      json
// @Param        request  body       request.CreateSprintRaceRequest true "request body"
// @Success      201      {object}   domain.SprintRace
// @Router       /sprints [post]
func (h *RaceHandler) HandleCreateSprint(ctx *gin.Context) {
	var req request.CreateSprintRaceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	race, err := h.svc.CreateSprint(ctx.Request.Context(), req.ToRace())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSprint -> h.svc.CreateSprint -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, race)
}

// HandleSubmitSprintResults godoc
// @Summary      Finalize sprint results and score predictions (admin)
// @Tags         sprints
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "sprint race ID"
// @Param        request  body       request.SprintResultsRequest true "request body"
// @Success      200      {object}   domain.SprintRace
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /sprints/{raceID}/results [put]
func (h *RaceHandler) HandleSubmitSprintResults(ctx *gin.Context) {
	var req request.SprintResultsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raceID := ctx.Param("raceID")
	if err := h.svc.SubmitSprintResults(ctx.Request.Context(), raceID, req.ToResults()); err != nil {
		switch {
		case errors.Is(err, service.ErrRaceNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrRaceNotFound))
		case errors.Is(err, service.ErrIncompleteResults), errors.Is(err, service.ErrUnknownResultDriver):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleSubmitSprintResults -> h.svc.SubmitSprintResults -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	race, err := h.svc.GetSprint(ctx.Request.Context(), raceID)
	if err != nil {
		err = fmt.Errorf("v1.HandleSubmitSprintResults -> h.svc.GetSprint -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, race)
}
