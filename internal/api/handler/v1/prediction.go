package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/request"
	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/response"
	"github.com/boxbox-club/boxbox-api/internal/api/middleware"
	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/service"
)

type PredictionService interface {
	Submit(ctx context.Context, userID uint, raceID string, guess domain.PredictionGuess) (domain.Prediction, error)
	Revise(ctx context.Context, userID uint, raceID string, guess domain.PredictionGuess) (domain.Prediction, error)
	Get(ctx context.Context, userID uint, raceID string) (domain.Prediction, error)
	SubmitSprint(ctx context.Context, userID uint, raceID string, guess domain.SprintGuess) (domain.SprintPrediction, error)
	ReviseSprint(ctx context.Context, userID uint, raceID string, guess domain.SprintGuess) (domain.SprintPrediction, error)
	GetSprint(ctx context.Context, userID uint, raceID string) (domain.SprintPrediction, error)
}

type PredictionHandler struct {
	svc PredictionService
}

func NewPredictionHandler(svc PredictionService) *PredictionHandler {
	return &PredictionHandler{
		svc: svc,
	}
}

// renderSubmissionErr maps gate errors onto user-facing responses.
func renderSubmissionErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRaceNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrRaceNotFound))
	case errors.Is(err, service.ErrRaceLocked):
		response.RenderErr(ctx, response.ErrForbidden(service.ErrRaceLocked))
	case errors.Is(err, service.ErrAlreadyPredicted):
		response.RenderErr(ctx, response.ErrConflict(service.ErrAlreadyPredicted))
	case errors.Is(err, service.ErrInvalidGuess):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrPredictionNotFound):
		response.RenderErr(ctx, response.ErrNotFound(service.ErrPredictionNotFound))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleSubmitPrediction godoc
// @Summary      Submit a race prediction
// @Tags         predictions
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "race ID"
// @Param        request  body       request.PredictionRequest true "request body"
// @Success      201      {object}   domain.Prediction
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /races/{raceID}/prediction [post]
func (h *PredictionHandler) HandleSubmitPrediction(ctx *gin.Context) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	var req request.PredictionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prediction, err := h.svc.Submit(ctx.Request.Context(), userID, ctx.Param("raceID"), req.ToGuess())
	if err != nil {
		renderSubmissionErr(ctx, fmt.Errorf("v1.HandleSubmitPrediction -> h.svc.Submit -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, prediction)
}

// HandleRevisePrediction godoc
// @Summary      Revise an existing race prediction
// @Tags         predictions
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "race ID"
// @Param        request  body       request.PredictionRequest true "request body"
// @Success      200      {object}   domain.Prediction
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Router       /races/{raceID}/prediction [put]
func (h *PredictionHandler) HandleRevisePrediction(ctx *gin.Context) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	var req request.PredictionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prediction, err := h.svc.Revise(ctx.Request.Context(), userID, ctx.Param("raceID"), req.ToGuess())
	if err != nil {
		renderSubmissionErr(ctx, fmt.Errorf("v1.HandleRevisePrediction -> h.svc.Revise -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

// HandleGetPrediction godoc
// @Summary      Get own prediction for a race
// @Tags         predictions
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "race ID"
// @Success      200      {object}   domain.Prediction
// @Failure      404      {object}   response.Err
// @Router       /races/{raceID}/prediction [get]
func (h *PredictionHandler) HandleGetPrediction(ctx *gin.Context) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	prediction, err := h.svc.Get(ctx.Request.Context(), userID, ctx.Param("raceID"))
	if err != nil {
		renderSubmissionErr(ctx, fmt.Errorf("v1.HandleGetPrediction -> h.svc.Get -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

// HandleSubmitSprintPrediction godoc
// @Summary      Submit a sprint prediction
// @Tags         predictions
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "sprint race ID"
// @Param        request  body       request.SprintPredictionRequest true "request body"
// @Success      201      {object}   domain.SprintPrediction
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Router       /sprints/{raceID}/prediction [post]
func (h *PredictionHandler) HandleSubmitSprintPrediction(ctx *gin.Context) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	var req request.SprintPredictionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prediction, err := h.svc.SubmitSprint(ctx.Request.Context(), userID, ctx.Param("raceID"), req.ToGuess())
	if err != nil {
		renderSubmissionErr(ctx, fmt.Errorf("v1.HandleSubmitSprintPrediction -> h.svc.SubmitSprint -> %w", err))

		return
	}

	ctx.JSON(http.StatusCreated, prediction)
}

// HandleReviseSprintPrediction godoc
// @Summary      Revise an existing sprint prediction
// @Tags         predictions
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "sprint race ID"
// @Param        request  body       request.SprintPredictionRequest true "request body"
// @Success      200      {object}   domain.SprintPrediction
// @Router       /sprints/{raceID}/prediction [put]
func (h *PredictionHandler) HandleReviseSprintPrediction(ctx *gin.Context) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	var req request.SprintPredictionRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	prediction, err := h.svc.ReviseSprint(ctx.Request.Context(), userID, ctx.Param("raceID"), req.ToGuess())
	if err != nil {
		renderSubmissionErr(ctx, fmt.Errorf("v1.HandleReviseSprintPrediction -> h.svc.ReviseSprint -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, prediction)
}

// HandleGetSprintPrediction godoc
// @Summary      Get own prediction for a sprint race
// @Tags         predictions
// @Security     BearerAuth
// @Produce      json
// @Param        raceID   path       string true "sprint race ID"
// @Success      200      {object}   domain.SprintPrediction
// @Failure      404      {object}   response.Err
// @Router       /sprints/{raceID}/prediction [get]
func (h *PredictionHandler) HandleGetSprintPrediction(ctx *gin.Context) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	prediction, err := h.svc.GetSprint(ctx.Request.Context(), userID, ctx.Param("raceID"))
	if err != nil {
		renderSubmissionErr(ctx, fmt.Errorf("v1.HandleGetSprintPrediction -> h.svc.GetSprint -> %w", err))

		return
	}

	ctx.JSON(http.StatusOK, prediction)
}
