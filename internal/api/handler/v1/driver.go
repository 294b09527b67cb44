package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/request"
	"github.com/boxbox-club/boxbox-api/internal/api/handler/v1/response"
	"github.com/boxbox-club/boxbox-api/internal/domain"
	"github.com/boxbox-club/boxbox-api/internal/service"
)

type DriverService interface {
	CreateDriver(ctx context.Context, driver domain.Driver) (domain.Driver, error)
	GetDriver(ctx context.Context, code string) (domain.Driver, error)
	ListDrivers(ctx context.Context) ([]domain.Driver, error)
	CreateConstructor(ctx context.Context, constructor domain.Constructor) (domain.Constructor, error)
}

type DriverHandler struct {
	svc DriverService
}

func NewDriverHandler(svc DriverService) *DriverHandler {
	return &DriverHandler{
		svc: svc,
	}
}

// HandleListDrivers godoc
// @Summary      List all drivers
// @Tags         drivers
// @Security     BearerAuth
// @Produce      json
// @Success      200      {array}    domain.Driver
// @Failure      500      {object}   response.Err
// @Router       /drivers [get]
func (h *DriverHandler) HandleListDrivers(ctx *gin.Context) {
	drivers, err := h.svc.ListDrivers(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListDrivers -> h.svc.ListDrivers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, drivers)
}

// HandleGetDriver godoc
// @Summary      Get one driver
// @Tags         drivers
// @Security     BearerAuth
// @Produce      json
// @Param        code     path       string true "driver code"
// @Success      200      {object}   domain.Driver
// @Failure      404      {object}   response.Err
// @Router       /drivers/{code} [get]
func (h *DriverHandler) HandleGetDriver(ctx *gin.Context) {
	driver, err := h.svc.GetDriver(ctx.Request.Context(), ctx.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrDriverNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleGetDriver -> h.svc.GetDriver -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, driver)
}

// HandleCreateDriver godoc
// @Summary      Add a driver (admin)
// @Tags         drivers
// @Security     BearerAuth
// @Produce      json
// @Param        request  body       request.CreateDriverRequest true "request body"
// @Success      201      {object}   domain.Driver
// @Failure      400      {object}   response.Err
// @Router       /drivers [post]
func (h *DriverHandler) HandleCreateDriver(ctx *gin.Context) {
	var req request.CreateDriverRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	driver, err := h.svc.CreateDriver(ctx.Request.Context(), req.ToDriver())
	if err != nil {
		if errors.Is(err, service.ErrConstructorNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrConstructorNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleCreateDriver -> h.svc.CreateDriver -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, driver)
}

// HandleCreateConstructor godoc
// @Summary      Add a constructor (admin)
// @Tags         drivers
// @Security     BearerAuth
// @Produce      json
// @Param        request  body       request.CreateConstructorRequest true "request body"
// @Success      201      {object}   domain.Constructor
// @Failure      400      {object}   response.Err
// @Router       /constructors [post]
func (h *DriverHandler) HandleCreateConstructor(ctx *gin.Context) {
	var req request.CreateConstructorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	constructor, err := h.svc.CreateConstructor(ctx.Request.Context(), domain.Constructor{
		Name:    req.Name,
		Country: req.Country,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateConstructor -> h.svc.CreateConstructor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, constructor)
}
