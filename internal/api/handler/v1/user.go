package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventcrew/catering-api/internal/api/handler/v1/request"
	"github.com/eventcrew/catering-api/internal/api/handler/v1/response"
	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	ListBoys(ctx context.Context, principal domain.Principal) ([]domain.User, error)
	GetBoy(ctx context.Context, principal domain.Principal, id uint) (domain.User, error)
	UpdateBoyProfile(ctx context.Context, principal domain.Principal, boyUserID uint, name, phone, upiID string) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetMe godoc
// @Summary      Get the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetMe(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "userID", principal.UserID))
			return
		}

		err = fmt.Errorf("v1.HandleGetMe -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleListBoys godoc
// @Summary      List all catering boys (staff only)
// @Tags         boys
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /boys [get]
// @Security BearerAuth
func (h *UserHandler) HandleListBoys(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	boys, err := h.svc.ListBoys(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}

		err = fmt.Errorf("v1.HandleListBoys -> h.svc.ListBoys -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, boys)
}

// HandleGetBoy godoc
// @Summary      Get a catering boy's profile (staff only)
// @Tags         boys
// @Produce      json
// @Param        boyID  path      int  true  "boy user ID"
// @Success      200    {object}  domain.User
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /boys/{boyID} [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetBoy(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	boyID, err := strconv.ParseUint(ctx.Param("boyID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid boy ID")))
		return
	}

	boy, err := h.svc.GetBoy(ctx.Request.Context(), principal, uint(boyID))
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("boy", "boyID", boyID))
			return
		}

		err = fmt.Errorf("v1.HandleGetBoy -> h.svc.GetBoy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, boy)
}

// HandleUpdateBoy godoc
// @Summary      Update a catering boy's profile (staff only)
// @Tags         boys
// @Accept       json
// @Produce      json
// @Param        boyID    path      int  true  "boy user ID"
// @Param        request  body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /boys/{boyID} [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateBoy(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	boyID, err := strconv.ParseUint(ctx.Param("boyID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("invalid boy ID")))
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	boy, err := h.svc.UpdateBoyProfile(ctx.Request.Context(), principal, uint(boyID), req.Name, req.Phone, req.UPIID)
	if err != nil {
		if errors.Is(err, service.ErrNotBoy) {
			response.RenderErr(ctx, response.ErrPermissionDenied(err))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("boy", "boyID", boyID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateBoy -> h.svc.UpdateBoyProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, boy)
}

// HandleUpdateProfile godoc
// @Summary      Update the authenticated boy's profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.UpdateProfileRequest true "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /me/profile [put]
// @Security BearerAuth
func (h *UserHandler) HandleUpdateProfile(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.UpdateBoyProfile(ctx.Request.Context(), principal, principal.UserID, req.Name, req.Phone, req.UPIID)
	if err != nil {
		if errors.Is(err, service.ErrNotBoy) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotBoy))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "userID", principal.UserID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateProfile -> h.svc.UpdateBoyProfile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}
