package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventcrew/catering-api/internal/api/handler/v1/request"
	"github.com/eventcrew/catering-api/internal/api/handler/v1/response"
	"github.com/eventcrew/catering-api/internal/config"
	"github.com/eventcrew/catering-api/internal/domain"
	"github.com/eventcrew/catering-api/internal/pkg/jwthelper"
	"github.com/eventcrew/catering-api/internal/service"
)

type AuthService interface {
	StaffLogin(ctx context.Context, staffID, password string) (domain.User, error)
	BoyLogin(ctx context.Context, boyID, password string) (domain.User, error)
	SetBoyPassword(ctx context.Context, boyID, password string) (domain.User, error)
	AddBoy(ctx context.Context, principal domain.Principal, boy domain.User) (domain.User, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleStaffLogin godoc
// @Summary      Login as staff
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.StaffLoginRequest true "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/staff/login [post]
func (h *AuthHandler) HandleStaffLogin(ctx *gin.Context) {
	var req request.StaffLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.StaffLogin(ctx.Request.Context(), req.StaffID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("invalid staff credentials")))
			return
		}

		err = fmt.Errorf("v1.HandleStaffLogin -> h.svc.StaffLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderLogin(ctx, user)
}

// HandleBoyLogin godoc
// @Summary      Login as a catering boy
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.BoyLoginRequest true "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/boy/login [post]
func (h *AuthHandler) HandleBoyLogin(ctx *gin.Context) {
	var req request.BoyLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.BoyLogin(ctx.Request.Context(), req.BoyID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrPasswordNotSet) {
			// first-time login, client should redirect to password setup
			response.RenderErr(ctx, response.ErrConflict(service.ErrPasswordNotSet))
			return
		}
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrWrongPassword) {
			response.RenderErr(ctx, response.ErrUnauthorized(errors.New("invalid credentials")))
			return
		}

		err = fmt.Errorf("v1.HandleBoyLogin -> h.svc.BoyLogin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.renderLogin(ctx, user)
}

// HandleSetPassword godoc
// @Summary      Complete first-time password setup for a boy
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.SetPasswordRequest true "request body"
// @Success      200      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /auth/boy/set-password [post]
func (h *AuthHandler) HandleSetPassword(ctx *gin.Context) {
	var req request.SetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.SetBoyPassword(ctx.Request.Context(), req.BoyID, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("boy", "boyID", req.BoyID))
			return
		}
		if errors.Is(err, service.ErrPasswordAlreadySet) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrPasswordAlreadySet))
			return
		}

		err = fmt.Errorf("v1.HandleSetPassword -> h.svc.SetBoyPassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleAddBoy godoc
// @Summary      Add a catering boy (staff only)
// @Tags         boys
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddBoyRequest true "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /boys [post]
// @Security BearerAuth
func (h *AuthHandler) HandleAddBoy(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AddBoyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	boy, err := h.svc.AddBoy(ctx.Request.Context(), principal, domain.User{
		BoyID: req.BoyID,
		Email: req.Email,
		Name:  req.Name,
		Phone: req.Phone,
		UPIID: req.UPIID,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrUserEmailExists) || errors.Is(err, service.ErrBoyIDExists) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleAddBoy -> h.svc.AddBoy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, boy)
}

func (h *AuthHandler) renderLogin(ctx *gin.Context, user domain.User) {
	token, err := jwthelper.GenerateToken(h.conf.JWTSigningKey, user.ID, user.Role)
	if err != nil {
		err = fmt.Errorf("v1.renderLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
		User:  user,
	})
}
