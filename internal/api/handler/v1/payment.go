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

type PaymentService interface {
	Simulate(ctx context.Context, principal domain.Principal, paymentID uint) (domain.Payment, error)
	SimulateAllForEvent(ctx context.Context, principal domain.Principal, eventID uint) (int, error)
	CreateGatewayOrder(ctx context.Context, principal domain.Principal, paymentID uint) (domain.OrderHandle, error)
	ConfirmGatewayPayment(ctx context.Context, orderRef, paymentRef, signature string) (domain.Payment, error)
	History(ctx context.Context, principal domain.Principal) ([]domain.Payment, error)
	Earnings(ctx context.Context, principal domain.Principal) (int64, error)
	DashboardStats(ctx context.Context, principal domain.Principal) (domain.DashboardStats, error)
}

type PaymentHandler struct {
	svc PaymentService
}

func NewPaymentHandler(svc PaymentService) *PaymentHandler {
	return &PaymentHandler{
		svc: svc,
	}
}

// HandleSimulate godoc
// @Summary      Mark a payment as paid without the gateway (staff only)
// @Tags         payments
// @Produce      json
// @Param        paymentID  path      int  true  "payment ID"
// @Success      200        {object}  domain.Payment
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /payments/{paymentID}/simulate [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleSimulate(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	paymentID, respErr := parsePaymentID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	payment, err := h.svc.Simulate(ctx.Request.Context(), principal, paymentID)
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("payment", "paymentID", paymentID))
			return
		}
		if errors.Is(err, service.ErrPaymentAlreadyPaid) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrPaymentAlreadyPaid))
			return
		}

		err = fmt.Errorf("v1.HandleSimulate -> h.svc.Simulate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// HandleSimulateAll godoc
// @Summary      Mark all pending payments of an event as paid (staff only)
// @Tags         payments
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  response.SimulateAllResponse
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/payments/simulate [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleSimulateAll(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	count, err := h.svc.SimulateAllForEvent(ctx.Request.Context(), principal, eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleSimulateAll -> h.svc.SimulateAllForEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SimulateAllResponse{
		PaymentsSimulated: count,
	})
}

// HandleCreateOrder godoc
// @Summary      Create a gateway order for a pending payment (staff only)
// @Tags         payments
// @Produce      json
// @Param        paymentID  path      int  true  "payment ID"
// @Success      201        {object}  domain.OrderHandle
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      502        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /payments/{paymentID}/order [post]
// @Security BearerAuth
func (h *PaymentHandler) HandleCreateOrder(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	paymentID, respErr := parsePaymentID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.CreateGatewayOrder(ctx.Request.Context(), principal, paymentID)
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("payment", "paymentID", paymentID))
			return
		}
		if errors.Is(err, service.ErrPaymentAlreadyPaid) || errors.Is(err, service.ErrEventNotCompleted) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}
		if errors.Is(err, service.ErrGateway) {
			response.RenderErr(ctx, response.ErrBadGateway(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateOrder -> h.svc.CreateGatewayOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// HandleGatewayCallback godoc
// @Summary      Confirm a gateway payment from the provider callback
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request  body      request.GatewayCallbackRequest true "request body"
// @Success      200      {object}  domain.Payment
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payments/callback [post]
func (h *PaymentHandler) HandleGatewayCallback(ctx *gin.Context) {
	var req request.GatewayCallbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payment, err := h.svc.ConfirmGatewayPayment(ctx.Request.Context(), req.OrderRef, req.PaymentRef, req.Signature)
	if err != nil {
		if errors.Is(err, service.ErrSignatureInvalid) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrSignatureInvalid))
			return
		}
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("payment", "orderRef", req.OrderRef))
			return
		}
		if errors.Is(err, service.ErrPaymentAlreadyPaid) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrPaymentAlreadyPaid))
			return
		}

		err = fmt.Errorf("v1.HandleGatewayCallback -> h.svc.ConfirmGatewayPayment -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, payment)
}

// HandleHistory godoc
// @Summary      List all payments, newest first (staff only)
// @Tags         payments
// @Produce      json
// @Success      200  {array}   domain.Payment
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /payments/history [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleHistory(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	payments, err := h.svc.History(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}

		err = fmt.Errorf("v1.HandleHistory -> h.svc.History -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, payments)
}

// HandleMyEarnings godoc
// @Summary      Total paid-out earnings for the authenticated boy
// @Tags         payments
// @Produce      json
// @Success      200  {object}  response.EarningsResponse
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/earnings [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleMyEarnings(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	total, err := h.svc.Earnings(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrNotBoy) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotBoy))
			return
		}

		err = fmt.Errorf("v1.HandleMyEarnings -> h.svc.Earnings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EarningsResponse{
		TotalEarnings: total,
	})
}

// HandleStats godoc
// @Summary      Dashboard counters (staff only)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/stats [get]
// @Security BearerAuth
func (h *PaymentHandler) HandleStats(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	stats, err := h.svc.DashboardStats(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}

		err = fmt.Errorf("v1.HandleStats -> h.svc.DashboardStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

func parsePaymentID(ctx *gin.Context) (uint, *response.Err) {
	paymentID, err := strconv.ParseUint(ctx.Param("paymentID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(errors.New("invalid payment ID"))
	}

	return uint(paymentID), nil
}
