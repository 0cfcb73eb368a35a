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

type EventService interface {
	CreateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
	ListEvents(ctx context.Context, query domain.EventQuery) ([]domain.Event, int64, error)
	UpdateEvent(ctx context.Context, principal domain.Principal, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, principal domain.Principal, id uint) error
	MarkCompleted(ctx context.Context, principal domain.Principal, id uint) error
}

type RegistrationService interface {
	Register(ctx context.Context, principal domain.Principal, eventID uint) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error)
	ListByBoy(ctx context.Context, principal domain.Principal) ([]domain.Registration, error)
}

type EventHandler struct {
	svc    EventService
	regSvc RegistrationService
}

func NewEventHandler(svc EventService, regSvc RegistrationService) *EventHandler {
	return &EventHandler{
		svc:    svc,
		regSvc: regSvc,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event (staff only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest true "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), principal, domain.Event{
		Title:         req.Title,
		Date:          req.Date,
		Location:      req.Location,
		Description:   req.Description,
		TotalSeats:    req.TotalSeats,
		PaymentPerBoy: req.PaymentPerBoy,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleListEvents godoc
// @Summary      List events with search, filter, sort and pagination
// @Tags         events
// @Produce      json
// @Param        q         query     string  false  "search in title"
// @Param        status    query     string  false  "all, upcoming or completed"
// @Param        sort      query     string  false  "date_asc, date_desc, title_asc or title_desc"
// @Param        page      query     int     false  "page number"
// @Param        per_page  query     int     false  "page size"
// @Success      200       {object}  response.ListEventsResponse
// @Failure      400       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events [get]
// @Security BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	var req request.ListEventsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 10
	}

	events, total, err := h.svc.ListEvents(ctx.Request.Context(), domain.EventQuery{
		Search:  req.Search,
		Status:  req.Status,
		Sort:    req.Sort,
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ListEventsResponse{
		Events:  events,
		Total:   total,
		Page:    req.Page,
		PerPage: req.PerPage,
	})
}

// HandleGetEvent godoc
// @Summary      Get an event with its registrations
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event (staff only)
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Param        request  body      request.UpdateEventRequest true "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
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

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.UpdateEvent(ctx.Request.Context(), principal, domain.Event{
		ID:            eventID,
		Title:         req.Title,
		Date:          req.Date,
		Location:      req.Location,
		Description:   req.Description,
		TotalSeats:    req.TotalSeats,
		PaymentPerBoy: req.PaymentPerBoy,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event and its registrations (staff only)
// @Tags         events
// @Produce      json
// @Param        eventID  path  int  true  "event ID"
// @Success      204
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
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

	if err := h.svc.DeleteEvent(ctx.Request.Context(), principal, eventID); err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleMarkCompleted godoc
// @Summary      Mark an event completed (staff only)
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/complete [post]
// @Security BearerAuth
func (h *EventHandler) HandleMarkCompleted(ctx *gin.Context) {
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

	if err := h.svc.MarkCompleted(ctx.Request.Context(), principal, eventID); err != nil {
		if errors.Is(err, service.ErrNotStaff) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotStaff))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleMarkCompleted -> h.svc.MarkCompleted -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleMarkCompleted -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleRegister godoc
// @Summary      Register the authenticated boy for an event
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      201      {object}  domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security BearerAuth
func (h *EventHandler) HandleRegister(ctx *gin.Context) {
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

	registration, err := h.regSvc.Register(ctx.Request.Context(), principal, eventID)
	if err != nil {
		if errors.Is(err, service.ErrNotBoy) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotBoy))
			return
		}
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}
		if errors.Is(err, service.ErrNoSeatsAvailable) || errors.Is(err, service.ErrAlreadyRegistered) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegister -> h.regSvc.Register -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, registration)
}

// HandleGetRegistrations godoc
// @Summary      List registrations for an event
// @Tags         registrations
// @Produce      json
// @Param        eventID  path      int  true  "event ID"
// @Success      200      {array}   domain.Registration
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/registrations [get]
// @Security BearerAuth
func (h *EventHandler) HandleGetRegistrations(ctx *gin.Context) {
	eventID, respErr := parseEventID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if _, err := h.svc.GetEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "eventID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetRegistrations -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	registrations, err := h.regSvc.ListByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRegistrations -> h.regSvc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

// HandleMyRegistrations godoc
// @Summary      List the authenticated boy's registrations
// @Tags         registrations
// @Produce      json
// @Success      200  {array}   domain.Registration
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/registrations [get]
// @Security BearerAuth
func (h *EventHandler) HandleMyRegistrations(ctx *gin.Context) {
	principal, respErr := getPrincipalFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	registrations, err := h.regSvc.ListByBoy(ctx.Request.Context(), principal)
	if err != nil {
		if errors.Is(err, service.ErrNotBoy) {
			response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotBoy))
			return
		}

		err = fmt.Errorf("v1.HandleMyRegistrations -> h.regSvc.ListByBoy -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, registrations)
}

func parseEventID(ctx *gin.Context) (uint, *response.Err) {
	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(errors.New("invalid event ID"))
	}

	return uint(eventID), nil
}
