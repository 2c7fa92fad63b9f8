package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/garageworks/appointment-service/internal/dto"
	"github.com/garageworks/appointment-service/internal/models"
	"github.com/garageworks/appointment-service/internal/repository"
	"github.com/garageworks/appointment-service/internal/service"
	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

type AppointmentHandler struct {
	svc         service.AppointmentService
	serviceRepo repository.ServiceRepository
	loc         *time.Location
}

func NewAppointmentHandler(svc service.AppointmentService, serviceRepo repository.ServiceRepository, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{svc: svc, serviceRepo: serviceRepo, loc: loc}
}

func (h *AppointmentHandler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/slots", h.GetAvailableSlots)
	api.GET("/services", h.ListServices)
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments", h.ListAppointments)
	api.GET("/appointments/:id", h.GetAppointment)
	api.DELETE("/appointments/:id", h.CancelAppointment)
	api.PATCH("/appointments/:id/reschedule", h.RescheduleAppointment)
	api.PATCH("/appointments/:id/status", h.UpdateAppointmentStatus)
}

func (h *AppointmentHandler) GetAvailableSlots(c echo.Context) error {
	dateStr := c.QueryParam("date")
	if dateStr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date query parameter is required")
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, h.loc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	}

	var serviceID uint
	if s := c.QueryParam("service_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid service id")
		}
		serviceID = uint(id)
	}

	slots, err := h.svc.AvailableSlots(c.Request().Context(), date, serviceID)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, slots)
}

func (h *AppointmentHandler) ListServices(c echo.Context) error {
	services, err := h.serviceRepo.FindAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, services)
}

func (h *AppointmentHandler) CreateAppointment(c echo.Context) error {
	var req dto.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.Create(c.Request().Context(), req.UserID, req.VehicleID, req.ServiceID, req.StartTime)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrServiceNotFound), errors.Is(err, service.ErrVehicleNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSlotUnavailable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidStart), errors.Is(err, service.ErrOutsideHours):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToAppointmentResponse(appt))
}

func (h *AppointmentHandler) CancelAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.CancelAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.Cancel(c.Request().Context(), id, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrTooLateToCancel), errors.Is(err, service.ErrNotCancellable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

func (h *AppointmentHandler) RescheduleAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.RescheduleAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.Reschedule(c.Request().Context(), id, req.UserID, req.StartTime)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrSlotUnavailable), errors.Is(err, service.ErrNotReschedulable):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidStart), errors.Is(err, service.ErrOutsideHours):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

func (h *AppointmentHandler) UpdateAppointmentStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.svc.UpdateStatus(c.Request().Context(), id, models.AppointmentStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

func (h *AppointmentHandler) GetAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	appt, err := h.svc.Get(c.Request().Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToAppointmentResponse(appt))
}

func (h *AppointmentHandler) ListAppointments(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	appts, err := h.svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.AppointmentResponse, len(appts))
	for i, a := range appts {
		resp[i] = dto.ToAppointmentResponse(&a)
	}

	return c.JSON(http.StatusOK, resp)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}
	return uint(id), nil
}
