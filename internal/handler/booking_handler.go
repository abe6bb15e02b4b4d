package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/medbook-api/internal/service"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
	"github.com/medbook/medbook-api/pkg/response"
)

// BookingHandler exposes appointment booking, cancellation and rating.
type BookingHandler struct {
	bookings *service.BookingService
	ratings  *service.RatingService
	metrics  *service.MetricsService
}

// NewBookingHandler constructs BookingHandler.
func NewBookingHandler(bookings *service.BookingService, ratings *service.RatingService, metrics *service.MetricsService) *BookingHandler {
	return &BookingHandler{bookings: bookings, ratings: ratings, metrics: metrics}
}

// Book godoc
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param payload body service.BookRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /appointments [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req service.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	view, err := h.bookings.Book(c.Request.Context(), req)
	if err != nil {
		h.metrics.ObserveBooking(bookingOutcome(err))
		response.Error(c, err)
		return
	}
	h.metrics.ObserveBooking("booked")
	response.Created(c, view)
}

// Cancel godoc
// @Summary Cancel an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Router /appointments/{id}/cancel [put]
func (h *BookingHandler) Cancel(c *gin.Context) {
	view, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Rate godoc
// @Summary Rate a past appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param payload body service.RateRequest true "Rating payload"
// @Success 201 {object} response.Envelope
// @Router /appointments/{id}/rating [post]
func (h *BookingHandler) Rate(c *gin.Context) {
	var req service.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	rating, err := h.ratings.Rate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rating)
}

func bookingOutcome(err error) string {
	switch appErrors.FromError(err).Code {
	case appErrors.ErrSlotTaken.Code:
		return "conflict"
	default:
		return "rejected"
	}
}
