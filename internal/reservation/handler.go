package reservation

import (
	"errors"
	"net/http"

	"classbook/internal/api"
	"classbook/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateReservation godoc
// @Summary      Reserve a seat
// @Description  Books the authenticated member into a class, pricing the seat at admission time.
// @Tags         reservations
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateReservationRequest  true  "Reservation payload"
// @Success      201      {object}  Reservation
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /reservations [post]
func (h *Handler) CreateReservation(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	res, err := h.service.Create(c.Request.Context(), memberID, classID, timeNow())
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, ErrClassFull):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Class is full"})
		case errors.Is(err, ErrDuplicateReservation):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You already have an active reservation for this class"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create reservation"})
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

// CancelReservation godoc
// @Summary      Cancel reservation
// @Description  Cancels an active reservation and reports the refund.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        reservationID  path      string  true  "Reservation ID"
// @Success      200            {object}  CancelReservationResponse
// @Failure      400            {object}  api.ErrorResponse
// @Failure      403            {object}  api.ErrorResponse
// @Failure      404            {object}  api.ErrorResponse
// @Failure      409            {object}  api.ErrorResponse
// @Router       /reservations/{reservationID}/cancel [post]
func (h *Handler) CancelReservation(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	reservationID, err := uuid.Parse(c.Param("reservationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid reservation ID"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), reservationID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
		return
	}

	role, _ := c.Get("member_role")
	if res.MemberID != memberID && role != "admin" {
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own reservations"})
		return
	}

	refundCents, err := h.service.Cancel(c.Request.Context(), reservationID, timeNow())
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Reservation not found"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Reservation is already cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel reservation"})
		}
		return
	}

	c.JSON(http.StatusOK, CancelReservationResponse{
		RefundCents: refundCents,
		Message:     "Reservation cancelled",
	})
}

// ListMyReservations godoc
// @Summary      List my reservations
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Reservation
// @Failure      500  {object}  api.ErrorResponse
// @Router       /reservations [get]
func (h *Handler) ListMyReservations(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	reservations, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// ListReservationsByClass godoc
// @Summary      List reservations by class
// @Description  Returns all reservations for a class. Admin only.
// @Tags         reservations
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      string  true  "Class ID"
// @Success      200      {array}   ReservationWithDetails
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/classes/{classID}/reservations [get]
func (h *Handler) ListReservationsByClass(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	reservations, err := h.service.ListByClass(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch reservations"})
		return
	}

	c.JSON(http.StatusOK, reservations)
}
