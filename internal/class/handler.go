package class

import (
	"errors"
	"net/http"

	"classbook/internal/api"
	"classbook/internal/auth"
	"classbook/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service    Service
	memberRepo member.Repository
}

func NewHandler(service Service, memberRepo member.Repository) *Handler {
	return &Handler{
		service:    service,
		memberRepo: memberRepo,
	}
}

// CreateClass godoc
// @Summary      Create class
// @Description  Schedules a new fitness class. Admin only.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateClassRequest  true  "Class payload"
// @Success      201      {object}  FitnessClass
// @Failure      400      {object}  api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidClass) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class: start_at must be RFC3339 and capacity positive"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class"})
		return
	}

	c.JSON(http.StatusCreated, fc)
}

// ListClasses godoc
// @Summary      List classes
// @Description  Lists classes with live availability and a price quote for the caller.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   ClassWithAvailability
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	tier := h.callerTier(c)

	classes, err := h.service.List(c.Request.Context(), tier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetClass godoc
// @Summary      Get class
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        classID  path      string  true  "Class ID"
// @Success      200      {object}  FitnessClass
// @Failure      404      {object}  api.ErrorResponse
// @Router       /classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	fc, err := h.service.GetByID(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		return
	}

	c.JSON(http.StatusOK, fc)
}

// callerTier resolves the membership tier of the authenticated caller, or
// an empty tier when the member cannot be resolved.
func (h *Handler) callerTier(c *gin.Context) member.Tier {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		return member.Tier("")
	}

	m, err := h.memberRepo.GetByID(c.Request.Context(), memberID)
	if err != nil {
		return member.Tier("")
	}

	return m.Tier
}
