package member

import (
	"errors"
	"net/http"

	"classbook/internal/api"
	"classbook/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Register godoc
// @Summary      Register member
// @Description  Creates a member account with a membership tier and returns tokens.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Registration payload"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Router       /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, accessToken, refreshToken, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already registered"})
		case errors.Is(err, ErrInvalidTier):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid membership tier"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		Member:       m,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  AuthResponse
// @Failure      401      {object}  api.ErrorResponse
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, accessToken, refreshToken, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		Member:       m,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// GetMe godoc
// @Summary      Current member
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Member
// @Failure      401  {object}  api.ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}
