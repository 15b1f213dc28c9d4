package reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Create(ctx context.Context, memberID, classID uuid.UUID, now time.Time) (*Reservation, error) {
	args := m.Called(ctx, memberID, classID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, reservationID uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, reservationID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) GetByID(ctx context.Context, reservationID uuid.UUID) (*Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockService) ListByMember(ctx context.Context, memberID uuid.UUID) ([]Reservation, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Reservation), args.Error(1)
}

func (m *MockService) ListByClass(ctx context.Context, classID uuid.UUID) ([]ReservationWithDetails, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReservationWithDetails), args.Error(1)
}

// authAs injects the context values AuthMiddleware would set.
func authAs(memberID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("member_id", memberID)
		c.Set("member_role", role)
		c.Next()
	}
}

func setupHandlerTest(svc Service, memberID uuid.UUID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(authAs(memberID, role))
	router.POST("/reservations", handler.CreateReservation)
	router.POST("/reservations/:reservationID/cancel", handler.CancelReservation)
	router.GET("/reservations", handler.ListMyReservations)
	return router
}

func frozenClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = orig })
}

func TestHandler_CreateReservation(t *testing.T) {
	memberID, classID := uuid.New(), uuid.New()
	now := time.Date(2029, 12, 1, 10, 0, 0, 0, time.UTC)
	frozenClock(t, now)

	svc := new(MockService)
	svc.On("Create", mock.Anything, memberID, classID, now).Return(&Reservation{
		ID:         uuid.New(),
		MemberID:   memberID,
		ClassID:    classID,
		PriceCents: 10560,
		ReservedAt: now,
	}, nil)

	router := setupHandlerTest(svc, memberID, "member")

	body, _ := json.Marshal(CreateReservationRequest{ClassID: classID.String()})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var res Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, int64(10560), res.PriceCents)
	svc.AssertExpectations(t)
}

func TestHandler_CreateReservation_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"member not found", ErrMemberNotFound, http.StatusNotFound},
		{"class not found", ErrClassNotFound, http.StatusNotFound},
		{"class full", ErrClassFull, http.StatusConflict},
		{"duplicate", ErrDuplicateReservation, http.StatusConflict},
		{"storage failure", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memberID, classID := uuid.New(), uuid.New()

			svc := new(MockService)
			svc.On("Create", mock.Anything, memberID, classID, mock.Anything).Return(nil, tt.serviceErr)

			router := setupHandlerTest(svc, memberID, "member")

			body, _ := json.Marshal(CreateReservationRequest{ClassID: classID.String()})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/reservations", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_CreateReservation_BadClassID(t *testing.T) {
	svc := new(MockService)
	router := setupHandlerTest(svc, uuid.New(), "member")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations",
		bytes.NewReader([]byte(`{"class_id":"not-a-uuid"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_CancelReservation(t *testing.T) {
	memberID, resID := uuid.New(), uuid.New()
	now := time.Date(2029, 12, 31, 12, 0, 0, 0, time.UTC)
	frozenClock(t, now)

	svc := new(MockService)
	svc.On("GetByID", mock.Anything, resID).Return(&Reservation{
		ID:       resID,
		MemberID: memberID,
	}, nil)
	svc.On("Cancel", mock.Anything, resID, now).Return(int64(10000), nil)

	router := setupHandlerTest(svc, memberID, "member")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations/"+resID.String()+"/cancel", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp CancelReservationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10000), resp.RefundCents)
}

func TestHandler_CancelReservation_NotOwner(t *testing.T) {
	callerID, ownerID, resID := uuid.New(), uuid.New(), uuid.New()

	svc := new(MockService)
	svc.On("GetByID", mock.Anything, resID).Return(&Reservation{
		ID:       resID,
		MemberID: ownerID,
	}, nil)

	router := setupHandlerTest(svc, callerID, "member")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations/"+resID.String()+"/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_CancelReservation_AdminOverride(t *testing.T) {
	adminID, ownerID, resID := uuid.New(), uuid.New(), uuid.New()

	svc := new(MockService)
	svc.On("GetByID", mock.Anything, resID).Return(&Reservation{
		ID:       resID,
		MemberID: ownerID,
	}, nil)
	svc.On("Cancel", mock.Anything, resID, mock.Anything).Return(int64(0), nil)

	router := setupHandlerTest(svc, adminID, "admin")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations/"+resID.String()+"/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_CancelReservation_AlreadyCancelled(t *testing.T) {
	memberID, resID := uuid.New(), uuid.New()

	svc := new(MockService)
	svc.On("GetByID", mock.Anything, resID).Return(&Reservation{
		ID:       resID,
		MemberID: memberID,
	}, nil)
	svc.On("Cancel", mock.Anything, resID, mock.Anything).Return(int64(0), ErrAlreadyCancelled)

	router := setupHandlerTest(svc, memberID, "member")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reservations/"+resID.String()+"/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandler_ListMyReservations(t *testing.T) {
	memberID := uuid.New()

	svc := new(MockService)
	svc.On("ListByMember", mock.Anything, memberID).Return([]Reservation{
		{ID: uuid.New(), MemberID: memberID, PriceCents: 10000},
	}, nil)

	router := setupHandlerTest(svc, memberID, "member")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var list []Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}
