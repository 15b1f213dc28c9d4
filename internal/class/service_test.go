package class

import (
	"context"
	"testing"
	"time"

	"classbook/internal/member"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, instructor string, capacity int, startAt time.Time) (*FitnessClass, error) {
	args := m.Called(ctx, name, instructor, capacity, startAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FitnessClass), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*FitnessClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FitnessClass), args.Error(1)
}

func (m *MockRepository) GetAll(ctx context.Context) ([]FitnessClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FitnessClass), args.Error(1)
}

func (m *MockRepository) ListWithAvailability(ctx context.Context) ([]ClassWithAvailability, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ClassWithAvailability), args.Error(1)
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateClassRequest
		setupMock func(*MockRepository)
		wantErr   error
	}{
		{
			name: "valid class",
			req: CreateClassRequest{
				Name:       "Morning Yoga",
				Instructor: "Dana",
				Capacity:   15,
				StartAt:    "2030-01-01T12:00:00Z",
			},
			setupMock: func(r *MockRepository) {
				startAt := time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)
				r.On("Create", mock.Anything, "Morning Yoga", "Dana", 15, startAt).
					Return(&FitnessClass{
						ID:         uuid.New(),
						Name:       "Morning Yoga",
						Instructor: "Dana",
						Capacity:   15,
						StartAt:    startAt,
					}, nil)
			},
		},
		{
			name: "start time normalized to UTC",
			req: CreateClassRequest{
				Name:       "Evening Spin",
				Instructor: "Lee",
				Capacity:   10,
				StartAt:    "2030-01-01T20:00:00+03:00",
			},
			setupMock: func(r *MockRepository) {
				startAt := time.Date(2030, 1, 1, 17, 0, 0, 0, time.UTC)
				r.On("Create", mock.Anything, "Evening Spin", "Lee", 10, mock.MatchedBy(func(tm time.Time) bool {
					return tm.Equal(startAt) && tm.Location() == time.UTC
				})).Return(&FitnessClass{ID: uuid.New(), StartAt: startAt}, nil)
			},
		},
		{
			name: "bad start time format",
			req: CreateClassRequest{
				Name:       "Yoga",
				Instructor: "Dana",
				Capacity:   15,
				StartAt:    "tomorrow noon",
			},
			setupMock: func(r *MockRepository) {},
			wantErr:   ErrInvalidClass,
		},
		{
			name: "non-positive capacity",
			req: CreateClassRequest{
				Name:       "Yoga",
				Instructor: "Dana",
				Capacity:   0,
				StartAt:    "2030-01-01T12:00:00Z",
			},
			setupMock: func(r *MockRepository) {},
			wantErr:   ErrInvalidClass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			svc := NewService(repo)
			fc, err := svc.Create(context.Background(), tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, fc)
			} else {
				require.NoError(t, err)
				require.NotNil(t, fc)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_List_QuotesForTier(t *testing.T) {
	startAt := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC) // peak hour

	repo := new(MockRepository)
	repo.On("ListWithAvailability", mock.Anything).Return([]ClassWithAvailability{
		{
			FitnessClass: FitnessClass{ID: uuid.New(), Capacity: 10, StartAt: startAt},
			ActiveCount:  8,
			Available:    2,
		},
		{
			FitnessClass: FitnessClass{ID: uuid.New(), Capacity: 10, StartAt: startAt},
			ActiveCount:  10,
			Available:    0,
			IsFull:       true,
		},
	}, nil)

	svc := NewService(repo)
	classes, err := svc.List(context.Background(), member.TierPremium)
	require.NoError(t, err)
	require.Len(t, classes, 2)

	// Premium, peak, 80% occupancy.
	require.NotNil(t, classes[0].QuoteCents)
	assert.Equal(t, int64(12480), *classes[0].QuoteCents)

	// Full classes carry no quote.
	assert.Nil(t, classes[1].QuoteCents)
}

func TestService_List_NoTierNoQuote(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListWithAvailability", mock.Anything).Return([]ClassWithAvailability{
		{FitnessClass: FitnessClass{ID: uuid.New(), Capacity: 10}, ActiveCount: 0, Available: 10},
	}, nil)

	svc := NewService(repo)
	classes, err := svc.List(context.Background(), member.Tier(""))
	require.NoError(t, err)
	assert.Nil(t, classes[0].QuoteCents)
}
