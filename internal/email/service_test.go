package email

import (
	"context"
	"os"
	"testing"
	"time"

	"classbook/internal/logger"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

func newTestService(rdb *redis.Client) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@classbook.example",
		fromName: "ClassBook Team",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		smtpUser: "test@example.com",
		smtpPass: "password",
	}
}

func TestSendReservationConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)

	startAt := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC)
	err := svc.SendReservationConfirmation(ctx, "user@example.com", "User", "Spin", startAt, 10560)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendCancellationConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	svc := newTestService(db)

	err := svc.SendCancellationConfirmation(ctx, "user@example.com", "User", "Spin", 6240)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_QueueError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(assert.AnError)

	svc := newTestService(db)

	err := svc.SendCancellationConfirmation(ctx, "user@example.com", "User", "Spin", 0)
	assert.Error(t, err)
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.ExpectLLen(queueKey).SetVal(4)

	svc := newTestService(db)

	assert.Equal(t, int64(4), svc.QueueLength(ctx))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "$100.00", formatCents(10000))
	assert.Equal(t, "$124.80", formatCents(12480))
	assert.Equal(t, "$62.41", formatCents(6241))
	assert.Equal(t, "$0.00", formatCents(0))
}
