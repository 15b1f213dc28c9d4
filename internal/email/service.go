package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"time"

	"classbook/internal/logger"
	"classbook/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

type EmailJob struct {
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

// Service queues outgoing mail on Redis and drains the queue with an SMTP
// worker. Queuing keeps mail off the booking request path.
type Service struct {
	redis    *redis.Client
	from     string
	fromName string
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string
}

func New(fromEmail, fromName, smtpHost, smtpPort, smtpUser, smtpPass, redisAddr string) *Service {
	return &Service{
		redis: redis.NewClient(&redis.Options{
			Addr: redisAddr,
		}),
		from:     fromEmail,
		fromName: fromName,
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		smtpUser: smtpUser,
		smtpPass: smtpPass,
	}
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Errorf("Failed to marshal email job: %v", err)
		return err
	}

	if err := s.redis.LPush(ctx, queueKey, data).Err(); err != nil {
		logger.Errorf("Failed to queue email to %s: %v", job.To, err)
		metrics.RecordEmail(job.Type, "queue_failed")
		return err
	}

	logger.Info("email queued", "type", job.Type, "to", job.To)
	return nil
}

// Start drains the queue until ctx is cancelled. Run it in its own
// goroutine.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Errorf("Bad email data: %v", err)
		return
	}

	job.Tries++
	if err := s.sendNow(job); err != nil {
		logger.Errorf("Failed to send email to %s (attempt %d): %v", job.To, job.Tries, err)

		if job.Tries < maxTries {
			time.Sleep(5 * time.Second)
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, data)
		} else {
			s.saveFailed(job, err)
			metrics.RecordEmail(job.Type, "failed")
		}
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "type", job.Type, "to", job.To)
}

func (s *Service) sendNow(job EmailJob) error {
	message := fmt.Sprintf("From: %s <%s>\r\n", s.fromName, s.from)
	message += fmt.Sprintf("To: %s\r\n", job.To)
	message += fmt.Sprintf("Subject: %s\r\n", job.Subject)
	message += "\r\n" + job.Body

	var auth smtp.Auth
	if s.smtpUser != "" && s.smtpPass != "" {
		auth = smtp.PlainAuth("", s.smtpUser, s.smtpPass, s.smtpHost)
	}

	addr := s.smtpHost + ":" + s.smtpPort
	return smtp.SendMail(addr, auth, s.from, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, data)
	logger.Errorf("Email moved to failed queue after %d attempts: %s", job.Tries, job.To)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, _ := s.redis.LLen(ctx, queueKey).Result()
	return length
}

func (s *Service) Close() error {
	return s.redis.Close()
}

// formatCents renders integer cents as a decimal amount for mail bodies.
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (s *Service) SendReservationConfirmation(ctx context.Context, to, name, className string, startAt time.Time, priceCents int64) error {
	body := fmt.Sprintf(`Hi %s,

Your spot is booked!

Class: %s
Starts: %s
Price: %s

See you there!

- ClassBook Team`, name, className, startAt.Format("Jan 2, 2006 at 3:04 PM"), formatCents(priceCents))

	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Type:    "reservation_confirmation",
		Subject: "Reservation Confirmed - " + className,
		Body:    body,
		Created: time.Now(),
	})
}

func (s *Service) SendCancellationConfirmation(ctx context.Context, to, name, className string, refundCents int64) error {
	body := fmt.Sprintf(`Hi %s,

Your reservation has been cancelled:

Class: %s
Refund: %s

- ClassBook Team`, name, className, formatCents(refundCents))

	return s.enqueue(ctx, EmailJob{
		To:      to,
		Name:    name,
		Type:    "cancellation_confirmation",
		Subject: "Reservation Cancelled - " + className,
		Body:    body,
		Created: time.Now(),
	})
}
