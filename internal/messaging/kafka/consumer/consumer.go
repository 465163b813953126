package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-personnel/internal/events"
	"go-personnel/internal/salary"
	salaryerrors "go-personnel/internal/salary/errors"
	"go-personnel/internal/shared/apperror"
	"go-personnel/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func ConsumePersonnelLifecycle(
	ctx context.Context,
	reader MessageReader,
	salaryService salary.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.personnel_lifecycle")
	log.Info("personnel lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("personnel lifecycle consumer stopped")
				return
			}
			log.Error("fetch personnel lifecycle message failed", zap.Error(err))
			continue
		}

		// msg must be handled before any later offset is committed
		if !handleWithRetry(ctx, salaryService, msg, log) {
			log.Info("personnel lifecycle consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit personnel lifecycle message failed", zap.Error(err))
		}
	}
}

// handleWithRetry reports false when ctx ended before msg was handled.
func handleWithRetry(ctx context.Context, salaryService salary.Service, msg kafkago.Message, log *zap.Logger) bool {
	delay := retryBaseDelay
	for attempt := 1; ; attempt++ {
		err := HandlePersonnelCreated(ctx, salaryService, msg, log)
		if err == nil {
			return true
		}

		log.Warn("retrying personnel lifecycle message",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		delay *= 2
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
	}
}

// HandlePersonnelCreated opens a zero salary for a newly hired personnel.
// A nil return means the message can be committed.
func HandlePersonnelCreated(ctx context.Context, salaryService salary.Service, msg kafkago.Message, log *zap.Logger) error {
	var event events.PersonnelCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode personnel_created event failed", zap.Error(err))
		return nil
	}
	if event.EventType != "" && event.EventType != events.PersonnelCreatedType {
		log.Debug("ignoring personnel lifecycle event", zap.String("event_type", event.EventType))
		return nil
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}

	startDate := event.DateOfEmployment
	if startDate == "" {
		startDate = time.Now().UTC().Format("2006-01-02")
	}

	base := decimal.Zero
	_, err := salaryService.Create(ctx, event.CompanyID, salary.CreateSalaryRequest{
		Personnel:       event.PersonnelID,
		BaseSalary:      &base,
		SalaryStartDate: startDate,
	})
	if err != nil {
		if errors.Is(err, salaryerrors.ErrDuplicateSalary) {
			log.Warn("salary already exists for event, skipping",
				zap.String("request_id", event.RequestID),
				zap.String("personnel_id", event.PersonnelID),
				zap.String("company_id", event.CompanyID),
			)
			return nil
		}
		if status := apperror.ToHTTP(err).Status; status < http.StatusInternalServerError {
			log.Warn("default salary rejected, dropping event",
				zap.String("request_id", event.RequestID),
				zap.String("personnel_id", event.PersonnelID),
				zap.Int("status", status),
				zap.Error(err),
			)
			return nil
		}

		log.Error("create default salary failed",
			zap.String("request_id", event.RequestID),
			zap.String("personnel_id", event.PersonnelID),
			zap.String("company_id", event.CompanyID),
			zap.Error(err),
		)
		return err
	}

	log.Info("salary created from personnel_created event",
		zap.String("request_id", event.RequestID),
		zap.String("personnel_id", event.PersonnelID),
		zap.String("company_id", event.CompanyID),
	)
	return nil
}
