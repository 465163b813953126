package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka/consumer"
	"go-personnel/internal/salary"
	salaryerrors "go-personnel/internal/salary/errors"
	salaryMock "go-personnel/internal/salary/mock"
	"go-personnel/internal/shared/contextutil"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func createdMessage(t *testing.T, event events.PersonnelCreatedEvent) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Key: []byte(event.PersonnelID), Value: payload}
}

func TestHandlePersonnelCreated(t *testing.T) {
	log := zap.NewNop()
	event := events.PersonnelCreatedEvent{
		EventType:        events.PersonnelCreatedType,
		RequestID:        "req-1",
		PersonnelID:      uuid.New().String(),
		CompanyID:        uuid.New().String(),
		DateOfEmployment: "2020-01-15",
		OccurredAt:       time.Now(),
	}

	t.Run("creates a zero salary from the employment date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := salaryMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), event.CompanyID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, companyID string, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
				assert.Equal(t, "req-1", contextutil.GetRequestID(ctx))
				assert.Equal(t, event.PersonnelID, req.Personnel)
				assert.True(t, req.BaseSalary.IsZero())
				assert.Equal(t, "2020-01-15", req.SalaryStartDate)
				return salary.SalaryResponse{}, nil
			})

		err := consumer.HandlePersonnelCreated(context.Background(), svc, createdMessage(t, event), log)

		assert.NoError(t, err)
	})

	t.Run("existing salary is treated as done", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := salaryMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), event.CompanyID, gomock.Any()).
			Return(salary.SalaryResponse{}, salaryerrors.SalaryAlreadyExists(event.PersonnelID))

		err := consumer.HandlePersonnelCreated(context.Background(), svc, createdMessage(t, event), log)

		assert.NoError(t, err)
	})

	t.Run("deleted personnel drops the event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := salaryMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), event.CompanyID, gomock.Any()).
			Return(salary.SalaryResponse{}, salaryerrors.ErrPersonnelNotFound)

		err := consumer.HandlePersonnelCreated(context.Background(), svc, createdMessage(t, event), log)

		assert.NoError(t, err)
	})

	t.Run("storage failure is retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := salaryMock.NewMockService(ctrl)
		svc.EXPECT().
			Create(gomock.Any(), event.CompanyID, gomock.Any()).
			Return(salary.SalaryResponse{}, errors.New("connection reset"))

		err := consumer.HandlePersonnelCreated(context.Background(), svc, createdMessage(t, event), log)

		assert.Error(t, err)
	})

	t.Run("malformed payload is skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := salaryMock.NewMockService(ctrl)

		err := consumer.HandlePersonnelCreated(context.Background(), svc, kafkago.Message{Value: []byte("{")}, log)

		assert.NoError(t, err)
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := salaryMock.NewMockService(ctrl)
		other := event
		other.EventType = "personnel_deleted"

		err := consumer.HandlePersonnelCreated(context.Background(), svc, createdMessage(t, other), log)

		assert.NoError(t, err)
	})
}

func TestConsumePersonnelLifecycle_CommitsHandledMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := salaryMock.NewMockService(ctrl)

	first := createdMessage(t, events.PersonnelCreatedEvent{EventType: events.PersonnelCreatedType, PersonnelID: uuid.New().String(), CompanyID: uuid.New().String(), DateOfEmployment: "2021-03-01"})
	second := createdMessage(t, events.PersonnelCreatedEvent{EventType: events.PersonnelCreatedType, PersonnelID: uuid.New().String(), CompanyID: uuid.New().String(), DateOfEmployment: "2021-03-01"})
	first.Offset, second.Offset = 10, 11

	gomock.InOrder(
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(salary.SalaryResponse{}, nil),
		svc.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(salary.SalaryResponse{}, nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{msgs: []kafkago.Message{first, second}, cancel: cancel}

	consumer.ConsumePersonnelLifecycle(ctx, reader, svc, zap.NewNop())

	assert.Len(t, reader.committed, 2)
	assert.Equal(t, first.Key, reader.committed[0].Key)
}

func TestConsumePersonnelLifecycle_RetriesFailedMessageBeforeMovingOn(t *testing.T) {
	restore := consumer.SetRetryDelays(time.Millisecond, 5*time.Millisecond)
	defer restore()

	ctrl := gomock.NewController(t)
	svc := salaryMock.NewMockService(ctrl)

	flaky := createdMessage(t, events.PersonnelCreatedEvent{EventType: events.PersonnelCreatedType, PersonnelID: "p1", CompanyID: uuid.New().String(), DateOfEmployment: "2021-03-01"})
	healthy := createdMessage(t, events.PersonnelCreatedEvent{EventType: events.PersonnelCreatedType, PersonnelID: "p2", CompanyID: uuid.New().String(), DateOfEmployment: "2021-03-01"})
	flaky.Offset, healthy.Offset = 10, 11

	attempts := map[string]int{}
	svc.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, companyID string, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
			attempts[req.Personnel]++
			if req.Personnel == "p1" && attempts["p1"] < 3 {
				return salary.SalaryResponse{}, errors.New("db connection reset")
			}
			return salary.SalaryResponse{}, nil
		}).
		Times(4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := &fakeReader{msgs: []kafkago.Message{flaky, healthy}, cancel: cancel}

	consumer.ConsumePersonnelLifecycle(ctx, reader, svc, zap.NewNop())

	assert.Equal(t, 3, attempts["p1"])
	assert.Equal(t, 1, attempts["p2"])
	if assert.Len(t, reader.committed, 2) {
		assert.Equal(t, int64(10), reader.committed[0].Offset)
		assert.Equal(t, int64(11), reader.committed[1].Offset)
	}
}

func TestConsumePersonnelLifecycle_StopsRetryingWhenCancelled(t *testing.T) {
	restore := consumer.SetRetryDelays(time.Millisecond, time.Millisecond)
	defer restore()

	ctrl := gomock.NewController(t)
	svc := salaryMock.NewMockService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := createdMessage(t, events.PersonnelCreatedEvent{EventType: events.PersonnelCreatedType, PersonnelID: uuid.New().String(), CompanyID: uuid.New().String()})
	failing.Offset = 7

	calls := 0
	svc.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
			calls++
			if calls == 2 {
				cancel()
			}
			return salary.SalaryResponse{}, errors.New("db down")
		}).
		MinTimes(2)

	reader := &fakeReader{msgs: []kafkago.Message{failing}, cancel: cancel}

	consumer.ConsumePersonnelLifecycle(ctx, reader, svc, zap.NewNop())

	assert.Empty(t, reader.committed)
}
