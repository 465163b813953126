package personnel_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	kafkaMock "go-personnel/internal/messaging/kafka/mock"
	"go-personnel/internal/personnel"
	personnelerrors "go-personnel/internal/personnel/errors"
	personnelMock "go-personnel/internal/personnel/mock"
	"go-personnel/internal/shared/contextutil"
	"go-personnel/internal/shared/counter"
	counterMock "go-personnel/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   personnel.Service
	repo      *personnelMock.MockRepository
	counter   *counterMock.MockRepository
	redismock redismock.ClientMock
	outbox    *kafkaMock.MockOutboxRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()
	repo := personnelMock.NewMockRepository(ctrl)
	counterRepo := counterMock.NewMockRepository(ctrl)
	outboxRepo := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := personnel.NewServiceWithOutbox(db, repo, counterRepo, outboxRepo, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
		outbox:    outboxRepo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func validCreateRequest() personnel.CreatePersonnelRequest {
	children := 2
	return personnel.CreatePersonnelRequest{
		Firstname:        "Sara",
		Lastname:         "Ahmadi",
		PhoneNumber:      "09120000000",
		BirthDate:        "1990-05-01",
		Degree:           "MSc",
		FieldOfStudy:     "Accounting",
		Position:         "Accountant",
		LevelForPosition: "Senior",
		DateOfEmployment: "2020-01-15",
		MaritalStatus:    "married",
		NumberOfChild:    &children,
	}
}

type outboxMatcher struct {
	requestID   string
	personnelID *string
}

func (m outboxMatcher) Matches(x any) bool {
	event, ok := x.(kafka.OutboxEvent)
	if !ok {
		return false
	}
	var payload events.PersonnelCreatedEvent
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return false
	}
	return event.RequestID == m.requestID &&
		event.Topic == events.PersonnelCreatedTopic &&
		event.EventType == events.PersonnelCreatedType &&
		event.Status == kafka.OutboxStatusPending &&
		payload.RequestID == m.requestID &&
		payload.PersonnelID == *m.personnelID &&
		payload.DateOfEmployment == "2020-01-15"
}

func (m outboxMatcher) String() string {
	return fmt.Sprintf("outbox personnel_created event with request_id %q", m.requestID)
}

func TestPersonnelService_Create(t *testing.T) {
	t.Run("success generates number and queues event", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		rid := "REQ-PRS-1"
		ctx := contextutil.WithRequestID(context.Background(), rid)
		companyID := uuid.New().String()
		req := validCreateRequest()
		var createdID string

		expectTx(t, deps.sqlMock, true)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().
			GetNextValue(ctx, companyID, counter.TypePersonnelNumber).
			Return(int64(42), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *personnel.Personnel) error {
				assert.Equal(t, "PRS-000042", p.NumberOfPersonnel)
				assert.Equal(t, companyID, p.CompanyID.String())
				assert.Equal(t, personnel.MaritalStatusMarried, p.MaritalStatus)
				assert.Equal(t, 2, *p.NumberOfChild)
				createdID = p.ID.String()
				return nil
			})
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(gomock.Any(), outboxMatcher{requestID: rid, personnelID: &createdID}).
			Return(nil)
		deps.redismock.ExpectDel(personnel.GetPersonnelOptionsKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, req)

		assert.NoError(t, err)
		assert.Equal(t, createdID, resp.ID)
		assert.Equal(t, "PRS-000042", resp.NumberOfPersonnel)
		assert.Equal(t, "1990-05-01", resp.BirthDate)
		assert.Equal(t, "2020-01-15", resp.DateOfEmployment)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("future birth date is rejected before any write", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.BirthDate = time.Now().AddDate(1, 0, 0).Format("2006-01-02")
		req.DateOfEmployment = time.Now().AddDate(2, 0, 0).Format("2006-01-02")

		_, err := deps.service.Create(context.Background(), uuid.New().String(), req)

		assert.ErrorIs(t, err, personnelerrors.ErrBirthDateInFuture)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("employment before birth is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.DateOfEmployment = "1985-01-01"

		_, err := deps.service.Create(context.Background(), uuid.New().String(), req)

		assert.ErrorIs(t, err, personnelerrors.ErrEmploymentBeforeBirthDate)
	})

	t.Run("employment in the future is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.DateOfEmployment = time.Now().AddDate(0, 0, 1).Format("2006-01-02")

		_, err := deps.service.Create(context.Background(), uuid.New().String(), req)

		assert.ErrorIs(t, err, personnelerrors.ErrEmploymentDateInFuture)
	})

	t.Run("invalid date format", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := validCreateRequest()
		req.BirthDate = "01/05/1990"

		_, err := deps.service.Create(context.Background(), uuid.New().String(), req)

		assert.ErrorIs(t, err, personnelerrors.ErrInvalidDateFormat)
	})

	t.Run("invalid company id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(context.Background(), "not-a-uuid", validCreateRequest())

		assert.ErrorIs(t, err, personnelerrors.ErrInvalidCompanyID)
	})

	t.Run("duplicate number maps to conflict and rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		companyID := uuid.New().String()

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, counter.TypePersonnelNumber).Return(int64(1), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_personnel_number"})

		_, err := deps.service.Create(ctx, companyID, validCreateRequest())

		assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNumberAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		ctx := context.Background()
		companyID := uuid.New().String()

		expectTx(t, deps.sqlMock, false)
		deps.counter.EXPECT().WithTx(gomock.Any()).Return(deps.counter)
		deps.counter.EXPECT().GetNextValue(ctx, companyID, counter.TypePersonnelNumber).Return(int64(3), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))

		_, err := deps.service.Create(ctx, companyID, validCreateRequest())

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPersonnelService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps.repo.EXPECT().
			FindAllByCompany(ctx, companyID).
			Return([]personnel.Personnel{
				{ID: uuid.New(), NumberOfPersonnel: "PRS-000001", Firstname: "Ali"},
				{ID: uuid.New(), NumberOfPersonnel: "PRS-000002", Firstname: "Neda"},
			}, nil)

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Ali", resp[0].Firstname)
	})

	t.Run("repository error", func(t *testing.T) {
		deps.repo.EXPECT().FindAllByCompany(ctx, companyID).Return(nil, errors.New("db error"))

		resp, err := deps.service.GetAll(ctx, companyID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestPersonnelService_GetOptions(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		companyID := uuid.New().String()
		cached, _ := json.Marshal([]personnel.PersonnelOptionResponse{
			{ID: uuid.New().String(), NumberOfPersonnel: "PRS-000001", Firstname: "Ali"},
		})
		deps.redismock.ExpectGet(personnel.GetPersonnelOptionsKey(companyID)).SetVal(string(cached))

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "Ali", resp[0].Firstname)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		companyID := uuid.New().String()
		cacheKey := personnel.GetPersonnelOptionsKey(companyID)
		list := []personnel.Personnel{{ID: uuid.New(), NumberOfPersonnel: "PRS-000007", Firstname: "Reza", Lastname: "Karimi"}}
		expected, _ := json.Marshal([]personnel.PersonnelOptionResponse{{
			ID: list[0].ID.String(), NumberOfPersonnel: "PRS-000007", Firstname: "Reza", Lastname: "Karimi",
		}})

		deps.redismock.ExpectGet(cacheKey).RedisNil()
		deps.repo.EXPECT().FindOptionsByCompany(gomock.Any(), companyID).Return(list, nil)
		deps.redismock.ExpectSet(cacheKey, expected, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, "PRS-000007", resp[0].NumberOfPersonnel)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		companyID := uuid.New().String()
		deps.redismock.ExpectGet(personnel.GetPersonnelOptionsKey(companyID)).RedisNil()
		deps.repo.EXPECT().FindOptionsByCompany(gomock.Any(), companyID).Return(nil, errors.New("db error"))

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestPersonnelService_GetByID(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("found", func(t *testing.T) {
		id := uuid.New()
		deps.repo.EXPECT().
			FindByIDAndCompany(ctx, companyID, id.String()).
			Return(&personnel.Personnel{ID: id, Firstname: "Ali", MaritalStatus: personnel.MaritalStatusSingle}, nil)

		resp, err := deps.service.GetByID(ctx, companyID, id.String())

		assert.NoError(t, err)
		assert.Equal(t, id.String(), resp.ID)
		assert.Equal(t, "single", resp.MaritalStatus)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, companyID, id)

		assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := deps.service.GetByID(ctx, companyID, "abc")

		assert.ErrorIs(t, err, personnelerrors.ErrInvalidPersonnelID)
	})
}

func TestPersonnelService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success keeps personnel number", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New()
		existing := &personnel.Personnel{ID: id, NumberOfPersonnel: "PRS-000005", Firstname: "Old"}
		req := personnel.UpdatePersonnelRequest(validCreateRequest())
		req.MaritalStatus = "single"
		req.NumberOfChild = nil

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id.String()).Return(existing, nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, p *personnel.Personnel) error {
				assert.Equal(t, "PRS-000005", p.NumberOfPersonnel)
				assert.Equal(t, "Sara", p.Firstname)
				assert.Equal(t, personnel.MaritalStatusSingle, p.MaritalStatus)
				assert.Nil(t, p.NumberOfChild)
				return nil
			})
		deps.redismock.ExpectDel(personnel.GetPersonnelOptionsKey(companyID)).SetVal(1)

		resp, err := deps.service.Update(ctx, companyID, id.String(), req)

		assert.NoError(t, err)
		assert.Equal(t, "PRS-000005", resp.NumberOfPersonnel)
		assert.Equal(t, "Sara", resp.Firstname)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid dates are rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		req := personnel.UpdatePersonnelRequest(validCreateRequest())
		req.DateOfEmployment = "1980-01-01"

		_, err := deps.service.Update(ctx, companyID, uuid.New().String(), req)

		assert.ErrorIs(t, err, personnelerrors.ErrEmploymentBeforeBirthDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New().String()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByIDAndCompany(ctx, companyID, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, companyID, id, personnel.UpdatePersonnelRequest(validCreateRequest()))

		assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNotFound)
	})
}

func TestPersonnelService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("success invalidates cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New().String()
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, companyID, id).Return(nil)
		deps.redismock.ExpectDel(personnel.GetPersonnelOptionsKey(companyID)).SetVal(1)

		err := deps.service.Delete(ctx, companyID, id)

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		id := uuid.New().String()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, companyID, id).Return(gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, companyID, id)

		assert.ErrorIs(t, err, personnelerrors.ErrPersonnelNotFound)
	})
}
