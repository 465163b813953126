package personnel

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-personnel/internal/events"
	"go-personnel/internal/messaging/kafka"
	personnelerrors "go-personnel/internal/personnel/errors"
	"go-personnel/internal/shared/contextutil"
	"go-personnel/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PersonnelOptionsKeyPrefix = "personnel:options:"
	personnelOptionsTTL       = time.Hour
	personnelNumberFormat     = "PRS-%06d"
)

func GetPersonnelOptionsKey(companyID string) string {
	return PersonnelOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=personnel_service.go -destination=mock/personnel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreatePersonnelRequest) (PersonnelResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PersonnelResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]PersonnelOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PersonnelResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePersonnelRequest) (PersonnelResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("personnel.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("personnel.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		now:     time.Now,
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreatePersonnelRequest,
) (PersonnelResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create personnel requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("position", req.Position),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidCompanyID
	}

	input, err := parseRequest(req, s.now())
	if err != nil {
		s.logger.Warn("create personnel rejected",
			zap.String("request_id", rid),
			zap.String("birth_date", req.BirthDate),
			zap.String("date_of_employment", req.DateOfEmployment),
			zap.Error(err),
		)
		return PersonnelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create personnel begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	nextVal, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypePersonnelNumber)
	if err != nil {
		s.logger.Error("create personnel generate number failed", zap.Error(err))
		return PersonnelResponse{}, err
	}

	p := &Personnel{
		ID:                uuid.New(),
		CompanyID:         companyUUID,
		NumberOfPersonnel: fmt.Sprintf(personnelNumberFormat, nextVal),
	}
	applyRequest(p, req, input)

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create personnel persist failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PersonnelCreatedEvent{
			EventType:        events.PersonnelCreatedType,
			RequestID:        rid,
			PersonnelID:      p.ID.String(),
			CompanyID:        companyID,
			DateOfEmployment: p.DateOfEmployment.Format(dateLayout),
			OccurredAt:       s.now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return PersonnelResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "personnel",
			AggregateID:   p.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PersonnelCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create personnel outbox persist failed",
				zap.String("personnel_id", p.ID.String()),
				zap.Error(err),
			)
			return PersonnelResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("create personnel success",
		zap.String("request_id", rid),
		zap.String("personnel_id", p.ID.String()),
		zap.String("number_of_personnel", p.NumberOfPersonnel),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PersonnelResponse, error) {
	s.logger.Debug("get all personnel requested", zap.String("company_id", companyID))
	list, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all personnel failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(list), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]PersonnelOptionResponse, error) {
	cacheKey := GetPersonnelOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PersonnelOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		list, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]PersonnelOptionResponse, len(list))
		for i, p := range list {
			resp[i] = PersonnelOptionResponse{
				ID:                p.ID.String(),
				NumberOfPersonnel: p.NumberOfPersonnel,
				Firstname:         p.Firstname,
				Lastname:          p.Lastname,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, personnelOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache personnel options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PersonnelOptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PersonnelResponse, error) {
	s.logger.Debug("get personnel by id requested",
		zap.String("company_id", companyID),
		zap.String("personnel_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}

	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get personnel by id failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*p), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePersonnelRequest,
) (PersonnelResponse, error) {
	s.logger.Debug("update personnel requested",
		zap.String("company_id", companyID),
		zap.String("personnel_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}

	input, err := parseRequest(CreatePersonnelRequest(req), s.now())
	if err != nil {
		s.logger.Warn("update personnel rejected", zap.String("personnel_id", id), zap.Error(err))
		return PersonnelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update personnel begin tx failed", zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("update personnel fetch existing failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	applyRequest(p, CreatePersonnelRequest(req), input)

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update personnel persist failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update personnel commit failed", zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("update personnel success", zap.String("personnel_id", id))

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	s.logger.Debug("delete personnel requested",
		zap.String("company_id", companyID),
		zap.String("personnel_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return personnelerrors.ErrInvalidPersonnelID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete personnel begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete personnel failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete personnel commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("delete personnel success", zap.String("personnel_id", id))
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetPersonnelOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate personnel options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyRequest(p *Personnel, req CreatePersonnelRequest, input personnelInput) {
	p.Firstname = req.Firstname
	p.Lastname = req.Lastname
	p.PhoneNumber = req.PhoneNumber
	p.BirthDate = input.birthDate
	p.Degree = req.Degree
	p.FieldOfStudy = req.FieldOfStudy
	p.CareerRecords = req.CareerRecords
	p.Position = req.Position
	p.LevelForPosition = req.LevelForPosition
	p.DateOfEmployment = input.dateOfEmployment
	p.MaritalStatus = input.maritalStatus
	p.NumberOfChild = input.numberOfChild
}

func mapToResponse(p Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:                p.ID.String(),
		NumberOfPersonnel: p.NumberOfPersonnel,
		Firstname:         p.Firstname,
		Lastname:          p.Lastname,
		PhoneNumber:       p.PhoneNumber,
		BirthDate:         p.BirthDate.Format(dateLayout),
		Degree:            p.Degree,
		FieldOfStudy:      p.FieldOfStudy,
		CareerRecords:     p.CareerRecords,
		Position:          p.Position,
		LevelForPosition:  p.LevelForPosition,
		DateOfEmployment:  p.DateOfEmployment.Format(dateLayout),
		MaritalStatus:     string(p.MaritalStatus),
		NumberOfChild:     p.NumberOfChild,
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(list []Personnel) []PersonnelResponse {
	res := make([]PersonnelResponse, len(list))
	for i, p := range list {
		res[i] = mapToResponse(p)
	}
	return res
}
