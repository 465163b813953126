package salary

import (
	"context"
	"database/sql"
	"time"

	salaryerrors "go-personnel/internal/salary/errors"
	"go-personnel/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateSalaryRequest) (SalaryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]SalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (SalaryResponse, error)
	GetByPersonnel(ctx context.Context, companyID, personnelID string) (SalaryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Payslip(ctx context.Context, companyID, id string) (Payslip, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	deductions Deductions
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deductions Deductions, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		deductions: deductions,
		now:        time.Now,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateSalaryRequest) (SalaryResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create salary requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("personnel_id", req.Personnel),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidCompanyID
	}

	candidate := &Salary{ID: uuid.New(), CompanyID: companyUUID}
	if err := applyRequest(candidate, req); err != nil {
		s.logger.Warn("create salary rejected", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create salary begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := validate(ctx, qtx, candidate, nil)
	if err != nil {
		s.logger.Warn("create salary validation failed",
			zap.String("request_id", rid),
			zap.String("personnel_id", req.Personnel),
			zap.Error(err),
		)
		return SalaryResponse{}, err
	}

	if err := qtx.Create(ctx, candidate); err != nil {
		s.logger.Error("create salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err, req.Personnel)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create salary commit failed", zap.String("request_id", rid), zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err, req.Personnel)
	}

	candidate.Personnel = p
	s.logger.Info("create salary success",
		zap.String("request_id", rid),
		zap.String("salary_id", candidate.ID.String()),
		zap.String("personnel_id", req.Personnel),
	)

	return s.mapToResponse(*candidate), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]SalaryResponse, error) {
	s.logger.Debug("get all salaries requested", zap.String("company_id", companyID))
	list, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all salaries failed", zap.Error(err))
		return nil, mapRepositoryError(err, "")
	}

	res := make([]SalaryResponse, len(list))
	for i, item := range list {
		res[i] = s.mapToResponse(item)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (SalaryResponse, error) {
	rec, err := s.findByID(ctx, companyID, id)
	if err != nil {
		return SalaryResponse{}, err
	}
	return s.mapToResponse(*rec), nil
}

func (s *service) GetByPersonnel(ctx context.Context, companyID, personnelID string) (SalaryResponse, error) {
	s.logger.Debug("get salary by personnel requested",
		zap.String("company_id", companyID),
		zap.String("personnel_id", personnelID),
	)
	if _, err := uuid.Parse(personnelID); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidPersonnelID
	}

	rec, err := s.repo.FindByPersonnel(ctx, companyID, personnelID)
	if err != nil {
		s.logger.Warn("get salary by personnel failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err, personnelID)
	}
	return s.mapToResponse(*rec), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	s.logger.Debug("update salary requested",
		zap.String("company_id", companyID),
		zap.String("salary_id", id),
		zap.String("personnel_id", req.Personnel),
	)
	if _, err := uuid.Parse(id); err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidSalaryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update salary begin tx failed", zap.Error(err))
		return SalaryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	existing, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("update salary fetch existing failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err, req.Personnel)
	}

	candidate := *existing
	candidate.Personnel = nil
	if err := applyRequest(&candidate, CreateSalaryRequest(req)); err != nil {
		return SalaryResponse{}, err
	}

	p, err := validate(ctx, qtx, &candidate, existing)
	if err != nil {
		s.logger.Warn("update salary validation failed",
			zap.String("salary_id", id),
			zap.Error(err),
		)
		return SalaryResponse{}, err
	}

	if err := qtx.Update(ctx, &candidate); err != nil {
		s.logger.Error("update salary persist failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err, req.Personnel)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update salary commit failed", zap.Error(err))
		return SalaryResponse{}, mapRepositoryError(err, req.Personnel)
	}

	candidate.Personnel = p
	s.logger.Info("update salary success", zap.String("salary_id", id))

	return s.mapToResponse(candidate), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	s.logger.Debug("delete salary requested",
		zap.String("company_id", companyID),
		zap.String("salary_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return salaryerrors.ErrInvalidSalaryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete salary begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		s.logger.Warn("delete salary failed", zap.Error(err))
		return mapRepositoryError(err, "")
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete salary commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete salary success", zap.String("salary_id", id))
	return nil
}

func (s *service) Payslip(ctx context.Context, companyID, id string) (Payslip, error) {
	rec, err := s.findByID(ctx, companyID, id)
	if err != nil {
		return Payslip{}, err
	}

	slip, err := renderPayslip(*rec, s.breakdown(*rec), s.now())
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("salary_id", id), zap.Error(err))
		return Payslip{}, err
	}

	s.logger.Info("payslip generated", zap.String("salary_id", id), zap.Int("bytes", len(slip.Content)))
	return slip, nil
}

func (s *service) findByID(ctx context.Context, companyID, id string) (*Salary, error) {
	s.logger.Debug("get salary by id requested",
		zap.String("company_id", companyID),
		zap.String("salary_id", id),
	)
	if _, err := uuid.Parse(id); err != nil {
		return nil, salaryerrors.ErrInvalidSalaryID
	}

	rec, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("get salary by id failed", zap.Error(err))
		return nil, mapRepositoryError(err, "")
	}
	return rec, nil
}

func (s *service) breakdown(rec Salary) Breakdown {
	maritalStatus := ""
	var numberOfChild *int
	if rec.Personnel != nil {
		maritalStatus = rec.Personnel.MaritalStatus
		numberOfChild = rec.Personnel.NumberOfChild
	}

	gross := GrossSalary(rec.BaseSalary, rec.HousingAllowance, rec.ChildAllowance, rec.FoodAllowance, numberOfChild, maritalStatus)
	return s.deductions.Apply(gross)
}

func (s *service) mapToResponse(rec Salary) SalaryResponse {
	b := s.breakdown(rec)
	resp := SalaryResponse{
		UserID:           rec.ID.String(),
		BaseSalary:       rec.BaseSalary,
		HousingAllowance: rec.HousingAllowance,
		ChildAllowance:   rec.ChildAllowance,
		FoodAllowance:    rec.FoodAllowance,
		SalaryStartDate:  rec.SalaryStartDate.Format(dateLayout),
		GrossSalary:      b.Gross,
		NetSalary:        b.Net,
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		UpdateAt:         rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.Personnel != nil {
		resp.PersonnelDetail = &PersonnelDetail{
			NumberOfPersonnel: rec.Personnel.NumberOfPersonnel,
			Firstname:         rec.Personnel.Firstname,
			Lastname:          rec.Personnel.Lastname,
		}
	}
	return resp
}

func applyRequest(rec *Salary, req CreateSalaryRequest) error {
	personnelID, err := uuid.Parse(req.Personnel)
	if err != nil {
		return salaryerrors.ErrInvalidPersonnelID
	}
	startDate, err := time.Parse(dateLayout, req.SalaryStartDate)
	if err != nil {
		return salaryerrors.ErrInvalidDateFormat
	}

	base := decimal.Zero
	if req.BaseSalary != nil {
		base = *req.BaseSalary
	}
	for _, amount := range []*decimal.Decimal{&base, req.HousingAllowance, req.ChildAllowance, req.FoodAllowance} {
		if amount != nil && amount.IsNegative() {
			return salaryerrors.ErrNegativeAmount
		}
	}

	rec.PersonnelID = personnelID
	rec.BaseSalary = base
	rec.HousingAllowance = req.HousingAllowance
	rec.ChildAllowance = req.ChildAllowance
	rec.FoodAllowance = req.FoodAllowance
	rec.SalaryStartDate = startDate
	return nil
}
