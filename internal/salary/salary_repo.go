package salary

import (
	"context"
	"database/sql"

	"go-personnel/internal/shared/connection"
	"go-personnel/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	PersonnelLookup
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Salary) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Salary, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Salary, error)
	FindByPersonnel(ctx context.Context, companyID string, personnelID string) (*Salary, error)
	Update(ctx context.Context, s *Salary) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return connection.Session(ctx, r.db, r.tx)
}

func (r *repository) FindPersonnel(ctx context.Context, companyID, personnelID string) (*SalaryPersonnel, error) {
	var p SalaryPersonnel
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", personnelID).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ExistsForPersonnel(ctx context.Context, personnelID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Salary{}).
		Where("personnel_id = ?", personnelID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Create(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Omit(clause.Associations).Create(s).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Salary, error) {
	var list []Salary
	err := r.conn(ctx).
		Preload("Personnel").
		Scopes(tenant.Scope(companyID)).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Salary, error) {
	var s Salary
	err := r.conn(ctx).
		Preload("Personnel").
		Scopes(tenant.Scope(companyID)).
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindByPersonnel(ctx context.Context, companyID string, personnelID string) (*Salary, error) {
	var s Salary
	err := r.conn(ctx).
		Preload("Personnel").
		Scopes(tenant.Scope(companyID)).
		First(&s, "personnel_id = ?", personnelID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Salary) error {
	return r.conn(ctx).Omit(clause.Associations).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Salary{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
