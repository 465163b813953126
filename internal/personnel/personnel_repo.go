package personnel

import (
	"context"
	"database/sql"

	"go-personnel/internal/shared/connection"
	"go-personnel/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=personnel_repo.go -destination=mock/personnel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Personnel) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Personnel, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Personnel, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Personnel, error)
	Update(ctx context.Context, p *Personnel) error
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

func (r *repository) Create(ctx context.Context, p *Personnel) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Personnel, error) {
	var list []Personnel
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("number_of_personnel ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Personnel, error) {
	var list []Personnel
	err := r.conn(ctx).
		Select("id", "number_of_personnel", "firstname", "lastname").
		Scopes(tenant.Scope(companyID)).
		Order("firstname ASC, lastname ASC").
		Find(&list).Error
	return list, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Personnel, error) {
	var p Personnel
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Personnel) error {
	return r.conn(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Personnel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
