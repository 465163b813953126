package personnel

import (
	"errors"
	"strings"

	personnelerrors "go-personnel/internal/personnel/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return personnelerrors.ErrPersonnelNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == "uq_personnel_number" {
				return personnelerrors.ErrPersonnelNumberAlreadyExists
			}
		case "22P02":
			return personnelerrors.ErrInvalidPersonnelID
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_personnel_number") {
		return personnelerrors.ErrPersonnelNumberAlreadyExists
	}

	return err
}
