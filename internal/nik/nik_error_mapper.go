package nik

import (
	"errors"
	"strings"

	nikerrors "github.com/AlfahrezaRico/backend/internal/nik/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nikerrors.ErrConfigNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_nik_config_active_department" {
			return nikerrors.ErrConfigAlreadyActive
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_nik_config_active_department") {
		return nikerrors.ErrConfigAlreadyActive
	}

	return err
}
