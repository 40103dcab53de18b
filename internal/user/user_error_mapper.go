package user

import (
	"errors"
	"strings"

	usererrors "hr-dashboard/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_users_username" {
			return usererrors.ErrUsernameTaken
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_users_username") {
		return usererrors.ErrUsernameTaken
	}

	return err
}
