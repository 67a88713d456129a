package client

import (
	"errors"
	"strings"

	clienterrors "go-taxdesk/internal/client/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return clienterrors.ErrClientNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		constraint := strings.ToLower(pgErr.ConstraintName)
		switch {
		case strings.Contains(constraint, "gstin"):
			return clienterrors.ErrClientGSTINExists
		case strings.Contains(constraint, "pan"):
			return clienterrors.ErrClientPANExists
		}
	}
	return err
}
