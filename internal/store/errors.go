package store

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/skinadvisor/backend/internal/contracts"
)

// ErrNotFound is returned when a row does not exist
var ErrNotFound = contracts.ErrNotFound

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
