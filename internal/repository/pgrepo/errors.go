package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fsdevblog/vitrine/internal/domain"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

// convertErr приводит ошибку к стандартному виду для слоя репозитория.
// pgx.ErrNoRows превращается в domain.ErrRecordNotFound, нарушение
// уникального индекса — в domain.ErrDuplicateKey, остальное — в
// domain.ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	errType := domain.ErrUnknown
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		errType = domain.ErrDuplicateKey
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}

// isCheckViolationErr сообщает, что запрос уперся в CHECK-констрейнт
// (например balance >= 0).
func isCheckViolationErr(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}
