// Package uow реализует паттерн Unit of Work поверх транзакций pgx.
// Репозитории регистрируются фабриками и внутри Do получают транзакционное
// соединение вместо пула.
package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=uow.go -destination=mocks/mocks.go -package=mocks

type RepositoryName string
type Repository any

// RepositoryFactory создает репозиторий поверх переданного соединения
// (пул либо открытая транзакция).
type RepositoryFactory func(DBTX) Repository

// DBTX — общий знаменатель между *pgxpool.Pool и pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
}

// TX отдает репозитории, привязанные к открытой транзакции.
type TX interface {
	Get(name RepositoryName) (Repository, error)
}

type UOW interface {
	Register(name RepositoryName, factory RepositoryFactory) error
	Do(ctx context.Context, fn func(ctx context.Context, tx TX) error) error
	GetRepository(name RepositoryName) (Repository, error)
}

type UnitOfWork struct {
	pool         *pgxpool.Pool
	repositories map[RepositoryName]RepositoryFactory
}

var _ UOW = (*UnitOfWork)(nil)

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{
		pool:         pool,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
}

// Register добавляет фабрику репозитория. Повторная регистрация под тем же
// именем возвращает ErrRepositoryAlreadyRegistered.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if _, ok := u.repositories[name]; ok {
		return ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет fn внутри одной транзакции. Если fn вернула ошибку —
// транзакция откатывается целиком, иначе коммитится.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error) (err error) {
	tx, beginErr := u.pool.BeginTx(ctx, pgx.TxOptions{})
	if beginErr != nil {
		return beginErr //nolint:wrapcheck
	}

	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rbErr)
		}
	}()

	if fnErr := fn(ctx, newTransaction(tx, u.repositories)); fnErr != nil {
		return fnErr
	}
	err = tx.Commit(ctx)
	return
}

// GetRepository возвращает репозиторий поверх пула (вне транзакции).
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	factory, ok := u.repositories[name]
	if !ok {
		return nil, ErrRepositoryNotRegistered
	}
	return factory(u.pool), nil
}

// GetRepositoryAs возвращает репозиторий приведенный к типу T.
// Возможные ошибки: ErrRepositoryNotRegistered, ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	var zero T
	repo, err := u.GetRepository(name)
	if err != nil {
		return zero, err //nolint:wrapcheck
	}
	typed, ok := repo.(T)
	if !ok {
		return zero, ErrInvalidRepositoryType
	}
	return typed, nil
}
