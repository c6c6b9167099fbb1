package uow

import (
	"github.com/jackc/pgx/v5"
)

// Transaction — обертка над pgx.Tx, раздающая транзакционные репозитории.
type Transaction struct {
	repositories map[RepositoryName]RepositoryFactory
	tx           pgx.Tx
}

var _ TX = (*Transaction)(nil)

func newTransaction(tx pgx.Tx, repositories map[RepositoryName]RepositoryFactory) *Transaction {
	return &Transaction{
		repositories: repositories,
		tx:           tx,
	}
}

// Get возвращает репозиторий поверх текущей транзакции
// или ошибку ErrRepositoryNotRegistered.
func (t *Transaction) Get(name RepositoryName) (Repository, error) {
	factory, ok := t.repositories[name]
	if !ok {
		return nil, ErrRepositoryNotRegistered
	}
	return factory(t.tx), nil
}

// GetAs возвращает транзакционный репозиторий приведенный к типу T.
// Возможные ошибки: ErrRepositoryNotRegistered, ErrInvalidRepositoryType.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	var zero T
	repo, err := t.Get(name)
	if err != nil {
		return zero, err //nolint:wrapcheck
	}
	typed, ok := repo.(T)
	if !ok {
		return zero, ErrInvalidRepositoryType
	}
	return typed, nil
}
