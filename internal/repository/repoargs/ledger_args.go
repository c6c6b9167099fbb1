package repoargs

import (
	"github.com/fsdevblog/vitrine/internal/domain"
)

// AdjustBalance — аргументы условного изменения баланса. Delta со знаком:
// отрицательная при списании.
type AdjustBalance struct {
	OwnerID int64
	Delta   int64
}

type TransactionCreate struct {
	OwnerID     int64
	Amount      int64
	Type        domain.TransactionType
	Description string
	ReferenceID string
}
