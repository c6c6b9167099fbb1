// Package events публикует события об изменениях баланса для внешнего
// нотификатора (realtime-подписки UI живут вне ядра).
package events

import (
	"time"

	"github.com/fsdevblog/vitrine/internal/domain"
)

type BalanceEvent struct {
	OwnerID       int64                  `json:"owner_id"`
	Balance       int64                  `json:"balance"`
	Amount        int64                  `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	TransactionID int64                  `json:"transaction_id"`
	OccurredAt    time.Time              `json:"occurred_at"`
}
