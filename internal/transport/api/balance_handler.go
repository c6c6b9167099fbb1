package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/vitrine/internal/transport/api/middlewares"
)

type BalanceHandler struct {
	svs LedgerServicer
}

func NewBalanceHandler(svs LedgerServicer) *BalanceHandler {
	return &BalanceHandler{svs: svs}
}

type BalanceResponse struct {
	Balance    int64 `json:"balance"`
	TotalSpent int64 `json:"total_spent"`
}

func (h *BalanceHandler) Index(c *gin.Context) {
	currentUserID := middlewares.CurrentUserID(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.svs.GetAccount(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, &BalanceResponse{
		Balance:    account.Balance,
		TotalSpent: account.TotalSpent,
	})
}

type TransactionResponseItem struct {
	ID          int64  `json:"id"`
	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	ReferenceID string `json:"reference_id,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// History отдает выписку по счету от новых транзакций к старым.
func (h *BalanceHandler) History(c *gin.Context) {
	currentUserID := middlewares.CurrentUserID(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, err := h.svs.History(reqCtx, currentUserID)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	response := make([]TransactionResponseItem, len(transactions))
	for i, transaction := range transactions {
		response[i] = TransactionResponseItem{
			ID:          transaction.ID,
			Amount:      transaction.Amount,
			Type:        string(transaction.Type),
			Description: transaction.Description,
			ReferenceID: transaction.ReferenceID,
			CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, response)
}
