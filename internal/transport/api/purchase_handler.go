package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler принимает подтверждения оплаты от бэкенда основного
// приложения. Верификация подписи вебхука шлюза — забота вызывающего,
// сюда прилетает уже проверенное событие.
type PurchaseHandler struct {
	svs LedgerServicer
}

func NewPurchaseHandler(svs LedgerServicer) *PurchaseHandler {
	return &PurchaseHandler{svs: svs}
}

type ConfirmPurchaseParams struct {
	OwnerID    int64  `json:"ownerId" binding:"required"`
	Credits    int64  `json:"credits" binding:"required,gt=0"`
	PaymentRef string `json:"paymentRef" binding:"required"`
}

type ConfirmPurchaseResponse struct {
	Success       bool  `json:"success"`
	TransactionID int64 `json:"transaction_id"`
}

// Confirm идемпотентен: повтор с тем же paymentRef отвечает той же
// транзакцией и не меняет баланс.
func (h *PurchaseHandler) Confirm(c *gin.Context) {
	var params ConfirmPurchaseParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transaction, err := h.svs.ConfirmPurchase(reqCtx, params.OwnerID, params.Credits, params.PaymentRef)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, &ConfirmPurchaseResponse{
		Success:       true,
		TransactionID: transaction.ID,
	})
}
