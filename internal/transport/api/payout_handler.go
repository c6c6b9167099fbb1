package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/vitrine/internal/service"
	"github.com/fsdevblog/vitrine/internal/transport/api/middlewares"
)

type PayoutHandler struct {
	svs PayoutServicer
}

func NewPayoutHandler(svs PayoutServicer) *PayoutHandler {
	return &PayoutHandler{svs: svs}
}

type PayoutParams struct {
	ProfileID int64  `json:"profileId" binding:"required"`
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	PixKey    string `json:"pixKey" binding:"required"`
}

type PayoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *PayoutHandler) Create(c *gin.Context) {
	currentUserID := middlewares.CurrentUserID(c)

	var params PayoutParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	request, err := h.svs.RequestPayout(reqCtx, service.RequestPayoutArgs{
		ProfileID: params.ProfileID,
		OwnerID:   currentUserID,
		Amount:    params.Amount,
		PixKey:    params.PixKey,
	})
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, &PayoutResponse{
		Success: true,
		Message: "payout request " + request.PublicID + " is awaiting approval",
	})
}

type PayoutRequestResponseItem struct {
	PublicID  string `json:"id"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Index отдает заявки на выплату по профилю текущего пользователя.
func (h *PayoutHandler) Index(c *gin.Context) {
	currentUserID := middlewares.CurrentUserID(c)

	profileID, parseErr := strconv.ParseInt(c.Query("profileId"), 10, 64)
	if parseErr != nil {
		abortPublic(c, http.StatusBadRequest, "profileId is required")
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	requests, err := h.svs.Requests(reqCtx, currentUserID, profileID)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	response := make([]PayoutRequestResponseItem, len(requests))
	for i, request := range requests {
		response[i] = PayoutRequestResponseItem{
			PublicID:  request.PublicID,
			Amount:    request.Amount,
			Status:    string(request.Status),
			CreatedAt: request.CreatedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, response)
}
