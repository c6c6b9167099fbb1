package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ReferralHandler struct {
	svs ReferralServicer
}

func NewReferralHandler(svs ReferralServicer) *ReferralHandler {
	return &ReferralHandler{svs: svs}
}

type TrackReferralParams struct {
	AffiliateCode string `json:"affiliateCode" binding:"required"`
	NewUserID     int64  `json:"newUserId" binding:"required"`
}

type TrackReferralResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Track фиксирует регистрацию по партнерскому коду. Неизвестный код или
// повтор — не ошибка: сайд-эффект регистрации не должен ее блокировать.
// 500 только при сбое хранилища.
func (h *ReferralHandler) Track(c *gin.Context) {
	var params TrackReferralParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	created, err := h.svs.Track(reqCtx, params.AffiliateCode, params.NewUserID)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	message := "referral recorded"
	if !created {
		message = "referral skipped"
	}
	c.JSON(http.StatusOK, &TrackReferralResponse{
		Success: created,
		Message: message,
	})
}
