package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/vitrine/internal/domain"
	"github.com/fsdevblog/vitrine/internal/transport/api/middlewares"
)

type PremiumHandler struct {
	svs PremiumServicer
}

func NewPremiumHandler(svs PremiumServicer) *PremiumHandler {
	return &PremiumHandler{svs: svs}
}

type ActivateParams struct {
	ProfileID int64 `json:"profile_id" binding:"required"`
	ServiceID int64 `json:"service_id" binding:"required"`
}

type GrantResponse struct {
	ID            int64  `json:"id"`
	ProfileID     int64  `json:"profile_id"`
	ServiceID     int64  `json:"service_id"`
	TransactionID int64  `json:"transaction_id"`
	EndDate       string `json:"end_date,omitempty"`
}

type ActivateResponse struct {
	Success bool          `json:"success"`
	Grant   GrantResponse `json:"grant"`
}

func (h *PremiumHandler) Activate(c *gin.Context) {
	currentUserID := middlewares.CurrentUserID(c)

	var params ActivateParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	grant, err := h.svs.Activate(reqCtx, currentUserID, params.ProfileID, params.ServiceID)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, &ActivateResponse{
		Success: true,
		Grant:   convertGrant(grant),
	})
}

// Grants отдает действующие услуги профиля.
func (h *PremiumHandler) Grants(c *gin.Context) {
	profileID, parseErr := strconv.ParseInt(c.Query("profileId"), 10, 64)
	if parseErr != nil {
		abortPublic(c, http.StatusBadRequest, "profileId is required")
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	grants, err := h.svs.ActiveGrants(reqCtx, profileID)
	if err != nil {
		abortWithServiceErr(c, err)
		return
	}

	response := make([]GrantResponse, len(grants))
	for i := range grants {
		response[i] = convertGrant(&grants[i])
	}
	c.JSON(http.StatusOK, response)
}

func convertGrant(grant *domain.ServiceGrant) GrantResponse {
	response := GrantResponse{
		ID:            grant.ID,
		ProfileID:     grant.ProfileID,
		ServiceID:     grant.ServiceID,
		TransactionID: grant.TransactionID,
	}
	if grant.EndDate != nil {
		response.EndDate = grant.EndDate.Format(time.RFC3339)
	}
	return response
}
