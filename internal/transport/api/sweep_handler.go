package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SweepHandler дает планировщику дернуть проход свипера по HTTP — в
// дополнение к внутреннему таймеру.
type SweepHandler struct {
	boosts  Sweeper
	stories Sweeper
}

func NewSweepHandler(boosts, stories Sweeper) *SweepHandler {
	return &SweepHandler{boosts: boosts, stories: stories}
}

type SweepResponse struct {
	Processed int `json:"processed"`
}

func (h *SweepHandler) Boosts(c *gin.Context) {
	h.run(c, h.boosts)
}

func (h *SweepHandler) Stories(c *gin.Context) {
	h.run(c, h.stories)
}

func (h *SweepHandler) run(c *gin.Context, sweeper Sweeper) {
	reqCtx, cancel := context.WithTimeout(c, SweepTimeout)
	defer cancel()

	processed, err := sweeper.Sweep(reqCtx, time.Now().UTC())
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.JSON(http.StatusOK, &SweepResponse{Processed: processed})
}
