package controllers

import (
	"net/http"

	"github.com/etude-leroux/site-api/internal/app"
	"github.com/etude-leroux/site-api/internal/dtos"
	"github.com/etude-leroux/site-api/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{app: a}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// Probe the only hard dependency: the database pool.
	if err := c.app.DB.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("etude-api unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{Status: "ok"})
}
