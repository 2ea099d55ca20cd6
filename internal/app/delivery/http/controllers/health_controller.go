package controllers

import (
	"net/http"

	"hospital-service/internal/pkg/constvars"
	"hospital-service/internal/pkg/dto/responses"
	"hospital-service/internal/pkg/utils"
)

type HealthController struct {
	Version string
}

func NewHealthController(version string) *HealthController {
	return &HealthController{Version: version}
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, http.StatusOK, constvars.HealthCheckSuccessMessage, responses.HealthCheck{
		Status:  "ok",
		Version: ctrl.Version,
	})
}
