package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuditLogRoutes(router chi.Router, middlewares *middlewares.Middlewares, auditLogController *controllers.AuditLogController) {
	router.With(middlewares.Authenticate).Get("/", auditLogController.FindAll)
}
