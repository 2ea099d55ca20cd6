package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	router.With(middlewares.AuthLimiter.Limit).Post("/register", authController.Register)
	router.With(middlewares.AuthLimiter.Limit).Post("/login", authController.Login)
	router.With(middlewares.Authenticate).Get("/me", authController.Me)
}
