package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, middlewares *middlewares.Middlewares, doctorController *controllers.DoctorController) {
	router.With(middlewares.OptionalAuthenticate).Get("/", doctorController.FindAll)
	router.With(middlewares.OptionalAuthenticate).Get("/{id}", doctorController.FindByID)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/", doctorController.CreateDoctor)
		r.Get("/me", doctorController.FindMine)
		r.Get("/me/patients", doctorController.FindMyPatients)
		r.Put("/{id}", doctorController.UpdateDoctor)
		r.Put("/{id}/approve", doctorController.ApproveDoctor)
		r.Delete("/{id}", doctorController.DeleteDoctor)
	})
}
