package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPrescriptionRoutes(router chi.Router, middlewares *middlewares.Middlewares, prescriptionController *controllers.PrescriptionController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", prescriptionController.CreatePrescription)
	router.Get("/", prescriptionController.FindAll)
	router.Get("/{id}", prescriptionController.FindByID)
	router.Put("/{id}", prescriptionController.UpdatePrescription)
	router.Delete("/{id}", prescriptionController.DeletePrescription)
}
