package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPatientRoutes(router chi.Router, middlewares *middlewares.Middlewares, patientController *controllers.PatientController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", patientController.CreatePatient)
	router.Get("/", patientController.FindAll)
	router.Get("/me", patientController.FindMine)
	router.Get("/{id}", patientController.FindByID)
	router.Put("/{id}", patientController.UpdatePatient)
	router.Delete("/{id}", patientController.DeletePatient)
}
