package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachMedicalRecordRoutes(router chi.Router, middlewares *middlewares.Middlewares, medicalRecordController *controllers.MedicalRecordController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", medicalRecordController.CreateMedicalRecord)
	router.Get("/", medicalRecordController.FindAll)
	router.Get("/{id}", medicalRecordController.FindByID)
	router.Put("/{id}", medicalRecordController.UpdateMedicalRecord)
	router.Delete("/{id}", medicalRecordController.DeleteMedicalRecord)
	router.Post("/{id}/attachments", medicalRecordController.UploadAttachment)
	router.Delete("/{id}/attachments/{attachmentId}", medicalRecordController.DeleteAttachment)
}
