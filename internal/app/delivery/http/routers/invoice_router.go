package routers

import (
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachInvoiceRoutes(router chi.Router, middlewares *middlewares.Middlewares, invoiceController *controllers.InvoiceController) {
	router.Use(middlewares.Authenticate)
	router.Post("/", invoiceController.CreateInvoice)
	router.Get("/", invoiceController.FindAll)
	router.Get("/{id}", invoiceController.FindByID)
	router.Put("/{id}", invoiceController.UpdateInvoice)
	router.Post("/{id}/pay", invoiceController.PayInvoice)
	router.Delete("/{id}", invoiceController.DeleteInvoice)
}
