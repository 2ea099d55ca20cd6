package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-service/internal/app/config"
	"hospital-service/internal/app/contracts"
	"hospital-service/internal/app/delivery/http/controllers"
	"hospital-service/internal/app/delivery/http/middlewares"
	"hospital-service/internal/app/delivery/http/routers"
	"hospital-service/internal/app/drivers/database"
	"hospital-service/internal/app/drivers/logger"
	mailerDriver "hospital-service/internal/app/drivers/mailer"
	"hospital-service/internal/app/drivers/messaging"
	"hospital-service/internal/app/drivers/storage"
	"hospital-service/internal/app/services/core/appointments"
	"hospital-service/internal/app/services/core/audit"
	"hospital-service/internal/app/services/core/auth"
	"hospital-service/internal/app/services/core/authorization"
	"hospital-service/internal/app/services/core/doctors"
	"hospital-service/internal/app/services/core/identity"
	"hospital-service/internal/app/services/core/invoices"
	medicalRecords "hospital-service/internal/app/services/core/medical_records"
	"hospital-service/internal/app/services/core/patients"
	"hospital-service/internal/app/services/core/prescriptions"
	"hospital-service/internal/app/services/core/users"
	"hospital-service/internal/app/services/shared/guard"
	"hospital-service/internal/app/services/shared/locker"
	"hospital-service/internal/app/services/shared/mailer"
	"hospital-service/internal/app/services/shared/mongodb"
	paymentGateway "hospital-service/internal/app/services/shared/payment_gateway"
	"hospital-service/internal/app/services/shared/redis"
	minioStorage "hospital-service/internal/app/services/shared/storage"
	"hospital-service/internal/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Version and Tag are set at build time through ldflags.
var (
	Version = "develop"
	Tag     = "0.0.1-rc"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log.Printf("Version: %s, Tag: %s", Version, Tag)

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	metrics.Register(prometheus.DefaultRegisterer)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		Minio:          storage.NewMinio(driverConfig, internalConfig),
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if internalConfig.Mailer.UseBroker {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, internalConfig)
	}

	if err := bootstrapingTheApp(bootstrap); err != nil {
		log.Fatalf("Failed to bootstrap the app: %v", err)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	dbName := internalConfig.MongoDB.DbName
	log := bootstrap.Logger

	// Shared
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, log)
	transactor := mongodb.NewTransactor(bootstrap.MongoDB, log)
	fileStorage := minioStorage.NewMinioStorage(bootstrap.Minio, log)
	paymentGatewayService := paymentGateway.NewPaymentGatewayService(internalConfig, log)

	var mailerService contracts.MailerService
	if bootstrap.RabbitMQ != nil {
		brokerMailer, err := mailer.NewBrokerMailerService(bootstrap.RabbitMQ, internalConfig.RabbitMQ.MailerQueue, log)
		if err != nil {
			return err
		}
		mailerService = brokerMailer
	} else {
		mailerService = mailer.NewSMTPMailerService(mailerDriver.NewSMTPClient(bootstrap.DriverConfig), internalConfig.Mailer.EmailSender, log)
	}
	notificationSender := mailer.NewNotificationSender(mailerService, log)

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName)
	patientRepository := patients.NewPatientMongoRepository(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)
	medicalRecordRepository := medicalRecords.NewMedicalRecordMongoRepository(bootstrap.MongoDB, dbName)
	prescriptionRepository := prescriptions.NewPrescriptionMongoRepository(bootstrap.MongoDB, dbName)
	invoiceRepository := invoices.NewInvoiceMongoRepository(bootstrap.MongoDB, dbName)
	auditLogRepository := audit.NewAuditLogMongoRepository(bootstrap.MongoDB, dbName)

	// Authorization
	identityResolver := identity.NewIdentityResolver(patientRepository, doctorRepository, redisRepository, internalConfig.Identity.ProfileCacheTTL, log)
	authorizer := authorization.NewObservedEngine(authorization.NewEngine(), log)
	accessGuard := guard.NewGuard(authorizer, identityResolver)
	recipientResolver := mailer.NewRecipientResolver(userRepository, patientRepository, doctorRepository, log)

	auditRecorder := audit.NewAuditRecorder(auditLogRepository, internalConfig.Audit.WriteTimeout, log)
	bootstrap.AuditDrain = auditRecorder.Drain

	// Usecases
	authUsecase := auth.NewAuthUsecase(userRepository, identityResolver, auditRecorder, internalConfig, log)
	userUsecase := auth.NewUserUsecase(userRepository, auditRecorder, accessGuard, log)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, patientRepository, appointmentRepository, userRepository, identityResolver, auditRecorder, notificationSender, accessGuard, log)
	patientUsecase := patients.NewPatientUsecase(patientRepository, userRepository, identityResolver, auditRecorder, accessGuard, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, doctorRepository, patientRepository, lockerService, auditRecorder, notificationSender, recipientResolver, accessGuard, internalConfig.Booking.LockTTL, log)
	medicalRecordUsecase := medicalRecords.NewMedicalRecordUsecase(medicalRecordRepository, appointmentRepository, transactor, fileStorage, auditRecorder, accessGuard, internalConfig, log)
	prescriptionUsecase := prescriptions.NewPrescriptionUsecase(prescriptionRepository, medicalRecordRepository, auditRecorder, accessGuard, log)
	invoiceUsecase := invoices.NewInvoiceUsecase(invoiceRepository, patientRepository, doctorRepository, appointmentRepository, paymentGatewayService, lockerService, auditRecorder, notificationSender, recipientResolver, accessGuard, internalConfig, log)
	auditLogUsecase := audit.NewAuditLogUsecase(auditLogRepository, accessGuard)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares.NewMiddlewares(log, internalConfig),
		controllers.NewHealthController(internalConfig.App.Version),
		controllers.NewAuthController(log, authUsecase),
		controllers.NewUserController(log, userUsecase),
		controllers.NewDoctorController(log, doctorUsecase),
		controllers.NewPatientController(log, patientUsecase),
		controllers.NewAppointmentController(log, appointmentUsecase),
		controllers.NewMedicalRecordController(log, medicalRecordUsecase, internalConfig.App.AttachmentMaxUploadSizeInByte),
		controllers.NewPrescriptionController(log, prescriptionUsecase),
		controllers.NewInvoiceController(log, invoiceUsecase),
		controllers.NewAuditLogController(log, auditLogUsecase),
	)

	return nil
}
