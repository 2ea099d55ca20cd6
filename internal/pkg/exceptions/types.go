package exceptions

import (
	"fmt"
	"net/http"

	"hospital-service/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidationFailed, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrNothingToUpdate = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientNothingToUpdate, constvars.ErrDevInvalidInput)
	}
	ErrHashPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}
	ErrCannotParseMultipartForm = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseMultipartForm)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrInvalidEmailOrPassword = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusUnauthorized, constvars.ErrClientInvalidEmailOrPassword, constvars.ErrDevInvalidCredentials)
	}
	ErrEmailAlreadyExist = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientEmailAlreadyExists, fmt.Sprintf(constvars.ErrDevDBDuplicateKey, "users")).WithKind(KindAlreadyExists)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrInvalidRoleType = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthRoleNotExists)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevRequestLimitExceeded)
	}

	// Parse
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}

	// Domain
	ErrNotFound = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, http.StatusNotFound, fmt.Sprintf(constvars.ErrClientResourceNotFound, resource), constvars.ErrDevDocumentNotFound)
	}
	ErrProfileMissing = func(err error, role string) *CustomError {
		return BuildNewCustomError(err, http.StatusNotFound, constvars.ErrClientProfileMissing, fmt.Sprintf("%s profile not found", role)).WithKind(KindProfileMissing)
	}
	ErrAlreadyExists = func(err error, resource string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, fmt.Sprintf(constvars.ErrClientAlreadyExists, resource), fmt.Sprintf(constvars.ErrDevDBDuplicateKey, resource)).WithKind(KindAlreadyExists)
	}
	ErrTimeSlotTaken = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientTimeSlotTaken, constvars.ErrDevLockNotAcquired).WithKind(KindAlreadyExists)
	}
	// ErrTimeSlotConflict is returned when the storage guard rejects a racing insert.
	ErrTimeSlotConflict = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusConflict, constvars.ErrClientTimeSlotTaken, fmt.Sprintf(constvars.ErrDevDBDuplicateKey, "appointments"))
	}
	ErrInvoiceAlreadyPaid = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientInvoiceAlreadyPaid, constvars.ErrDevInvalidInput).WithKind(KindInvalidTransition)
	}
	ErrInvoiceNotPayable = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientInvoiceNotPayable, constvars.ErrDevInvalidInput).WithKind(KindInvalidTransition)
	}
	ErrPaymentStatusChange = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientPaymentStatusChange, constvars.ErrDevInvalidInput).WithKind(KindInvalidTransition)
	}
	ErrPaymentInProgress = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusConflict, constvars.ErrClientPaymentInProgress, constvars.ErrDevInvoiceLockNotAcquired).WithKind(KindInvalidTransition)
	}
	ErrPaymentGateway = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientPaymentFailed, constvars.ErrDevPaymentGatewayRequest)
	}
	ErrFileStore = func(err error, bucket string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientUploadFailed, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucket))
	}
	ErrFileRemove = func(err error, bucket string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientUploadFailed, fmt.Sprintf(constvars.ErrDevMinioFailedToRemoveObject, bucket))
	}
	ErrFilePresign = func(err error, bucket string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientUploadFailed, fmt.Sprintf(constvars.ErrDevMinioFailedToPresignURL, bucket))
	}
	ErrPublishMessage = func(err error, queue string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queue))
	}
	ErrSMTPSendEmail = func(err error, host string) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevSMTPSendEmail, host))
	}

	// Database
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBCountDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCountDocuments)
	}
	ErrMongoDBTransaction = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBTransactionFailed)
	}
	ErrMongoDBNotObjectID = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevDBStringNotObjectID)
	}

	// Redis
	ErrRedisGet = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisAcquireLock = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisAcquireKey)
	}

	// HTTP client
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusBadGateway, constvars.ErrClientPaymentFailed, constvars.ErrDevSendHTTPRequest)
	}

	// Server
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerInternalError)
	}
	ErrMissingRequestID = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevMissingRequestID)
	}
	ErrServerPanic = func(err error) *CustomError {
		return BuildNewCustomError(err, http.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerPanic)
	}
)
