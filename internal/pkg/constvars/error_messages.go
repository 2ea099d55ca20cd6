package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":           "is required",
	"email":              "must be a valid email",
	"min":                "must be at least %s characters long",
	"max":                "maximum at %s characters long",
	"len":                "must be %s characters long",
	"oneof":              "must be one of [%s]",
	"gt":                 "must be greater than %s",
	"gte":                "must be greater than or equal to %s",
	"lt":                 "must be less than %s",
	"lte":                "must be less than or equal to %s",
	"dive":               "contains an invalid item",
	"datetime":           "must match the format %s",
	"password":           "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"phone_number":       "must be a valid phone number",
	"time_slot":          "must be a time slot in HH:MM format",
	"appointment_status": "must be one of [scheduled confirmed completed cancelled no-show]",
	"register_role":      "must be either 'patient' or 'doctor'",
	"object_id":          "must be a valid id",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotOwner                      = "you can only access your own records"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientProfileMissing                = "please complete your profile setup first"
	ErrClientResourceNotFound              = "%s not found"
	ErrClientAlreadyExists                 = "%s already exists"
	ErrClientInvalidTransition             = "this change is not allowed"
	ErrClientTimeSlotTaken                 = "this time slot is already booked"
	ErrClientInvoiceAlreadyPaid            = "invoice is already paid"
	ErrClientInvoiceNotPayable             = "invoice cannot be paid in its current status"
	ErrClientPaymentInProgress             = "a payment for this invoice is already in progress"
	ErrClientPaymentStatusChange           = "payment status can only be changed from paid to refunded"
	ErrClientPaymentFailed                 = "payment could not be processed"
	ErrClientUploadFailed                  = "file could not be stored"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientNothingToUpdate               = "no fields to update"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevFailedToHashPassword     = "failed to hash password"
	ErrDevInvalidCredentials       = "invalid credentials"

	// Validation messages
	ErrDevValidationFailed           = "validation failed"
	ErrDevURLParamIDValidationFailed = "parameter %s validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthRoleNotExists         = "role doesn't exist on the system"

	// Authorization messages
	ErrDevAuthzDenied = "authorization denied: %s"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCountDocuments   = "failed when counting documents on database"
	ErrDevDBDuplicateKey             = "duplicate key on collection %s"
	ErrDevDBTransactionFailed        = "database transaction failed"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"
	ErrDevDocumentNotFound           = "document not found"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"
	ErrDevMinioFailedToRemoveObject = "failed to remove object from minio storage with bucket name '%s'"
	ErrDevMinioFailedToPresignURL   = "failed to presign object url on minio storage with bucket name '%s'"

	// Messaging messages
	ErrDevRabbitMQPublishMessage = "failed to publish message to rabbitmq queue '%s'"
	ErrDevSMTPSendEmail          = "failed to send email through smtp host '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisAcquireKey = "failed to SETNX lock key in redis"

	// Payment gateway messages
	ErrDevPaymentGatewayRequest  = "payment gateway request failed"
	ErrDevPaymentGatewayResponse = "payment gateway responded with status %d"

	// Server messages
	ErrDevServerInternalError    = "internal server error"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerPanic            = "recovered from panic"
	ErrDevMissingRequestID       = "request id missing from context"
	ErrDevRequestLimitExceeded   = "request limit exceeded"
	ErrDevLockNotAcquired        = "slot lock is held by another request"
	ErrDevInvoiceLockNotAcquired = "invoice lock is held by another request"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
