package constvars

type ContextKey string

const (
	ResourceUsers          = "users"
	ResourceDoctors        = "doctors"
	ResourcePatients       = "patients"
	ResourceAppointments   = "appointments"
	ResourceMedicalRecords = "medical-records"
	ResourcePrescriptions  = "prescriptions"
	ResourceInvoices       = "invoices"
	ResourceAuditLogs      = "audit-logs"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	DefaultPageSize        = 20
	MaxPageSize            = 100
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_ACTOR_KEY                ContextKey = "actor"
	CONTEXT_CLIENT_IP_KEY            ContextKey = "client_ip"
	CONTEXT_USER_AGENT_KEY           ContextKey = "user_agent"
)

const (
	REQUEST_ID_PREFIX = "HSP_SVC_"
)

const (
	AppEnvironmentProduction  = "production"
	AppEnvironmentDevelopment = "development"
)

const (
	InvoiceNumberPrefix = "INV-"
	PaymentCurrency     = "usd"
)

const (
	RedisKeyPrefixProfile     = "profile:%s:%s"
	RedisKeyPrefixBookingLock = "lock:appointment:%s:%s:%s"
	RedisKeyPrefixInvoiceLock = "lock:invoice:%s"
)

const (
	MongoCollectionUsers          = "users"
	MongoCollectionDoctors        = "doctors"
	MongoCollectionPatients       = "patients"
	MongoCollectionAppointments   = "appointments"
	MongoCollectionMedicalRecords = "medicalrecords"
	MongoCollectionPrescriptions  = "prescriptions"
	MongoCollectionInvoices       = "invoices"
	MongoCollectionAuditLogs      = "auditlogs"
)
