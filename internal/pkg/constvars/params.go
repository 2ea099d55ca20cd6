package constvars

const (
	URLParamID           = "id"
	URLParamAttachmentID = "attachmentId"
)

const (
	URLQueryParamPage           = "page"
	URLQueryParamPageSize       = "page_size"
	URLQueryParamStatus         = "status"
	URLQueryParamDate           = "date"
	URLQueryParamSpecialization = "specialization"
	URLQueryParamActorID        = "actorId"
	URLQueryParamResourceType   = "resourceType"
	URLQueryParamAction         = "action"
	URLQueryParamPaymentStatus  = "paymentStatus"
)

const (
	FormFieldFile = "file"
)
