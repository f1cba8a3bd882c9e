package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldDonorID       = "donor_id"
	FieldCampaignID    = "campaign_id"
	FieldCampaignTitle = "campaign_title"
	FieldDonationID    = "donation_id"
	FieldAmountPaise   = "amount_paise"
	FieldCategory      = "category"
	FieldSheetsRef     = "sheets_ref"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentCatalog  = "catalog"
	ComponentDonation = "donation"
	ComponentReceipt  = "receipt"
	ComponentSession  = "session"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentExport   = "export"
	ComponentCache    = "cache"
)

// Operations defines standard operation names
const (
	OpRefresh   = "refresh"
	OpFilter    = "filter"
	OpSubmit    = "submit"
	OpReconcile = "reconcile"
	OpRollup    = "rollup"
	OpFetch     = "fetch"
	OpExport    = "export"
	OpValidate  = "validate"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
