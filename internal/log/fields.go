package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldChatID      = "chat_id"
	FieldType        = "type"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldMonthYear   = "month_year"
	FieldTab         = "tab"
)

// Standard component names.
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
	ComponentWeb    = "web"
)
