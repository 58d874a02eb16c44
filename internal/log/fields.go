package log

// Common field names for structured logging
const (
	FieldComponent     = "component"
	FieldRequestID     = "request_id"
	FieldClientIP      = "client_ip"
	FieldMethod        = "method"
	FieldPath          = "path"
	FieldStatusCode    = "status_code"
	FieldDuration      = "duration_ms"
	FieldError         = "error"
	FieldOperation     = "operation"
	FieldTransactionID = "transaction_id"
	FieldPayer         = "payer"
	FieldAmountCents   = "amount_cents"
	FieldCategory      = "category"
	FieldCount         = "count"
	FieldEndpoint      = "endpoint"
	FieldWindowStart   = "window_start"
	FieldWindowEnd     = "window_end"
)

// Components defines standard component names
const (
	ComponentApp    = "app"
	ComponentLedger = "ledger"
	ComponentSync   = "sync"
	ComponentStore  = "store"
	ComponentRemote = "remote"
	ComponentHTTP   = "http"
	ComponentEvents = "events"
	ComponentConfig = "config"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpDelete   = "delete"
	OpSync     = "sync"
	OpSettle   = "settle_up"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
