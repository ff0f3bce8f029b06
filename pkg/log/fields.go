package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Actor
	FieldUserID    = "user_id"
	FieldPartnerID = "partner_id"
	FieldActorRole = "actor_role"

	// Domain
	FieldBookingID = "booking_id"
	FieldClientID  = "client_id"
	FieldOperation = "operation"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
