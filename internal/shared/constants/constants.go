package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyOfficerID   = "officer_id"
	ContextKeyOrgID       = "org_id"
	ContextKeyUserRole    = "user_role"
	ContextKeyRank        = "rank"
	ContextKeyBadgeNumber = "badge_number"
	ContextKeyRequestID   = "request_id"

	// Database table names
	TableOvertimePostings    = "overtime_postings"
	TableOvertimeSignups     = "overtime_signups"
	TableOvertimeAuditEvents = "overtime_audit_events"
)
