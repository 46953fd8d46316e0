package middleware

// Context keys shared across middlewares and controllers. Constants keep the
// lookups typo-proof.

const (
	// ContextKeyUserID holds the Clerk user ID of the verified session.
	ContextKeyUserID = "userID"

	// ContextKeyRequestID holds the per-request correlation ID.
	ContextKeyRequestID = "requestID"
)
