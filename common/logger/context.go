package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Business context (user_id, workspace_id, etc.) set once flows
// into every log statement below it.
type LogFields struct {
	UserID      *int64  // Authenticated user ID
	TeamID      *int64  // Team ID
	WorkspaceID *int64  // Brand workspace ID
	Endpoint    *string // Metered endpoint path
	ContentType *string // Generated content type (e.g. "brand_names", "logo")
	Component   string  // Component name (e.g. "brandforge.genai.logo")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.TeamID != nil {
		result.TeamID = next.TeamID
	}
	if next.WorkspaceID != nil {
		result.WorkspaceID = next.WorkspaceID
	}
	if next.Endpoint != nil {
		result.Endpoint = next.Endpoint
	}
	if next.ContentType != nil {
		result.ContentType = next.ContentType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{UserID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen characters, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
