package logging

import "context"

type requestIDKey struct{}

// FieldRequestID is the entry field carrying the command request id.
const FieldRequestID = "request_id"

// WithRequestID tags ctx with the id of the command execution it belongs to.
// A blank id leaves ctx untouched.
func WithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil || id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
