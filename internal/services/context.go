package services

import "context"

type contextKey string

const (
	identifierKey contextKey = "identifier"
	phoneIDKey    contextKey = "phone_id"
	accountKey    contextKey = "account"
	requestIDKey  contextKey = "request_id"
)

// WithIdentifier annotates context with the plan entry identifier (the phone
// number or SIP URI keying the entry).
func WithIdentifier(ctx context.Context, identifier string) context.Context {
	if identifier == "" {
		return ctx
	}
	return context.WithValue(ctx, identifierKey, identifier)
}

// IdentifierFromContext returns the plan entry identifier if present.
func IdentifierFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(identifierKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithPhoneID annotates context with the platform phone number record ID.
func WithPhoneID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, phoneIDKey, id)
}

// PhoneIDFromContext returns the platform phone number record ID if present.
func PhoneIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(phoneIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithAccount annotates context with the account role (source or target).
func WithAccount(ctx context.Context, account string) context.Context {
	if account == "" {
		return ctx
	}
	return context.WithValue(ctx, accountKey, account)
}

// AccountFromContext returns the account role if present.
func AccountFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(accountKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier for tracing
// a run across log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
