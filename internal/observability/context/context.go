package context

import (
	"context"
	"strconv"
)

type ctxKey string

const (
	requestIDKey ctxKey = "obs_request_id"
	accountIDKey ctxKey = "obs_account_id"
)

// WithRequestID stores the request identifier on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey).(string)
	return value
}

// WithAccountID stores the authenticated account on the context.
func WithAccountID(ctx context.Context, accountID int64) context.Context {
	if accountID <= 0 {
		return ctx
	}
	return context.WithValue(ctx, accountIDKey, accountID)
}

func AccountIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, ok := ctx.Value(accountIDKey).(int64)
	if !ok || value <= 0 {
		return ""
	}
	return strconv.FormatInt(value, 10)
}
