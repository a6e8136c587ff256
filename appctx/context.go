package appctx

import "context"

// Context key for the inbound event trace id
type contextKey string

const EventIDContextKey contextKey = "event_id"

// SetEventID adds the per-request event trace id to the context
func SetEventID(ctx context.Context, eventID string) context.Context {
	return context.WithValue(ctx, EventIDContextKey, eventID)
}

// GetEventID extracts the event trace id from the context
func GetEventID(ctx context.Context) (string, bool) {
	eventID, ok := ctx.Value(EventIDContextKey).(string)
	return eventID, ok
}
