package classify

import "context"

type contextKey string

const sourceKey contextKey = "classify_source"

// WithSource attaches the input name (usually a file path) to the context
// for run recording.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFrom extracts the input name from the context.
func SourceFrom(ctx context.Context) string {
	if v, ok := ctx.Value(sourceKey).(string); ok {
		return v
	}
	return ""
}
