package logging

import "context"

type attrsKey struct{}

// WithAttrs returns a context whose key-value pairs are added to every line
// a SlogLogger writes with it. Pairs accumulate across calls.
func WithAttrs(ctx context.Context, args ...any) context.Context {
	if len(args) == 0 {
		return ctx
	}
	prev := Attrs(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, attrsKey{}, merged)
}

// Attrs returns the pairs stored by WithAttrs.
func Attrs(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	a, _ := ctx.Value(attrsKey{}).([]any)
	return a
}
