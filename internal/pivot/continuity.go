package pivot

import "context"

type continuityKey struct{}

// WithContinuity attaches the tail of the preceding translation unit to
// ctx. Prompt-building engines include the snippet so narrative flow
// survives segmentation; API engines ignore it.
func WithContinuity(ctx context.Context, tail string) context.Context {
	if tail == "" {
		return ctx
	}
	return context.WithValue(ctx, continuityKey{}, tail)
}

// Continuity returns the continuity snippet attached to ctx, or "".
func Continuity(ctx context.Context) string {
	s, _ := ctx.Value(continuityKey{}).(string)
	return s
}
