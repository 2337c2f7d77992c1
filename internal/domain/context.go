package domain

import "context"

type principalKey struct{}

type accessKey struct{}

// ContextPrincipal carries the authenticated identity through request context.
type ContextPrincipal struct {
	ID    string
	Email string
	Type  string // "user" or "oidc"
}

// WithPrincipal stores a ContextPrincipal in the context.
func WithPrincipal(ctx context.Context, p ContextPrincipal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the ContextPrincipal from the context.
func PrincipalFromContext(ctx context.Context) (ContextPrincipal, bool) {
	p, ok := ctx.Value(principalKey{}).(ContextPrincipal)
	return p, ok
}

// WithAccess stores the resolved access snapshot for the current principal.
func WithAccess(ctx context.Context, a Access) context.Context {
	return context.WithValue(ctx, accessKey{}, a)
}

// AccessFromContext returns the resolved access snapshot, or NoAccess when
// the request carries none.
func AccessFromContext(ctx context.Context) Access {
	a, ok := ctx.Value(accessKey{}).(Access)
	if !ok {
		return NoAccess()
	}
	return a
}
