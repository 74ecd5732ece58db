package web

// ContextKey keys request-scoped values. A package-local type keeps the
// middleware entries from colliding with context keys of other packages.
type ContextKey string

// ClaimsContextKey carries the caller's authz.Claims from the Auth and
// OptionalAuth middlewares to the handlers / Transporte les claims du
// middleware d'authentification vers les handlers.
const ClaimsContextKey = ContextKey("claims")
