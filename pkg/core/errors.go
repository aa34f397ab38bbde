package core

import "errors"

var (
	// Registration errors. These are fatal at start-up.
	ErrDuplicateRoute = errors.New("core: duplicate route")
	ErrNoMethods      = errors.New("core: route has no methods")
	ErrNilHandler     = errors.New("core: route handler is nil")
	ErrRegistryFrozen = errors.New("core: registry is frozen")

	// Contract violations by the integrator or the transport.
	ErrMissingEnvKey       = errors.New("core: missing environment key")
	ErrNilHook             = errors.New("core: hook is nil")
	ErrUnknownStatus       = errors.New("core: unknown status code")
	ErrUnsupportedBodyType = errors.New("core: unsupported body type")
	ErrDispatcherFrozen    = errors.New("core: dispatcher is frozen")

	// Request-flow outcomes; the dispatcher turns these into responses.
	ErrRouteNotFound    = errors.New("core: route not found")
	ErrMethodNotAllowed = errors.New("core: method not allowed")

	// Template loading.
	ErrEmptyTemplateName  = errors.New("core: template name is empty")
	ErrTemplateNotFound   = errors.New("core: template not found")
	ErrTemplateOutsideDir = errors.New("core: template name leaves the template dir")
)
