package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root of a router created with app.Route.
	RouterRootPath = ""

	// ForbiddenTemplate renders a route the gate does not allow.
	ForbiddenTemplate = "forbidden"

	// ErrNilACDFatalLogMsg is used if app, cfg or a dependency pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or dependency is nil"
)
