// Package auth provides the authentication middleware of the portal.
//
// The middleware runs after the portal session is mounted and handles:
//   - redirecting requests without a principal to the login page
//   - letting the login and password recovery pages pass unauthenticated
//   - sending signed in users away from the login page
//   - public paths such as /logout
//
// Usage:
//
//	app.Use(portal.New(portalCfg), auth.New(auth.Config{Routes: routes, DefaultRoute: "/dashboard"}))
//
// Route guards are a convenience for the user; the backend authorizes every call.
package auth
