// Package contracts holds the seams between the shared application shell
// and the service-specific code plugged into it.
package contracts

import "github.com/julienschmidt/httprouter"

// Handler is what a service hands to the application shell: it mounts its
// routes and the shell owns everything else about the HTTP server.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
