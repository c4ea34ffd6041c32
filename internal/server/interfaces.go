package server

// Server is the lifecycle handle main holds on to.
type Server interface {
	// RunServer serves until a stop signal or a listener failure and
	// only returns once in-flight requests have drained.
	RunServer()

	// Shutdown stops accepting connections and drains what is running.
	Shutdown()
}
