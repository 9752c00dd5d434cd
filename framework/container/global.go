package container

import "sync"

var (
	globalMu sync.Mutex
	global   *Container
)

// Global returns the process-wide container, creating it on first use.
//
//	// Laravel: Container::getInstance()
func Global() *Container {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = New()
	}
	return global
}

// SetGlobal replaces the process-wide container. Passing nil installs a
// fresh one.
//
//	// Laravel: Container::setInstance($container)
func SetGlobal(c *Container) {
	if c == nil {
		c = New()
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	global = c
}
