// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional: the core packages never depend on a specific
// backend. Consumers register hooks at startup and receive events about
// dumps, image exports and served HTTP requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDumpHooks(&myDumpHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Dump().OnDumpStart(ctx, "schedule")
//	// ... render ...
//	observability.Dump().OnDumpComplete(ctx, "schedule", len(dot), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Dump Hooks
// =============================================================================

// DumpHooks receives events from graph dumps. kind is the graph kind:
// "schedule", "data", "events" or "render".
type DumpHooks interface {
	OnDumpStart(ctx context.Context, kind string)
	OnDumpComplete(ctx context.Context, kind string, size int, duration time.Duration, err error)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from DOT to image conversion.
type ExportHooks interface {
	// OnExportStart records the start of a conversion.
	OnExportStart(ctx context.Context, format string)

	// OnExportComplete records a finished conversion and its output size.
	OnExportComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDumpHooks is a no-op implementation of DumpHooks.
type NoopDumpHooks struct{}

func (NoopDumpHooks) OnDumpStart(context.Context, string)                               {}
func (NoopDumpHooks) OnDumpComplete(context.Context, string, int, time.Duration, error) {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string)                               {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	dumpHooks   DumpHooks   = NoopDumpHooks{}
	exportHooks ExportHooks = NoopExportHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetDumpHooks registers custom dump hooks.
// This should be called once at application startup before any dumps.
func SetDumpHooks(h DumpHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		dumpHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Dump returns the registered dump hooks.
func Dump() DumpHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return dumpHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	dumpHooks = NoopDumpHooks{}
	exportHooks = NoopExportHooks{}
	httpHooks = NoopHTTPHooks{}
}
