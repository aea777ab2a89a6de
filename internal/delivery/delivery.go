// Package delivery defines the transports that expose the usecases.
package delivery

import "context"

// Delivery is a server started by the application lifecycle.
type Delivery interface {
	// Serve blocks until the server stops. A graceful shutdown returns nil.
	Serve(ctx context.Context) error
}
