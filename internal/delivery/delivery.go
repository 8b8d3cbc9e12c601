// Package delivery defines the contract every transport entry point
// implements, so the process entry point can start them uniformly.
package delivery

import "context"

// Delivery is a transport server that blocks in Serve until it stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
