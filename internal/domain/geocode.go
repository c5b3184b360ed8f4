package domain

import (
	"context"
	"errors"
)

// ErrUnresolved is returned when an address cannot be resolved to
// coordinates (lookup failure or zero results). It never escalates past
// the enrichment pipeline: events keep their absent coordinates.
var ErrUnresolved = errors.New("address unresolved")

// Geocoder is the external address-to-coordinates lookup service.
// Calls are fallible and carry no ordering guarantee.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Coordinates, error)
}

// Resolver is a caching front over a Geocoder. Results (including the
// unresolved outcome) are cached by the exact address string, and
// concurrent calls for the same address are coalesced into one lookup.
type Resolver interface {
	Resolve(ctx context.Context, address string) (Coordinates, error)
}
