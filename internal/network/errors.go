package network

import "errors"

var (
	// ErrDuplicateName is returned when two components share a name.
	ErrDuplicateName = errors.New("network: duplicate component name")

	// ErrUnknownPin is returned when a connection names a pin that no
	// registered component declares.
	ErrUnknownPin = errors.New("network: unknown pin reference")

	// ErrDomainMismatch is returned when a connection would merge pins
	// from different physical domains.
	ErrDomainMismatch = errors.New("network: connected pins span different domains")

	// ErrEmptyNetwork is returned when flattening a network with no
	// components.
	ErrEmptyNetwork = errors.New("network: network has no components")

	// ErrAllGrounded is returned when every junction is tied to the
	// reference, leaving nothing to solve for.
	ErrAllGrounded = errors.New("network: every junction is grounded")

	// ErrParameterBounds is returned by component validation when a
	// physical parameter lies outside its admissible range.
	ErrParameterBounds = errors.New("network: parameter out of valid bounds")
)
