package workflow

import "errors"

var (
	// ErrNegativeCounter is returned when a status transition would drive a
	// progress counter below zero.
	ErrNegativeCounter = errors.New("progress counter can not go negative")

	// ErrUnknownStatus is returned for a status outside the four tracked buckets.
	ErrUnknownStatus = errors.New("unknown work order status")

	// ErrUnknownCenter is returned when a transition names an untracked center.
	ErrUnknownCenter = errors.New("center is not tracked")

	// ErrNoTechnicians is returned when a center has vehicles but no
	// technicians assigned to the campaign.
	ErrNoTechnicians = errors.New("no technicians assigned for center")
)
