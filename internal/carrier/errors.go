package carrier

import (
	"errors"
)

var (
	// ErrClientNotInitialized is returned when the carrier client is not initialized.
	ErrClientNotInitialized = errors.New("carrier client not initialized")
	// ErrOrderNotFound is returned when the carrier does not know the order code.
	ErrOrderNotFound = errors.New("carrier order not found")
	// ErrCarrierRejected is returned when the carrier answered but refused the request.
	ErrCarrierRejected = errors.New("carrier rejected the request")
)
