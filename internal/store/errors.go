package store

import "errors"

// ErrStorageUnavailable indicates the database could not be opened or
// initialized: bad path, permissions, corruption. Fatal to the whole
// application; there is no degraded mode.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrNotInitialized indicates an operation was invoked on a store that was
// never opened, or was already closed. This is a programming-contract
// violation, not a recoverable runtime condition.
var ErrNotInitialized = errors.New("store not initialized")

// ErrMissingPhone indicates an offer whose phone number contains no digits
// at all. Such an offer cannot key a directory entry, so the combined
// offer+contact save is rejected before anything is written.
var ErrMissingPhone = errors.New("offer phone has no digits")
