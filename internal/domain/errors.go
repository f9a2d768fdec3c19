package domain

import "errors"

var (
	// ErrSwapNotFound is returned when a collect references a swap id missing from the swaps bigmap
	ErrSwapNotFound = errors.New("swap not found")

	// ErrRoyaltyNotFound is returned when a swapped token has no entry in the royalties bigmap
	ErrRoyaltyNotFound = errors.New("royalty not found")

	// ErrUnknownTransactionType is returned when a transaction kind has no ingestion handler
	ErrUnknownTransactionType = errors.New("unknown transaction type")

	// ErrInvalidRecord is returned when a raw record lacks a required field
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnorderedBatch is returned when a transaction batch is not in chronological order
	ErrUnorderedBatch = errors.New("transaction batch is not chronologically ordered")

	// ErrZeroComponentSum is returned when no user has a non-zero metric for an allocation component
	ErrZeroComponentSum = errors.New("allocation component sums to zero")

	// ErrInvalidComponentSum is returned when an allocation component sums to NaN or infinity
	ErrInvalidComponentSum = errors.New("allocation component sum is not finite")

	// ErrInvalidWeights is returned when allocation weights do not sum to one
	ErrInvalidWeights = errors.New("allocation weights must sum to one")

	// ErrNegativeActivityPool is returned when the treasury and existing balances exceed the total amount
	ErrNegativeActivityPool = errors.New("activity pool is negative")

	// ErrConnectionsNotCompressed is returned when the graph is built from address-keyed connections
	ErrConnectionsNotCompressed = errors.New("connections are not compressed")

	// ErrConnectionsCompressed is returned when transactions are ingested after the connections were compressed
	ErrConnectionsCompressed = errors.New("connections are already compressed")

	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrRunNotFound is returned when no analysis run has been persisted
	ErrRunNotFound = errors.New("run not found")
)
