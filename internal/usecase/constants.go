package usecase

import "time"

const (
	// DefaultTransactionTimeout caps how long one unit of work may hold
	// its row locks.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultHistoryLimit and MaxHistoryLimit bound history pagination.
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
