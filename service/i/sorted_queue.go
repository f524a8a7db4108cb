package i

import "context"

// SortedQueue is a keyed queue ordered by score, lowest first.
type SortedQueue interface {
	Enqueue(ctx context.Context, queueKey string, score float64, member string) error
	// DequeTops removes and returns up to amount members with the lowest
	// scores. It returns nothing when fewer than amount members are queued.
	DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error)
	Count(ctx context.Context, queueKey string) int64
}
