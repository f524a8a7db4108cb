package memory

import (
	"context"
	"sort"
	"sync"
)

type entry struct {
	score  float64
	member string
}

// SortedQueue is a process-local sorted queue. Members are unique per key:
// enqueueing an existing member updates its score.
type SortedQueue struct {
	queues map[string][]entry
	sync.Mutex
}

// NewSortedQueue creates an empty SortedQueue.
func NewSortedQueue() *SortedQueue {
	return &SortedQueue{queues: make(map[string][]entry)}
}

// Enqueue adds member under queueKey with the given score.
func (q *SortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.Lock()
	defer q.Unlock()

	entries := q.queues[queueKey]
	for idx, e := range entries {
		if e.member == member {
			entries = append(entries[:idx], entries[idx+1:]...)
			break
		}
	}
	entries = append(entries, entry{score: score, member: member})
	// Ties keep insertion order.
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].score < entries[b].score })
	q.queues[queueKey] = entries
	return nil
}

// DequeTops removes and returns the amount lowest scored members, or nothing
// when fewer are queued.
func (q *SortedQueue) DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.Lock()
	defer q.Unlock()

	entries := q.queues[queueKey]
	if amount <= 0 || int64(len(entries)) < amount {
		return nil, nil
	}
	members := make([]string, 0, amount)
	for _, e := range entries[:amount] {
		members = append(members, e.member)
	}
	q.queues[queueKey] = entries[amount:]
	return members, nil
}

// Count returns the number of members under queueKey.
func (q *SortedQueue) Count(ctx context.Context, queueKey string) int64 {
	q.Lock()
	defer q.Unlock()
	return int64(len(q.queues[queueKey]))
}
