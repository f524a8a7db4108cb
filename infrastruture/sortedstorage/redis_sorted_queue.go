package sortedstorage

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const dispatchLockSuffix = ":dispatch_lock"

// RedisSortedQueue is a sorted queue backed by a Redis sorted set. Dequeues
// are serialized across processes with a redsync mutex per queue key.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedQueue creates a RedisSortedQueue. A positive ttlSeconds sets
// an expiry on queue keys that have none; zero leaves keys persistent.
func NewRedisSortedQueue(client *redis.Client, ttlSeconds int) *RedisSortedQueue {
	pool := goredis.NewPool(client)
	return &RedisSortedQueue{
		client: client,
		locker: redsync.New(pool),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Enqueue adds member to the queue with the given score.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return err
	}

	if rsq.ttl <= 0 {
		return nil
	}
	// -1 means the key exists without an expiry
	ttl, err := rsq.client.TTL(ctx, queueKey).Result()
	if err == nil && ttl == -1 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}
	return nil
}

// DequeTops removes and returns the amount lowest scored members, or nothing
// when fewer are queued.
func (rsq *RedisSortedQueue) DequeTops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	mutex := rsq.locker.NewMutex(queueKey + dispatchLockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(context.Background())
	}()

	size, err := rsq.client.ZCard(ctx, queueKey).Result()
	if err != nil {
		return nil, err
	}
	if size < amount {
		return nil, nil
	}

	popped, err := rsq.client.ZPopMin(ctx, queueKey, amount).Result()
	if err != nil {
		return nil, err
	}
	members := make([]string, 0, len(popped))
	for _, z := range popped {
		if member, ok := z.Member.(string); ok {
			members = append(members, member)
		}
	}
	return members, nil
}

// Count returns the number of queued members.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
