package service

import (
	"context"
	"sync"
	"time"

	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

// numPackShards spreads per-pack locks so unrelated packs rarely contend.
const numPackShards = 128

// defaultLockTimeout bounds how long a pack-scoped unit of work may run.
const defaultLockTimeout = 5 * time.Second

// packLocks serializes multi-aggregate operations on one pack within this
// process: writing the review and moving the pack status. Across processes the
// review version check and the one-active-review index still hold.
type packLocks struct {
	shards  [numPackShards]sync.Mutex
	timeout time.Duration
}

func (l *packLocks) run(ctx context.Context, packID id.PackID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeDependency, "review operation aborted: context cancelled")
	}

	timeout := l.timeout
	if timeout == 0 {
		timeout = defaultLockTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := hashPackID(packID.String()) % numPackShards
	l.shards[shard].Lock()
	defer l.shards[shard].Unlock()

	// the wait for the lock may have used up the deadline
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeDependency, "review operation aborted: context cancelled")
	}
	return fn(ctx)
}

// hashPackID is FNV-1a.
func hashPackID(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
