package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/vivasst/risk_survey/pkg/lock"
)

var migrationLock *lock.DistributedLock

// InitMigrationLock sets the distributed lock guarding the legacy migration
// endpoint. When set, concurrent migration requests across instances
// serialize through Redis.
func InitMigrationLock(l *lock.DistributedLock) {
	migrationLock = l
}

// MigrationLockMw returns a middleware slice that acquires the migration
// lock. If the lock is not initialized (Redis disabled), returns nil so
// requests pass through without any locking overhead.
func MigrationLockMw() []app.HandlerFunc {
	if migrationLock == nil {
		return nil
	}
	return []app.HandlerFunc{migrationLockHandler()}
}

func migrationLockHandler() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		lockID, err := migrationLock.Acquire(ctx)
		if err != nil {
			log.Printf("[MigrationLock] failed to acquire lock: %v", err)
			c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"code": http.StatusServiceUnavailable,
				"msg":  "migration already running, please retry later",
			})
			c.Abort()
			return
		}
		defer func() {
			if releaseErr := migrationLock.Release(ctx, lockID); releaseErr != nil {
				log.Printf("[MigrationLock] failed to release lock: %v", releaseErr)
			}
		}()
		c.Next(ctx)
	}
}
