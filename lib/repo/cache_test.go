package repo

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap/zaptest"
)

func TestCachedRepoWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	testRepository(t, NewCachedRepo(NewMemoryRepo(), client, time.Minute, zaptest.NewLogger(t)))
}
