package repo

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/holmes89/quizbank/lib/quiz"
)

func newPool(t *testing.T) *dockertest.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = 90 * time.Second
	return pool
}

func run(t *testing.T, pool *dockertest.Pool, opts *dockertest.RunOptions) *dockertest.Resource {
	t.Helper()
	resource, err := pool.RunWithOptions(opts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(300)
	return resource
}

func TestQuestionRepoPostgres(t *testing.T) {
	pool := newPool(t)
	resource := run(t, pool, &dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=quizbank",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=quizbank",
		},
	})
	dsn := fmt.Sprintf("postgres://quizbank:secret@%s/quizbank?sslmode=disable", resource.GetHostPort("5432/tcp"))
	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	}))

	for _, driver := range []Driver{DriverPostgres, DriverPgx} {
		t.Run(string(driver), func(t *testing.T) {
			conn, err := NewDatabase(driver, dsn, zaptest.NewLogger(t))
			require.NoError(t, err)
			defer conn.Close()

			_, err = conn.DB().Exec("TRUNCATE questions")
			require.NoError(t, err)
			testRepository(t, &QuestionRepo{Conn: conn})
		})
	}
}

func TestCachedRepoRedis(t *testing.T) {
	pool := newPool(t)
	resource := run(t, pool, &dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7-alpine",
	})
	client := redis.NewClient(&redis.Options{Addr: resource.GetHostPort("6379/tcp")})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}))

	t.Run("contract", func(t *testing.T) {
		require.NoError(t, client.FlushDB(context.Background()).Err())
		testRepository(t, NewCachedRepo(NewMemoryRepo(), client, time.Minute, zaptest.NewLogger(t)))
	})

	t.Run("writes keep the cache fresh", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, client.FlushDB(ctx).Err())
		inner := NewMemoryRepo()
		r := NewCachedRepo(inner, client, time.Minute, zaptest.NewLogger(t))

		rec := &quiz.Record{Question: "2+2?", Answer: "4"}
		require.NoError(t, r.Create(ctx, rec))
		n, err := client.Exists(ctx, cacheKey(rec.ID)).Result()
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		require.NoError(t, r.Update(ctx, rec.ID, &quiz.Record{Question: "2+3?", Answer: "5"}))
		n, err = client.Exists(ctx, cacheKey(rec.ID)).Result()
		require.NoError(t, err)
		assert.Zero(t, n)

		got, err := r.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, "5", got.Answer)
		ttl, err := client.TTL(ctx, cacheKey(rec.ID)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))

		require.NoError(t, r.Delete(ctx, rec.ID))
		_, err = r.Get(ctx, rec.ID)
		assert.ErrorIs(t, err, quiz.ErrNotFound)
	})

	t.Run("corrupt entries fall through", func(t *testing.T) {
		ctx := context.Background()
		require.NoError(t, client.FlushDB(ctx).Err())
		r := NewCachedRepo(NewMemoryRepo(), client, time.Minute, zaptest.NewLogger(t))
		rec := &quiz.Record{Question: "2+2?", Answer: "4"}
		require.NoError(t, r.Create(ctx, rec))
		require.NoError(t, client.Set(ctx, cacheKey(rec.ID), "not json", time.Minute).Err())

		got, err := r.Get(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})
}
