package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisStoreTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	store     *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	s.store = NewRedisStore(s.client)
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisStoreTestSuite) TestSetAndGet() {
	ctx := context.Background()
	u := User{Username: "ada lovelace", Initials: "AL"}

	s.Require().NoError(s.store.Set(ctx, "abc", u, time.Hour))

	got, err := s.store.Get(ctx, "abc")
	s.Require().NoError(err)
	s.Equal(u, got)
	s.True(s.miniRedis.Exists("session:abc"))
	s.Equal(time.Hour, s.miniRedis.TTL("session:abc"))
}

func (s *RedisStoreTestSuite) TestGet_Missing() {
	_, err := s.store.Get(context.Background(), "nope")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreTestSuite) TestGet_Expired() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "abc", User{Username: "m", Initials: "M"}, time.Minute))

	s.miniRedis.FastForward(2 * time.Minute)

	_, err := s.store.Get(ctx, "abc")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreTestSuite) TestGet_CorruptPayload() {
	s.Require().NoError(s.miniRedis.Set("session:bad", "{not json"))

	_, err := s.store.Get(context.Background(), "bad")
	s.Error(err)
	s.NotErrorIs(err, ErrNotFound)
}

func (s *RedisStoreTestSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Set(ctx, "abc", User{Username: "m", Initials: "M"}, time.Minute))

	s.Require().NoError(s.store.Delete(ctx, "abc"))

	s.False(s.miniRedis.Exists("session:abc"))
}

func (s *RedisStoreTestSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}
