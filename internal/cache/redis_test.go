package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slabwatch/slabwatch/internal/domain"
)

func TestRedisCache_PutGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Hour)

	res := domain.ResolutionResult{
		Identity: domain.CardIdentity{Year: 2019, SetName: "prizm", CardNumber: "65"},
		Quote:    &domain.PriceQuote{ValueCents: 12000, Source: domain.SourceLocalCatalog},
	}
	data, err := json.Marshal(res)
	require.NoError(t, err)

	mock.ExpectSet("resolution:test", data, time.Hour).SetVal("OK")
	c.Put(context.Background(), "resolution:test", res)

	mock.ExpectGet("resolution:test").SetVal(string(data))
	got, ok := c.Get(context.Background(), "resolution:test")
	require.True(t, ok)
	assert.Equal(t, res, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_MissAndErrorBothReadAsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Hour)

	mock.ExpectGet("absent").RedisNil()
	_, ok := c.Get(context.Background(), "absent")
	assert.False(t, ok)

	mock.ExpectGet("broken").SetErr(errors.New("connection refused"))
	_, ok = c.Get(context.Background(), "broken")
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_CorruptEntryIsAMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewRedisCache(client, time.Hour)

	mock.ExpectGet("garbled").SetVal("{not json")
	_, ok := c.Get(context.Background(), "garbled")
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}
