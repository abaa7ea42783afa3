package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherPublish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	p := NewPublisher(client, clockwork.NewFakeClockAt(fixed))

	err := p.Publish(context.Background(), AccountEventsStream, AccountCreated, AccountCreatedEvent{
		AccountNumber: "ACC-000003",
		CustomerID:    "CUST-003",
		AccountType:   "SAVINGS",
		Status:        "ACTIVE",
		Currency:      "USD",
	})
	require.NoError(t, err)

	entries, err := mr.Stream(AccountEventsStream)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "event", entries[0].Values[0])

	var got struct {
		Type      string              `json:"type"`
		Timestamp time.Time           `json:"timestamp"`
		Data      AccountCreatedEvent `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values[1]), &got))
	assert.Equal(t, AccountCreated, got.Type)
	assert.True(t, fixed.Equal(got.Timestamp))
	assert.Equal(t, "ACC-000003", got.Data.AccountNumber)
	assert.Equal(t, "CUST-003", got.Data.CustomerID)
}

func TestPublisherPublishFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err := NewPublisher(client, clockwork.NewRealClock()).Publish(context.Background(), AccountEventsStream, AccountDeleted, AccountDeletedEvent{AccountNumber: "ACC-000001"})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), AccountEventsStream, AccountDeleted, nil))
}
