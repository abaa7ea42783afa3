package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eaglebank/customer-account-service/internal/cqrs"
	"github.com/eaglebank/customer-account-service/internal/events"
	"github.com/eaglebank/customer-account-service/internal/logger"
	"github.com/eaglebank/customer-account-service/internal/models"
	"github.com/eaglebank/customer-account-service/internal/repository"
)

// ---- fakes ----

type publishedEvent struct {
	stream    string
	eventType string
	data      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{stream: stream, eventType: eventType, data: data})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []string{}
	for _, e := range p.events {
		out = append(out, e.eventType)
	}
	return out
}

// brokenStore fails every call with a storage fault.
type brokenStore struct {
	repository.AccountStore
	err error
}

func (s brokenStore) Count(context.Context) (int64, error) { return 0, s.err }
func (s brokenStore) Save(context.Context, *models.Account) (*models.Account, error) {
	return nil, s.err
}
func (s brokenStore) FindByAccountNumber(context.Context, string) (*models.Account, error) {
	return nil, s.err
}
func (s brokenStore) ExistsByAccountNumber(context.Context, string) (bool, error) {
	return false, s.err
}

// ---- helpers ----

var testNow = time.Date(2025, time.March, 9, 14, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) repository.AccountStore {
	t.Helper()
	ctx := context.Background()
	db, err := repository.Open(ctx, "sqlite", fmt.Sprintf("file:cmd_%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.EnsureSchema(ctx, db))
	return repository.NewAccountRepository(db, "sqlite")
}

func newTestService(t *testing.T) (*AccountCommandService, repository.AccountStore, *recordingPublisher) {
	t.Helper()
	store := newTestStore(t)
	pub := &recordingPublisher{}
	svc := NewAccountCommandService(store, pub, clockwork.NewFakeClockAt(testNow), logger.Discard())
	return svc, store, pub
}

func newAccountInput() models.Account {
	return models.Account{
		AccountType:         "SAVINGS",
		AccountBalance:      "100.00",
		AccountCustomerID:   "CUST-010",
		AccountCustomerName: "Ada Lovelace",
	}
}

// ---- tests ----

func TestCreateAccountDefaults(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)

	created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{Account: newAccountInput()})
	require.NoError(t, err)

	assert.Equal(t, "ACC-000001", created.AccountNumber)
	assert.Regexp(t, `^ACC-\d{6}$`, created.AccountNumber)
	assert.Equal(t, "ACTIVE", created.AccountStatus)
	assert.Equal(t, "USD", created.AccountCurrency)
	assert.Equal(t, "2025-03-09", created.AccountOpeningDate)
	assert.Equal(t, "100.00", created.AccountBalance)

	stored, err := store.FindByAccountNumber(ctx, created.AccountNumber)
	require.NoError(t, err)
	assert.Equal(t, *created, *stored)

	assert.Equal(t, []string{events.AccountCreated}, pub.types())
	assert.Equal(t, events.AccountEventsStream, pub.events[0].stream)
}

func TestCreateAccountPreservesSuppliedValues(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	in := newAccountInput()
	in.AccountNumber = "CUSTOM-1"
	in.AccountStatus = "SUSPENDED"
	in.AccountCurrency = "EUR"
	in.AccountOpeningDate = "2020-12-31"

	created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{Account: in})
	require.NoError(t, err)
	assert.Equal(t, in, *created)
}

func TestCreateAccountGeneratesSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 1; i <= 3; i++ {
		created, err := svc.CreateAccount(ctx, cqrs.CreateAccountCommand{Account: newAccountInput()})
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("ACC-%06d", i), created.AccountNumber)
		assert.False(t, seen[created.AccountNumber], "duplicate %s", created.AccountNumber)
		seen[created.AccountNumber] = true
	}
}

func TestCreateAccountStorageFault(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewAccountCommandService(brokenStore{err: boom}, &recordingPublisher{}, clockwork.NewFakeClockAt(testNow), logger.Discard())

	_, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Account: newAccountInput()})
	assert.ErrorIs(t, err, boom)

	in := newAccountInput()
	in.AccountNumber = "ACC-000123"
	_, err = svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Account: in})
	assert.ErrorIs(t, err, boom)
}

func TestCreateAccountSurvivesPublishFailure(t *testing.T) {
	store := newTestStore(t)
	pub := &recordingPublisher{err: errors.New("redis down")}
	svc := NewAccountCommandService(store, pub, clockwork.NewFakeClockAt(testNow), logger.Discard())

	created, err := svc.CreateAccount(context.Background(), cqrs.CreateAccountCommand{Account: newAccountInput()})
	require.NoError(t, err)
	assert.Equal(t, "ACC-000001", created.AccountNumber)
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)
	require.NoError(t, svc.InitializeSampleData(ctx))

	t.Run("overwrites every field except the number and a blank opening date", func(t *testing.T) {
		in := models.Account{
			AccountNumber:       "ACC-999999",
			AccountType:         "CHECKING",
			AccountStatus:       "INACTIVE",
			AccountBalance:      "1.00",
			AccountCurrency:     "GBP",
			AccountCustomerID:   "CUST-001",
			AccountCustomerName: "John Q. Doe",
		}
		updated, err := svc.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountNumber: "ACC-000001", Account: in})
		require.NoError(t, err)

		want := in
		want.AccountNumber = "ACC-000001"
		want.AccountOpeningDate = "2024-01-15"
		assert.Equal(t, want, *updated)
		// blank input wipes the previous values
		assert.Empty(t, updated.AccountDescription)
		assert.Empty(t, updated.AccountCustomerEmail)

		_, err = store.FindByAccountNumber(ctx, "ACC-999999")
		assert.ErrorIs(t, err, repository.ErrAccountNotFound)
		assert.Contains(t, pub.types(), events.AccountUpdated)
	})

	t.Run("supplied opening date replaces the stored one", func(t *testing.T) {
		in := newAccountInput()
		in.AccountOpeningDate = "2019-07-04"
		updated, err := svc.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountNumber: "ACC-000002", Account: in})
		require.NoError(t, err)
		assert.Equal(t, "2019-07-04", updated.AccountOpeningDate)
	})

	t.Run("blank opening date keeps the stored one", func(t *testing.T) {
		updated, err := svc.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountNumber: "ACC-000002", Account: newAccountInput()})
		require.NoError(t, err)
		assert.Equal(t, "2019-07-04", updated.AccountOpeningDate)
	})

	t.Run("missing account is not created", func(t *testing.T) {
		_, err := svc.UpdateAccount(ctx, cqrs.UpdateAccountCommand{AccountNumber: "ACC-000404", Account: newAccountInput()})
		assert.ErrorIs(t, err, repository.ErrAccountNotFound)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})
}

func TestUpdateAccountStatus(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)
	require.NoError(t, svc.InitializeSampleData(ctx))

	before, err := store.FindByAccountNumber(ctx, "ACC-000001")
	require.NoError(t, err)

	updated, err := svc.UpdateAccountStatus(ctx, cqrs.UpdateAccountStatusCommand{AccountNumber: "ACC-000001", Status: "SUSPENDED"})
	require.NoError(t, err)

	want := *before
	want.AccountStatus = "SUSPENDED"
	assert.Equal(t, want, *updated)

	require.Len(t, pub.events, 1)
	evt, ok := pub.events[0].data.(events.AccountStatusUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "ACTIVE", evt.PreviousStatus)
	assert.Equal(t, "SUSPENDED", evt.Status)

	_, err = svc.UpdateAccountStatus(ctx, cqrs.UpdateAccountStatusCommand{AccountNumber: "ACC-000404", Status: "SUSPENDED"})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestUpdateAccountBalance(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)
	require.NoError(t, svc.InitializeSampleData(ctx))

	before, err := store.FindByAccountNumber(ctx, "ACC-000002")
	require.NoError(t, err)

	// not parsed: any string is stored as given
	updated, err := svc.UpdateAccountBalance(ctx, cqrs.UpdateAccountBalanceCommand{AccountNumber: "ACC-000002", Balance: "1,234.50"})
	require.NoError(t, err)

	want := *before
	want.AccountBalance = "1,234.50"
	assert.Equal(t, want, *updated)

	_, err = svc.UpdateAccountBalance(ctx, cqrs.UpdateAccountBalanceCommand{AccountNumber: "ACC-000404", Balance: "0"})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := newTestService(t)
	require.NoError(t, svc.InitializeSampleData(ctx))

	deleted, err := svc.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountNumber: "ACC-000001"})
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.FindByAccountNumber(ctx, "ACC-000001")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	deleted, err = svc.DeleteAccount(ctx, cqrs.DeleteAccountCommand{AccountNumber: "ACC-000001"})
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.Equal(t, []string{events.AccountDeleted}, pub.types())
}

func TestDeleteAccountStorageFault(t *testing.T) {
	boom := errors.New("disk full")
	svc := NewAccountCommandService(brokenStore{err: boom}, &recordingPublisher{}, clockwork.NewFakeClock(), logger.Discard())

	deleted, err := svc.DeleteAccount(context.Background(), cqrs.DeleteAccountCommand{AccountNumber: "ACC-000001"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, deleted)
}
