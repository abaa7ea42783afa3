package repository

import (
	"context"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/eaglebank/customer-account-service/internal/models"
	sharedredis "github.com/eaglebank/customer-account-service/internal/redis"
)

const accountViewKeyPrefix = "account:view:"

// CachedAccountRepository puts a Redis read-through cache in front of another
// AccountStore for lookups by account number. The wrapped store stays the
// source of truth: the cache is refreshed only after a successful write and a
// cache failure never fails the call.
type CachedAccountRepository struct {
	AccountStore
	cache *sharedredis.ViewCache[models.Account]
	log   *slog.Logger
}

func NewCachedAccountRepository(inner AccountStore, client goredis.Cmdable, ttl time.Duration, log *slog.Logger) *CachedAccountRepository {
	return &CachedAccountRepository{
		AccountStore: inner,
		cache:        sharedredis.NewViewCache[models.Account](client, accountViewKeyPrefix, ttl, log),
		log:          log,
	}
}

// Source returns the store behind a caching decorator, or store itself. A
// read that races a delete can leave a stale view in the cache until its TTL
// runs out, so read-modify-write paths must look records up here.
func Source(store AccountStore) AccountStore {
	if cached, ok := store.(*CachedAccountRepository); ok {
		return cached.AccountStore
	}
	return store
}

func (r *CachedAccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if account, ok := r.cache.Get(ctx, accountNumber); ok {
		return account, nil
	}

	account, err := r.AccountStore.FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	r.cache.Set(ctx, accountNumber, account)
	return account, nil
}

func (r *CachedAccountRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	saved, err := r.AccountStore.Save(ctx, account)
	if err != nil {
		return nil, err
	}
	r.cache.Set(ctx, saved.AccountNumber, saved)
	return saved, nil
}

func (r *CachedAccountRepository) DeleteByAccountNumber(ctx context.Context, accountNumber string) error {
	if err := r.AccountStore.DeleteByAccountNumber(ctx, accountNumber); err != nil {
		return err
	}
	r.cache.Delete(ctx, accountNumber)
	r.log.DebugContext(ctx, "account view invalidated", "accountNumber", accountNumber)
	return nil
}
