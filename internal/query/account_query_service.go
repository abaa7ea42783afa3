package query

import (
	"context"

	"github.com/eaglebank/customer-account-service/internal/cqrs"
	"github.com/eaglebank/customer-account-service/internal/models"
	"github.com/eaglebank/customer-account-service/internal/repository"
)

type AccountQueryService struct {
	store repository.AccountStore
}

func NewAccountQueryService(store repository.AccountStore) *AccountQueryService {
	return &AccountQueryService{store: store}
}

func (s *AccountQueryService) ListAccounts(ctx context.Context, _ cqrs.ListAccountsQuery) ([]models.Account, error) {
	return s.store.FindAll(ctx)
}

// GetAccount returns repository.ErrAccountNotFound when nothing is stored
// under the number.
func (s *AccountQueryService) GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.Account, error) {
	return s.store.FindByAccountNumber(ctx, q.AccountNumber)
}

// ListCustomerAccounts returns an empty slice for a customer with no accounts.
func (s *AccountQueryService) ListCustomerAccounts(ctx context.Context, q cqrs.ListCustomerAccountsQuery) ([]models.Account, error) {
	return s.store.FindByCustomerID(ctx, q.CustomerID)
}

// SearchAccounts applies only the first non-empty filter, checked in the order
// customer id, type, status, branch, email, name. No filter lists everything.
func (s *AccountQueryService) SearchAccounts(ctx context.Context, q cqrs.SearchAccountsQuery) ([]models.Account, error) {
	switch {
	case q.CustomerID != "":
		return s.store.FindByCustomerID(ctx, q.CustomerID)
	case q.AccountType != "":
		return s.store.FindByType(ctx, q.AccountType)
	case q.AccountStatus != "":
		return s.store.FindByStatus(ctx, q.AccountStatus)
	case q.AccountBranch != "":
		return s.store.FindByBranch(ctx, q.AccountBranch)
	case q.CustomerEmail != "":
		return s.store.FindByCustomerEmail(ctx, q.CustomerEmail)
	case q.CustomerName != "":
		return s.store.FindByCustomerNameContaining(ctx, q.CustomerName)
	default:
		return s.store.FindAll(ctx)
	}
}

func (s *AccountQueryService) AccountExists(ctx context.Context, accountNumber string) (bool, error) {
	return s.store.ExistsByAccountNumber(ctx, accountNumber)
}
