package repository

import (
	"context"
	"errors"

	"github.com/eaglebank/customer-account-service/internal/models"
)

// ErrAccountNotFound signals that no account exists under the requested number.
// It is an expected outcome, not a storage fault.
var ErrAccountNotFound = errors.New("account not found")

// AccountStore is keyed persistence for accounts. Implementations must make
// every single-record operation atomic with respect to concurrent callers.
// Finders return an empty, non-nil slice when nothing matches.
type AccountStore interface {
	FindAll(ctx context.Context) ([]models.Account, error)
	// FindByAccountNumber returns ErrAccountNotFound on a miss.
	FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	FindByCustomerID(ctx context.Context, customerID string) ([]models.Account, error)
	FindByType(ctx context.Context, accountType string) ([]models.Account, error)
	FindByStatus(ctx context.Context, status string) ([]models.Account, error)
	FindByBranch(ctx context.Context, branch string) ([]models.Account, error)
	FindByCustomerEmail(ctx context.Context, email string) ([]models.Account, error)
	// FindByCustomerNameContaining matches a case-insensitive substring.
	FindByCustomerNameContaining(ctx context.Context, name string) ([]models.Account, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	// Save inserts or replaces the account keyed by its number and returns
	// the stored record.
	Save(ctx context.Context, account *models.Account) (*models.Account, error)
	// DeleteByAccountNumber is a no-op when the account does not exist.
	DeleteByAccountNumber(ctx context.Context, accountNumber string) error
	Count(ctx context.Context) (int64, error)
}
