package command

import (
	"context"
	"fmt"

	"github.com/eaglebank/customer-account-service/internal/models"
)

func sampleAccounts() []models.Account {
	return []models.Account{
		{
			AccountNumber:          "ACC-000001",
			AccountType:            "SAVINGS",
			AccountStatus:          "ACTIVE",
			AccountBalance:         "5000.00",
			AccountCurrency:        "USD",
			AccountOpeningDate:     "2024-01-15",
			AccountDescription:     "Primary savings account",
			AccountBranch:          "MAIN_BRANCH",
			AccountCustomerID:      "CUST-001",
			AccountCustomerName:    "John Doe",
			AccountCustomerEmail:   "john.doe@email.com",
			AccountCustomerPhone:   "+1-555-123-4567",
			AccountCustomerAddress: "123 Main St",
			AccountCustomerCity:    "New York",
			AccountCustomerState:   "NY",
			AccountCustomerZip:     "10001",
		},
		{
			AccountNumber:          "ACC-000002",
			AccountType:            "CHECKING",
			AccountStatus:          "ACTIVE",
			AccountBalance:         "2500.00",
			AccountCurrency:        "USD",
			AccountOpeningDate:     "2024-02-20",
			AccountDescription:     "Business checking account",
			AccountBranch:          "DOWNTOWN_BRANCH",
			AccountCustomerID:      "CUST-002",
			AccountCustomerName:    "Jane Smith",
			AccountCustomerEmail:   "jane.smith@email.com",
			AccountCustomerPhone:   "+1-555-987-6543",
			AccountCustomerAddress: "456 Oak Ave",
			AccountCustomerCity:    "Los Angeles",
			AccountCustomerState:   "CA",
			AccountCustomerZip:     "90210",
		},
	}
}

// InitializeSampleData seeds two demo accounts into an empty store. A store
// holding any record is left untouched, so running it on every start is safe.
func (s *AccountCommandService) InitializeSampleData(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		s.log.DebugContext(ctx, "store not empty, skipping sample data", "accounts", count)
		return nil
	}

	accounts := sampleAccounts()
	for _, account := range accounts {
		if _, err := s.store.Save(ctx, &account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", account.AccountNumber, err)
		}
	}
	s.log.InfoContext(ctx, "sample accounts seeded", "accounts", len(accounts))
	return nil
}
