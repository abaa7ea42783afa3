package cqrs

import "github.com/eaglebank/customer-account-service/internal/models"

type CreateAccountCommand struct {
	Account models.Account
}

// UpdateAccountCommand replaces every field of the account identified by
// AccountNumber with the values in Account. Account.AccountNumber is ignored.
type UpdateAccountCommand struct {
	AccountNumber string
	Account       models.Account
}

type UpdateAccountStatusCommand struct {
	AccountNumber string
	Status        string
}

type UpdateAccountBalanceCommand struct {
	AccountNumber string
	Balance       string
}

type DeleteAccountCommand struct {
	AccountNumber string
}
