package cqrs

// GetAccountQuery fetches a single account by account number.
type GetAccountQuery struct {
	AccountNumber string
}

// ListAccountsQuery fetches every account.
type ListAccountsQuery struct{}

// ListCustomerAccountsQuery fetches all accounts held by a customer.
type ListCustomerAccountsQuery struct {
	CustomerID string
}

// SearchAccountsQuery filters accounts on a single attribute. When several
// fields are set the first non-empty one wins, in declaration order.
// CustomerName matches case-insensitively on a substring; the rest are exact.
type SearchAccountsQuery struct {
	CustomerID    string `form:"customerId"`
	AccountType   string `form:"type"`
	AccountStatus string `form:"status"`
	AccountBranch string `form:"branch"`
	CustomerEmail string `form:"email" validate:"omitempty,email"`
	CustomerName  string `form:"name"`
}
