package events

import "time"

// Event types
const (
	AccountCreated        = "account.created"
	AccountUpdated        = "account.updated"
	AccountDeleted        = "account.deleted"
	AccountStatusUpdated  = "account.status_updated"
	AccountBalanceUpdated = "account.balance_updated"
)

// AccountEventsStream is the Redis stream all account lifecycle events go to.
const AccountEventsStream = "account.events"

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type AccountCreatedEvent struct {
	AccountNumber string `json:"accountNumber"`
	CustomerID    string `json:"customerId"`
	AccountType   string `json:"accountType"`
	Status        string `json:"status"`
	Currency      string `json:"currency"`
}

type AccountUpdatedEvent struct {
	AccountNumber string `json:"accountNumber"`
	CustomerID    string `json:"customerId"`
}

type AccountDeletedEvent struct {
	AccountNumber string `json:"accountNumber"`
}

type AccountStatusUpdatedEvent struct {
	AccountNumber  string `json:"accountNumber"`
	CustomerID     string `json:"customerId"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
}

type AccountBalanceUpdatedEvent struct {
	AccountNumber   string `json:"accountNumber"`
	CustomerID      string `json:"customerId"`
	PreviousBalance string `json:"previousBalance"`
	Balance         string `json:"balance"`
}
