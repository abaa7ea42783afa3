package command

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/eaglebank/customer-account-service/internal/cqrs"
	"github.com/eaglebank/customer-account-service/internal/events"
	"github.com/eaglebank/customer-account-service/internal/models"
	"github.com/eaglebank/customer-account-service/internal/repository"
	"github.com/eaglebank/customer-account-service/internal/utils"
)

// EventPublisher is satisfied by events.Publisher and events.NopPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// AccountCommandService applies the account lifecycle rules on top of the store
// and announces every successful change on the account event stream.
type AccountCommandService struct {
	store     repository.AccountStore
	source    repository.AccountStore
	publisher EventPublisher
	clock     clockwork.Clock
	log       *slog.Logger
}

func NewAccountCommandService(
	store repository.AccountStore,
	publisher EventPublisher,
	clock clockwork.Clock,
	log *slog.Logger,
) *AccountCommandService {
	return &AccountCommandService{
		store:     store,
		source:    repository.Source(store),
		publisher: publisher,
		clock:     clock,
		log:       log,
	}
}

// CreateAccount fills in a missing number, status, opening date and currency,
// then saves the account.
//
// The generated number is ACC- plus the current record count + 1. Two
// concurrent creates can read the same count and collide; callers that need
// guaranteed uniqueness should supply their own number.
func (s *AccountCommandService) CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error) {
	account := cmd.Account

	if account.AccountNumber == "" {
		count, err := s.store.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate account number: %w", err)
		}
		account.AccountNumber = utils.FormatAccountNumber(count + 1)
	}
	if account.AccountStatus == "" {
		account.AccountStatus = models.DefaultAccountStatus
	}
	if account.AccountOpeningDate == "" {
		account.AccountOpeningDate = utils.ISODate(s.clock.Now())
	}
	if account.AccountCurrency == "" {
		account.AccountCurrency = models.DefaultAccountCurrency
	}

	saved, err := s.store.Save(ctx, &account)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "account created", "accountNumber", saved.AccountNumber, "customerId", saved.AccountCustomerID)
	s.publish(ctx, events.AccountCreated, events.AccountCreatedEvent{
		AccountNumber: saved.AccountNumber,
		CustomerID:    saved.AccountCustomerID,
		AccountType:   saved.AccountType,
		Status:        saved.AccountStatus,
		Currency:      saved.AccountCurrency,
	})
	return saved, nil
}

// UpdateAccount overwrites every field but the account number, including with
// empty values. A blank opening date keeps the stored one. It never creates: a
// missing account yields ErrAccountNotFound.
func (s *AccountCommandService) UpdateAccount(ctx context.Context, cmd cqrs.UpdateAccountCommand) (*models.Account, error) {
	existing, err := s.source.FindByAccountNumber(ctx, cmd.AccountNumber)
	if err != nil {
		return nil, err
	}

	updated := cmd.Account
	updated.AccountNumber = existing.AccountNumber
	if updated.AccountOpeningDate == "" {
		updated.AccountOpeningDate = existing.AccountOpeningDate
	}

	saved, err := s.store.Save(ctx, &updated)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "account updated", "accountNumber", saved.AccountNumber)
	s.publish(ctx, events.AccountUpdated, events.AccountUpdatedEvent{
		AccountNumber: saved.AccountNumber,
		CustomerID:    saved.AccountCustomerID,
	})
	return saved, nil
}

// UpdateAccountStatus stores status verbatim; any value is accepted.
func (s *AccountCommandService) UpdateAccountStatus(ctx context.Context, cmd cqrs.UpdateAccountStatusCommand) (*models.Account, error) {
	account, err := s.source.FindByAccountNumber(ctx, cmd.AccountNumber)
	if err != nil {
		return nil, err
	}

	previous := account.AccountStatus
	account.AccountStatus = cmd.Status

	saved, err := s.store.Save(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "account status updated", "accountNumber", saved.AccountNumber, "from", previous, "to", saved.AccountStatus)
	s.publish(ctx, events.AccountStatusUpdated, events.AccountStatusUpdatedEvent{
		AccountNumber:  saved.AccountNumber,
		CustomerID:     saved.AccountCustomerID,
		PreviousStatus: previous,
		Status:         saved.AccountStatus,
	})
	return saved, nil
}

// UpdateAccountBalance stores balance verbatim; it is not parsed as a number.
func (s *AccountCommandService) UpdateAccountBalance(ctx context.Context, cmd cqrs.UpdateAccountBalanceCommand) (*models.Account, error) {
	account, err := s.source.FindByAccountNumber(ctx, cmd.AccountNumber)
	if err != nil {
		return nil, err
	}

	previous := account.AccountBalance
	account.AccountBalance = cmd.Balance

	saved, err := s.store.Save(ctx, account)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "account balance updated", "accountNumber", saved.AccountNumber, "from", previous, "to", saved.AccountBalance)
	s.publish(ctx, events.AccountBalanceUpdated, events.AccountBalanceUpdatedEvent{
		AccountNumber:   saved.AccountNumber,
		CustomerID:      saved.AccountCustomerID,
		PreviousBalance: previous,
		Balance:         saved.AccountBalance,
	})
	return saved, nil
}

// DeleteAccount reports false, without error, when the account does not exist.
func (s *AccountCommandService) DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) (bool, error) {
	exists, err := s.source.ExistsByAccountNumber(ctx, cmd.AccountNumber)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := s.store.DeleteByAccountNumber(ctx, cmd.AccountNumber); err != nil {
		return false, err
	}

	s.log.InfoContext(ctx, "account deleted", "accountNumber", cmd.AccountNumber)
	s.publish(ctx, events.AccountDeleted, events.AccountDeletedEvent{
		AccountNumber: cmd.AccountNumber,
	})
	return true, nil
}

// publish logs rather than returns failures: the change is already committed.
func (s *AccountCommandService) publish(ctx context.Context, eventType string, data any) {
	if err := s.publisher.Publish(ctx, events.AccountEventsStream, eventType, data); err != nil {
		s.log.ErrorContext(ctx, "failed to publish account event", "type", eventType, "error", err)
	}
}
