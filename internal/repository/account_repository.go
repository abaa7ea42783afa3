package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/eaglebank/customer-account-service/internal/models"
)

const accountsTable = "accounts"

// accountRow maps an Account onto the accounts table. account_number is the
// key and is never part of an UPDATE's SET list.
type accountRow struct {
	AccountNumber          string `db:"account_number" goqu:"skipupdate"`
	AccountType            string `db:"account_type"`
	AccountStatus          string `db:"account_status"`
	AccountBalance         string `db:"account_balance"`
	AccountCurrency        string `db:"account_currency"`
	AccountOpeningDate     string `db:"account_opening_date"`
	AccountClosingDate     string `db:"account_closing_date"`
	AccountDescription     string `db:"account_description"`
	AccountBranch          string `db:"account_branch"`
	AccountCustomerID      string `db:"account_customer_id"`
	AccountCustomerName    string `db:"account_customer_name"`
	AccountCustomerEmail   string `db:"account_customer_email"`
	AccountCustomerPhone   string `db:"account_customer_phone"`
	AccountCustomerAddress string `db:"account_customer_address"`
	AccountCustomerCity    string `db:"account_customer_city"`
	AccountCustomerState   string `db:"account_customer_state"`
	AccountCustomerZip     string `db:"account_customer_zip"`
}

var accountColumns = []string{
	"account_number",
	"account_type",
	"account_status",
	"account_balance",
	"account_currency",
	"account_opening_date",
	"account_closing_date",
	"account_description",
	"account_branch",
	"account_customer_id",
	"account_customer_name",
	"account_customer_email",
	"account_customer_phone",
	"account_customer_address",
	"account_customer_city",
	"account_customer_state",
	"account_customer_zip",
}

// selectColumns reads every column with NULL coalesced to "", so rows written
// by other tools still scan into plain strings.
var selectColumns = func() []interface{} {
	cols := make([]interface{}, 0, len(accountColumns))
	for _, c := range accountColumns {
		cols = append(cols, goqu.COALESCE(goqu.C(c), "").As(c))
	}
	return cols
}()

func toRow(a *models.Account) accountRow {
	return accountRow{
		AccountNumber:          a.AccountNumber,
		AccountType:            a.AccountType,
		AccountStatus:          a.AccountStatus,
		AccountBalance:         a.AccountBalance,
		AccountCurrency:        a.AccountCurrency,
		AccountOpeningDate:     a.AccountOpeningDate,
		AccountClosingDate:     a.AccountClosingDate,
		AccountDescription:     a.AccountDescription,
		AccountBranch:          a.AccountBranch,
		AccountCustomerID:      a.AccountCustomerID,
		AccountCustomerName:    a.AccountCustomerName,
		AccountCustomerEmail:   a.AccountCustomerEmail,
		AccountCustomerPhone:   a.AccountCustomerPhone,
		AccountCustomerAddress: a.AccountCustomerAddress,
		AccountCustomerCity:    a.AccountCustomerCity,
		AccountCustomerState:   a.AccountCustomerState,
		AccountCustomerZip:     a.AccountCustomerZip,
	}
}

func (r accountRow) toModel() models.Account {
	return models.Account{
		AccountNumber:          r.AccountNumber,
		AccountType:            r.AccountType,
		AccountStatus:          r.AccountStatus,
		AccountBalance:         r.AccountBalance,
		AccountCurrency:        r.AccountCurrency,
		AccountOpeningDate:     r.AccountOpeningDate,
		AccountClosingDate:     r.AccountClosingDate,
		AccountDescription:     r.AccountDescription,
		AccountBranch:          r.AccountBranch,
		AccountCustomerID:      r.AccountCustomerID,
		AccountCustomerName:    r.AccountCustomerName,
		AccountCustomerEmail:   r.AccountCustomerEmail,
		AccountCustomerPhone:   r.AccountCustomerPhone,
		AccountCustomerAddress: r.AccountCustomerAddress,
		AccountCustomerCity:    r.AccountCustomerCity,
		AccountCustomerState:   r.AccountCustomerState,
		AccountCustomerZip:     r.AccountCustomerZip,
	}
}

// AccountRepository is the SQL AccountStore. It speaks Postgres or SQLite
// depending on the driver the *sql.DB was opened with.
type AccountRepository struct {
	db *goqu.Database
}

func NewAccountRepository(db *sql.DB, driver string) *AccountRepository {
	return &AccountRepository{db: goqu.New(dialectFor(driver), db)}
}

func dialectFor(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return "postgres"
}

var _ AccountStore = (*AccountRepository)(nil)

func (r *AccountRepository) accounts() *goqu.SelectDataset {
	return r.db.From(accountsTable).Prepared(true).Select(selectColumns...)
}

func (r *AccountRepository) findWhere(ctx context.Context, op string, filter exp.Expression) ([]models.Account, error) {
	var rows []accountRow
	if err := r.accounts().
		Where(filter).
		Order(goqu.C("account_number").Asc()).
		ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	accounts := make([]models.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.toModel())
	}
	return accounts, nil
}

func (r *AccountRepository) FindAll(ctx context.Context) ([]models.Account, error) {
	var rows []accountRow
	if err := r.accounts().
		Order(goqu.C("account_number").Asc()).
		ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accounts := make([]models.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, row.toModel())
	}
	return accounts, nil
}

func (r *AccountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	var row accountRow
	found, err := r.accounts().
		Where(goqu.C("account_number").Eq(accountNumber)).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if !found {
		return nil, ErrAccountNotFound
	}
	account := row.toModel()
	return &account, nil
}

func (r *AccountRepository) FindByCustomerID(ctx context.Context, customerID string) ([]models.Account, error) {
	return r.findWhere(ctx, "list accounts by customer", goqu.C("account_customer_id").Eq(customerID))
}

func (r *AccountRepository) FindByType(ctx context.Context, accountType string) ([]models.Account, error) {
	return r.findWhere(ctx, "list accounts by type", goqu.C("account_type").Eq(accountType))
}

func (r *AccountRepository) FindByStatus(ctx context.Context, status string) ([]models.Account, error) {
	return r.findWhere(ctx, "list accounts by status", goqu.C("account_status").Eq(status))
}

func (r *AccountRepository) FindByBranch(ctx context.Context, branch string) ([]models.Account, error) {
	return r.findWhere(ctx, "list accounts by branch", goqu.C("account_branch").Eq(branch))
}

func (r *AccountRepository) FindByCustomerEmail(ctx context.Context, email string) ([]models.Account, error) {
	return r.findWhere(ctx, "list accounts by customer email", goqu.C("account_customer_email").Eq(email))
}

// FindByCustomerNameContaining lowers both sides so the match is
// case-insensitive on Postgres too. LIKE wildcards in name are not escaped.
func (r *AccountRepository) FindByCustomerNameContaining(ctx context.Context, name string) ([]models.Account, error) {
	pattern := "%" + strings.ToLower(name) + "%"
	return r.findWhere(ctx, "search accounts by customer name",
		goqu.Func("LOWER", goqu.C("account_customer_name")).Like(pattern))
}

func (r *AccountRepository) ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error) {
	n, err := r.db.From(accountsTable).Prepared(true).
		Where(goqu.C("account_number").Eq(accountNumber)).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return n > 0, nil
}

// Save updates the row keyed by the account number and inserts it when no row
// matched, inside one transaction.
func (r *AccountRepository) Save(ctx context.Context, account *models.Account) (*models.Account, error) {
	row := toRow(account)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin save: %w", err)
	}
	err = tx.Wrap(func() error {
		result, err := tx.Update(accountsTable).Prepared(true).
			Set(row).
			Where(goqu.C("account_number").Eq(row.AccountNumber)).
			Executor().ExecContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to update account: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if affected > 0 {
			return nil
		}
		if _, err := tx.Insert(accountsTable).Prepared(true).
			Rows(row).
			Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	saved := row.toModel()
	return &saved, nil
}

func (r *AccountRepository) DeleteByAccountNumber(ctx context.Context, accountNumber string) error {
	if _, err := r.db.Delete(accountsTable).Prepared(true).
		Where(goqu.C("account_number").Eq(accountNumber)).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.db.From(accountsTable).Prepared(true).CountContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}
