package models

// Account is a customer bank account together with a denormalised snapshot of
// the owning customer's contact details. Balance and dates are kept as the
// caller formatted them; nothing parses them.
type Account struct {
	AccountNumber      string `json:"accountNumber"`
	AccountType        string `json:"accountType"`
	AccountStatus      string `json:"accountStatus"`
	AccountBalance     string `json:"accountBalance"`
	AccountCurrency    string `json:"accountCurrency"`
	AccountOpeningDate string `json:"accountOpeningDate"`
	AccountClosingDate string `json:"accountClosingDate"`
	AccountDescription string `json:"accountDescription"`
	AccountBranch      string `json:"accountBranch"`

	AccountCustomerID      string `json:"accountCustomerId"`
	AccountCustomerName    string `json:"accountCustomerName"`
	AccountCustomerEmail   string `json:"accountCustomerEmail"`
	AccountCustomerPhone   string `json:"accountCustomerPhone"`
	AccountCustomerAddress string `json:"accountCustomerAddress"`
	AccountCustomerCity    string `json:"accountCustomerCity"`
	AccountCustomerState   string `json:"accountCustomerState"`
	AccountCustomerZip     string `json:"accountCustomerZip"`
}

// Default values applied when an account is opened without them.
const (
	DefaultAccountStatus   = "ACTIVE"
	DefaultAccountCurrency = "USD"
)
