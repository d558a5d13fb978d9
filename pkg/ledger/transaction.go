package ledger

import "time"

// DateLayout is the wire format for transaction dates.
const DateLayout = "2006-01-02"

// Direction markers as reported by the bank. Amounts are unsigned magnitudes;
// the Type field carries the direction. Sources that report signed amounts
// normalize to this convention before handing transactions to the engines.
const (
	TypeCredit = "CREDIT"
	TypeDebit  = "DEBIT"
)

type Transaction struct {
	ID              string  `json:"id"`
	AccountID       string  `json:"accountId"`
	Type            string  `json:"type"`
	TransactionType string  `json:"transactionType"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	TransactionDate string  `json:"transactionDate"`
	RunningBalance  float64 `json:"runningBalance"`
	CardNumber      string  `json:"cardNumber"`
	PostedOrder     int     `json:"postedOrder"`
}

func (t Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

func (t Transaction) IsDebit() bool {
	return t.Type == TypeDebit
}

// Date parses the transaction date. Transactions with missing or malformed
// dates are skipped by date-based aggregations rather than failing a batch.
func (t Transaction) Date() (time.Time, error) {
	return time.Parse(DateLayout, t.TransactionDate)
}

type Account struct {
	AccountID     string `json:"accountId"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	ReferenceName string `json:"referenceName"`
}

func (a Account) DisplayName() string {
	return a.AccountName + " (" + a.AccountNumber + ")"
}

// TransferOutcome is the result of an already-executed transfer. The engines
// only interpret outcomes; executing transfers is the bank client's job.
type TransferOutcome struct {
	SourceAccountID      string
	DestinationAccountID string // empty for beneficiary payments
	Amount               float64
	MyReference          string
	TheirReference       string
}
