package fidata

// RawAccount is one row from the user_financial_accounts table.
// Rows collected under the consent framework are frequently incomplete, so
// every column maps to a pointer and default substitution happens in the
// conversion functions, never at the lookup site.
type RawAccount struct {
	ID              *string
	UserID          *string
	FIPID           *string
	FIDataSessionID *string
	LinkRefNumber   *string
	MaskedAccNumber *string

	// AccountType is the instrument type used downstream ("deposit",
	// "recurring_deposit", "savings", ...). AccountTypeCategory is the
	// summary-level category tag ("RECURRING", "FIXED", ...).
	AccountType         *string
	AccountTypeCategory *string

	HolderName     *string
	Nominee        *string // "REGISTERED" / "NOT-REGISTERED"
	CKYCCompliance *string // "true" / "false"

	Branch                       *string
	IFSC                         *string
	Description                  *string
	CompoundingFrequency         *string
	InterestComputation          *string
	InterestOnMaturity           *string
	InterestPayout               *string
	InterestPeriodicPayoutAmount *float64
	InterestRate                 *float64
	PrincipalAmount              *float64
	MaturityAmount               *float64
	MaturityDate                 *string
	OpeningDate                  *string
	RecurringAmount              *float64
	RecurringDepositDay          *int64
	TenureDays                   *int64
	TenureMonths                 *int64
	TenureYears                  *int64
	CurrentValue                 *float64

	CurrentBalance   *float64
	AvailableBalance *float64
	Currency         *string
	Status           *string

	CreditLimit     *float64
	AvailableCredit *float64
	CurrentDue      *float64
	TotalDueAmount  *float64
	DueDate         *string
	LoyaltyPoints   *float64
}

// RawTransaction is one row from the account_transactions table. As with
// RawAccount, any field may be absent or malformed.
type RawTransaction struct {
	ID                   *string
	AccountID            *string
	UserID               *string
	Amount               *float64
	Mode                 *string
	Type                 *string
	Narration            *string
	Reference            *string
	TransactionTimestamp *string
	ValueDate            *string
	Balance              *float64
}

// Dataset is the canonical FI_DATA_READY envelope produced by the Normalizer.
// It is never nil: absence of accounts or transactions yields a structurally
// valid, empty dataset.
type Dataset struct {
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Timestamp      string     `json:"timestamp"`
	ConsentID      string     `json:"consentId"`
	DataSessionID  string     `json:"dataSessionId"`
	DataRange      DataRange  `json:"dataRange"`
	FIData         []FIPGroup `json:"fiData"`
	NotificationID string     `json:"notificationId"`
}

// DataRange is the overall transaction window. From is empty when unknown;
// To is always present.
type DataRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FIPGroup holds every account block supplied by one provider under one
// data-sharing session.
type FIPGroup struct {
	FIPID string         `json:"fipID"`
	Data  []AccountBlock `json:"data"`
}

// AccountBlock is one linked account inside a provider group.
type AccountBlock struct {
	LinkRefNumber   string      `json:"linkRefNumber"`
	MaskedAccNumber string      `json:"maskedAccNumber"`
	DecryptedFI     DecryptedFI `json:"decryptedFI"`
}

type DecryptedFI struct {
	Account Account `json:"account"`
	Type    string  `json:"type"`
}

type Account struct {
	LinkedAccRef    string            `json:"linkedAccRef"`
	MaskedAccNumber string            `json:"maskedAccNumber"`
	Type            string            `json:"type"`
	Version         string            `json:"version"`
	Profile         Profile           `json:"profile"`
	Summary         AccountSummary    `json:"summary"`
	Transactions    TransactionWindow `json:"transactions"`
}

type Profile struct {
	Holders Holders `json:"holders"`
}

type Holders struct {
	Type   string   `json:"type"`
	Holder []Holder `json:"holder"`
}

// Holder carries the minimal holder metadata the analyzer consumes.
type Holder struct {
	Name           string `json:"name,omitempty"`
	Nominee        string `json:"nominee"`
	CKYCCompliance string `json:"ckycCompliance"`
}

// AccountSummary is the type-specific account summary. Every field is a
// string: missing numerics and dates are coerced to "" so the downstream
// consumer sees uniform typing regardless of account type.
type AccountSummary struct {
	AccountType                  string `json:"accountType"`
	Branch                       string `json:"branch"`
	CompoundingFrequency         string `json:"compoundingFrequency"`
	Description                  string `json:"description"`
	IFSC                         string `json:"ifsc"`
	InterestComputation          string `json:"interestComputation"`
	InterestOnMaturity           string `json:"interestOnMaturity"`
	InterestPayout               string `json:"interestPayout"`
	InterestPeriodicPayoutAmount string `json:"interestPeriodicPayoutAmount"`
	InterestRate                 string `json:"interestRate"`
	MaturityAmount               string `json:"maturityAmount"`
	MaturityDate                 string `json:"maturityDate"`
	OpeningDate                  string `json:"openingDate"`
	PrincipalAmount              string `json:"principalAmount"`
	RecurringAmount              string `json:"recurringAmount"`
	RecurringDepositDay          string `json:"recurringDepositDay"`
	TenureDays                   string `json:"tenureDays"`
	TenureMonths                 string `json:"tenureMonths"`
	TenureYears                  string `json:"tenureYears"`
	CurrentValue                 string `json:"currentValue"`
	CurrentBalance               string `json:"currentBalance"`
	AvailableBalance             string `json:"availableBalance"`
	Currency                     string `json:"currency"`
	Status                       string `json:"status"`
	CreditLimit                  string `json:"creditLimit"`
	AvailableCredit              string `json:"availableCredit"`
	CurrentDue                   string `json:"currentDue"`
	TotalDueAmount               string `json:"totalDueAmount"`
	DueDate                      string `json:"dueDate"`
	LoyaltyPoints                string `json:"loyaltyPoints"`
}

// TransactionWindow is an account's transaction list with its explicit
// start/end window.
type TransactionWindow struct {
	StartDate   string        `json:"startDate"`
	EndDate     string        `json:"endDate"`
	Transaction []Transaction `json:"transaction"`
}

// Transaction is one canonical ledger entry. All fields are strings, empty
// when unknown.
type Transaction struct {
	Amount               string `json:"amount"`
	Mode                 string `json:"mode"`
	Narration            string `json:"narration"`
	Reference            string `json:"reference"`
	TransactionTimestamp string `json:"transactionTimestamp"`
	TxnID                string `json:"txnId"`
	Type                 string `json:"type"`
	ValueDate            string `json:"valueDate"`
	Balance              string `json:"balance"`
}
