package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
)

// AccountRow is one row of the user_financial_accounts table.
type AccountRow struct {
	AccountID string `bigquery:"account_id"` // REQUIRED

	UserID          bigquery.NullString `bigquery:"user_id"`
	FIPID           bigquery.NullString `bigquery:"fip_id"`
	FIDataSessionID bigquery.NullString `bigquery:"fi_data_session_id"`
	LinkRefNumber   bigquery.NullString `bigquery:"link_ref_number"`
	MaskedAccNumber bigquery.NullString `bigquery:"masked_acc_number"`

	AccountType         bigquery.NullString `bigquery:"account_type"`
	AccountTypeCategory bigquery.NullString `bigquery:"account_type_category"`

	HolderName     bigquery.NullString `bigquery:"holder_name"`
	Nominee        bigquery.NullString `bigquery:"nominee"`
	CKYCCompliance bigquery.NullString `bigquery:"ckyc_compliance"`

	Branch                       bigquery.NullString  `bigquery:"branch"`
	IFSC                         bigquery.NullString  `bigquery:"ifsc"`
	Description                  bigquery.NullString  `bigquery:"description"`
	CompoundingFrequency         bigquery.NullString  `bigquery:"compounding_frequency"`
	InterestComputation          bigquery.NullString  `bigquery:"interest_computation"`
	InterestOnMaturity           bigquery.NullString  `bigquery:"interest_on_maturity"`
	InterestPayout               bigquery.NullString  `bigquery:"interest_payout"`
	InterestPeriodicPayoutAmount bigquery.NullFloat64 `bigquery:"interest_periodic_payout_amount"`
	InterestRate                 bigquery.NullFloat64 `bigquery:"interest_rate"`
	PrincipalAmount              bigquery.NullFloat64 `bigquery:"principal_amount"`
	MaturityAmount               bigquery.NullFloat64 `bigquery:"maturity_amount"`
	MaturityDate                 bigquery.NullString  `bigquery:"maturity_date"`
	OpeningDate                  bigquery.NullString  `bigquery:"opening_date"`
	RecurringAmount              bigquery.NullFloat64 `bigquery:"recurring_amount"`
	RecurringDepositDay          bigquery.NullInt64   `bigquery:"recurring_deposit_day"`
	TenureDays                   bigquery.NullInt64   `bigquery:"tenure_days"`
	TenureMonths                 bigquery.NullInt64   `bigquery:"tenure_months"`
	TenureYears                  bigquery.NullInt64   `bigquery:"tenure_years"`
	CurrentValue                 bigquery.NullFloat64 `bigquery:"current_value"`

	CurrentBalance   bigquery.NullFloat64 `bigquery:"current_balance"`
	AvailableBalance bigquery.NullFloat64 `bigquery:"available_balance"`
	Currency         bigquery.NullString  `bigquery:"currency"`
	Status           bigquery.NullString  `bigquery:"status"`

	CreditLimit     bigquery.NullFloat64 `bigquery:"credit_limit"`
	AvailableCredit bigquery.NullFloat64 `bigquery:"available_credit"`
	CurrentDue      bigquery.NullFloat64 `bigquery:"current_due"`
	TotalDueAmount  bigquery.NullFloat64 `bigquery:"total_due_amount"`
	DueDate         bigquery.NullString  `bigquery:"due_date"`
	LoyaltyPoints   bigquery.NullFloat64 `bigquery:"loyalty_points"`

	CreatedTS bigquery.NullTimestamp `bigquery:"created_ts"`
}

// TransactionRow is one row of the account_transactions table.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	AccountID            bigquery.NullString  `bigquery:"account_id"`
	UserID               bigquery.NullString  `bigquery:"user_id"`
	Amount               bigquery.NullFloat64 `bigquery:"amount"`
	Mode                 bigquery.NullString  `bigquery:"mode"`
	TxnType              bigquery.NullString  `bigquery:"txn_type"`
	Narration            bigquery.NullString  `bigquery:"narration"`
	Reference            bigquery.NullString  `bigquery:"reference"`
	TransactionTimestamp bigquery.NullString  `bigquery:"transaction_timestamp"`
	ValueDate            bigquery.NullString  `bigquery:"value_date"`
	Balance              bigquery.NullFloat64 `bigquery:"balance"`
}

// MentorSessionRow is one row of the mentor_sessions table. The dataset and
// analysis snapshots are stored as JSON columns.
type MentorSessionRow struct {
	SessionID string `bigquery:"session_id"` // REQUIRED

	UserID         bigquery.NullString    `bigquery:"user_id"`
	Question       bigquery.NullString    `bigquery:"question"`
	MentorResponse bigquery.NullString    `bigquery:"mentor_response"`
	Model          bigquery.NullString    `bigquery:"model"`
	FinancialData  bigquery.NullJSON      `bigquery:"financial_data"`
	Analysis       bigquery.NullJSON      `bigquery:"analysis"`
	Metadata       bigquery.NullJSON      `bigquery:"metadata"`
	CreatedTS      bigquery.NullTimestamp `bigquery:"created_ts"`
}

// ToRaw converts the row into the normalizer's raw account shape. NULL
// columns become nil pointers, which the normalizer defaults later.
func (r *AccountRow) ToRaw() fidata.RawAccount {
	return fidata.RawAccount{
		ID:                  strPtrOf(r.AccountID),
		UserID:              nullStr(r.UserID),
		FIPID:               nullStr(r.FIPID),
		FIDataSessionID:     nullStr(r.FIDataSessionID),
		LinkRefNumber:       nullStr(r.LinkRefNumber),
		MaskedAccNumber:     nullStr(r.MaskedAccNumber),
		AccountType:         nullStr(r.AccountType),
		AccountTypeCategory: nullStr(r.AccountTypeCategory),

		HolderName:     nullStr(r.HolderName),
		Nominee:        nullStr(r.Nominee),
		CKYCCompliance: nullStr(r.CKYCCompliance),

		Branch:                       nullStr(r.Branch),
		IFSC:                         nullStr(r.IFSC),
		Description:                  nullStr(r.Description),
		CompoundingFrequency:         nullStr(r.CompoundingFrequency),
		InterestComputation:          nullStr(r.InterestComputation),
		InterestOnMaturity:           nullStr(r.InterestOnMaturity),
		InterestPayout:               nullStr(r.InterestPayout),
		InterestPeriodicPayoutAmount: nullFloat(r.InterestPeriodicPayoutAmount),
		InterestRate:                 nullFloat(r.InterestRate),
		PrincipalAmount:              nullFloat(r.PrincipalAmount),
		MaturityAmount:               nullFloat(r.MaturityAmount),
		MaturityDate:                 nullStr(r.MaturityDate),
		OpeningDate:                  nullStr(r.OpeningDate),
		RecurringAmount:              nullFloat(r.RecurringAmount),
		RecurringDepositDay:          nullInt(r.RecurringDepositDay),
		TenureDays:                   nullInt(r.TenureDays),
		TenureMonths:                 nullInt(r.TenureMonths),
		TenureYears:                  nullInt(r.TenureYears),
		CurrentValue:                 nullFloat(r.CurrentValue),

		CurrentBalance:   nullFloat(r.CurrentBalance),
		AvailableBalance: nullFloat(r.AvailableBalance),
		Currency:         nullStr(r.Currency),
		Status:           nullStr(r.Status),

		CreditLimit:     nullFloat(r.CreditLimit),
		AvailableCredit: nullFloat(r.AvailableCredit),
		CurrentDue:      nullFloat(r.CurrentDue),
		TotalDueAmount:  nullFloat(r.TotalDueAmount),
		DueDate:         nullStr(r.DueDate),
		LoyaltyPoints:   nullFloat(r.LoyaltyPoints),
	}
}

// ToRaw converts the row into the normalizer's raw transaction shape.
func (r *TransactionRow) ToRaw() fidata.RawTransaction {
	return fidata.RawTransaction{
		ID:                   strPtrOf(r.TransactionID),
		AccountID:            nullStr(r.AccountID),
		UserID:               nullStr(r.UserID),
		Amount:               nullFloat(r.Amount),
		Mode:                 nullStr(r.Mode),
		Type:                 nullStr(r.TxnType),
		Narration:            nullStr(r.Narration),
		Reference:            nullStr(r.Reference),
		TransactionTimestamp: nullStr(r.TransactionTimestamp),
		ValueDate:            nullStr(r.ValueDate),
		Balance:              nullFloat(r.Balance),
	}
}

func strPtrOf(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullStr(v bigquery.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.StringVal
	return &s
}

func nullFloat(v bigquery.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullInt(v bigquery.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

func nullTime(v bigquery.NullTimestamp) time.Time {
	if !v.Valid {
		return time.Time{}
	}
	return v.Timestamp
}
