package fidata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountStore provides the raw rows the Normalizer works from. The concrete
// implementation lives in internal/store/bigquery; tests supply fixtures.
type AccountStore interface {
	// ListAccounts returns every linked financial account for the user.
	ListAccounts(ctx context.Context, userID string) ([]RawAccount, error)

	// ListTransactionsThrough returns all transactions for the given accounts
	// with a timestamp at or before the cut-off, ordered by timestamp.
	ListTransactionsThrough(ctx context.Context, userID string, accountIDs []string, through time.Time) ([]RawTransaction, error)
}

// Normalizer converts raw account and transaction rows into the canonical
// FI_DATA_READY dataset for one user and an as-of date.
//
// Build never returns nil and never propagates an error: any failure during
// fetch or transform degrades to the canonical-empty dataset. The emptiness
// of the result is itself the signal consumed by callers.
type Normalizer struct {
	store AccountStore
	log   zerolog.Logger
	now   func() time.Time
}

// NewNormalizer creates a Normalizer backed by the given store.
func NewNormalizer(st AccountStore, log zerolog.Logger) *Normalizer {
	return &Normalizer{store: st, log: log, now: time.Now}
}

// WithClock overrides the wall clock, for tests. The clock is read once per
// Build so every default date inside one invocation is consistent.
func (n *Normalizer) WithClock(now func() time.Time) *Normalizer {
	n.now = now
	return n
}

// Build fetches the user's snapshot and returns the canonical dataset.
// asOf is a YYYY-MM-DD end date; empty means today. The cut-off is
// end-of-day inclusive.
func (n *Normalizer) Build(ctx context.Context, userID, asOf string) (ds *Dataset) {
	now := n.now().UTC()
	today := now.Format(dateLayout)

	if asOf == "" {
		asOf = today
	}
	through, err := time.Parse(dateLayout, asOf)
	if err != nil {
		n.log.Warn().Str("as_of", asOf).Msg("Unparseable as-of date, defaulting to today")
		asOf = today
		through = now.Truncate(24 * time.Hour)
	}
	endOfDay := through.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	// The transform below must never reach the caller as a panic.
	defer func() {
		if r := recover(); r != nil {
			n.log.Error().Interface("panic", r).Str("user_id", userID).Msg("Normalizer recovered, returning empty dataset")
			ds = n.emptyDataset(asOf, now)
		}
	}()

	accounts, err := n.store.ListAccounts(ctx, userID)
	if err != nil {
		n.log.Error().Err(err).Str("user_id", userID).Msg("Fetching accounts failed")
		return n.emptyDataset(asOf, now)
	}
	if len(accounts) == 0 {
		return n.emptyDataset(asOf, now)
	}

	accountIDs := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		if id := strOf(acc.ID); id != "" {
			accountIDs = append(accountIDs, id)
		}
	}
	if len(accountIDs) == 0 {
		return n.emptyDataset(asOf, now)
	}

	txns, err := n.store.ListTransactionsThrough(ctx, userID, accountIDs, endOfDay)
	if err != nil {
		n.log.Error().Err(err).Str("user_id", userID).Msg("Fetching transactions failed")
		return n.emptyDataset(asOf, now)
	}

	// Group transactions by account, preserving storage order.
	txnsByAccount := make(map[string][]RawTransaction)
	for _, txn := range txns {
		if id := strOf(txn.AccountID); id != "" {
			txnsByAccount[id] = append(txnsByAccount[id], txn)
		}
	}

	dataFrom := n.windowStart(accounts, txns, today)

	return n.buildDataset(accounts, txnsByAccount, dataFrom, asOf, now)
}

// windowStart picks the overall window's start date: earliest transaction
// timestamp, else earliest account opening date, else today.
func (n *Normalizer) windowStart(accounts []RawAccount, txns []RawTransaction, today string) string {
	if len(txns) > 0 {
		if ts := strOf(txns[0].TransactionTimestamp); ts != "" {
			return formatDate(ts, today)
		}
	}
	earliest := ""
	for _, acc := range accounts {
		od := strOf(acc.OpeningDate)
		if od == "" {
			continue
		}
		if earliest == "" || od < earliest {
			earliest = od
		}
	}
	if earliest != "" {
		return formatDate(earliest, today)
	}
	return today
}

func (n *Normalizer) buildDataset(accounts []RawAccount, txnsByAccount map[string][]RawTransaction, dataFrom, dataTo string, now time.Time) *Dataset {
	today := now.Format(dateLayout)

	type groupKey struct{ sessionID, fipID string }

	// Group account blocks by (session, provider), keeping encounter order.
	var keyOrder []groupKey
	groups := make(map[groupKey][]AccountBlock)
	for _, acc := range accounts {
		sessionID := strOf(acc.FIDataSessionID)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}
		fipID := strOf(acc.FIPID)
		if fipID == "" {
			fipID = "unknown"
		}

		key := groupKey{sessionID: sessionID, fipID: fipID}
		if _, seen := groups[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		groups[key] = append(groups[key], buildAccountBlock(acc, txnsByAccount[strOf(acc.ID)], today))
	}

	// Re-group into provider entries per session. Every session is returned;
	// dataSessionId identifies the first one encountered.
	var sessionOrder []string
	fipsBySession := make(map[string][]FIPGroup)
	for _, key := range keyOrder {
		if _, seen := fipsBySession[key.sessionID]; !seen {
			sessionOrder = append(sessionOrder, key.sessionID)
		}
		fipsBySession[key.sessionID] = append(fipsBySession[key.sessionID], FIPGroup{
			FIPID: key.fipID,
			Data:  groups[key],
		})
	}

	sessionID := uuid.NewString()
	if len(sessionOrder) > 0 {
		sessionID = sessionOrder[0]
	}

	fiData := make([]FIPGroup, 0, len(keyOrder))
	for _, sid := range sessionOrder {
		fiData = append(fiData, fipsBySession[sid]...)
	}

	from := ""
	if dataFrom != "" {
		from = dataFrom + "T00:00:00.000Z"
	}

	return &Dataset{
		Type:           "FI_DATA_READY",
		Status:         "COMPLETED",
		Timestamp:      envelopeTimestamp(now),
		ConsentID:      uuid.NewString(),
		DataSessionID:  sessionID,
		DataRange:      DataRange{From: from, To: dataTo + "T00:00:00.000Z"},
		FIData:         fiData,
		NotificationID: notificationID(),
	}
}

// buildAccountBlock converts one raw account and its transactions into a
// canonical account block.
func buildAccountBlock(acc RawAccount, txns []RawTransaction, today string) AccountBlock {
	formatted := make([]Transaction, 0, len(txns))
	for _, txn := range txns {
		formatted = append(formatted, buildTransaction(txn))
	}

	startDate := formatDate(strOf(acc.OpeningDate), today)
	if len(txns) > 0 {
		if ts := strOf(txns[0].TransactionTimestamp); ts != "" {
			startDate = formatDate(ts, today)
		}
	}
	endDate := today
	if len(txns) > 0 {
		if ts := strOf(txns[len(txns)-1].TransactionTimestamp); ts != "" {
			endDate = formatDate(ts, today)
		}
	}

	accountType := strOf(acc.AccountType)

	return AccountBlock{
		LinkRefNumber:   strOf(acc.LinkRefNumber),
		MaskedAccNumber: strOf(acc.MaskedAccNumber),
		DecryptedFI: DecryptedFI{
			Type: accountType,
			Account: Account{
				LinkedAccRef:    strOf(acc.LinkRefNumber),
				MaskedAccNumber: strOf(acc.MaskedAccNumber),
				Type:            accountType,
				Version:         "2.0.0",
				Profile:         Profile{Holders: buildHolders(acc)},
				Summary:         buildAccountSummary(acc),
				Transactions: TransactionWindow{
					StartDate:   startDate,
					EndDate:     endDate,
					Transaction: formatted,
				},
			},
		},
	}
}

// buildHolders emits a single holder entry when the row carries any holder
// metadata; otherwise the holder list stays empty.
func buildHolders(acc RawAccount) Holders {
	holders := Holders{Type: "SINGLE", Holder: []Holder{}}

	if acc.HolderName == nil && acc.Nominee == nil && acc.CKYCCompliance == nil {
		return holders
	}

	nominee := strOf(acc.Nominee)
	if nominee == "" {
		nominee = "NOT-REGISTERED"
	}
	ckyc := strOf(acc.CKYCCompliance)
	if ckyc == "" {
		ckyc = "false"
	}

	holders.Holder = append(holders.Holder, Holder{
		Name:           strOf(acc.HolderName),
		Nominee:        nominee,
		CKYCCompliance: ckyc,
	})
	return holders
}

func buildAccountSummary(acc RawAccount) AccountSummary {
	category := strOf(acc.AccountTypeCategory)
	if category == "" {
		category = "RECURRING"
	}

	return AccountSummary{
		AccountType:                  category,
		Branch:                       strOf(acc.Branch),
		CompoundingFrequency:         strOf(acc.CompoundingFrequency),
		Description:                  strOf(acc.Description),
		IFSC:                         strOf(acc.IFSC),
		InterestComputation:          strOf(acc.InterestComputation),
		InterestOnMaturity:           strOf(acc.InterestOnMaturity),
		InterestPayout:               strOf(acc.InterestPayout),
		InterestPeriodicPayoutAmount: strFloat(acc.InterestPeriodicPayoutAmount),
		InterestRate:                 strFloat(acc.InterestRate),
		MaturityAmount:               strFloat(acc.MaturityAmount),
		MaturityDate:                 formatTimestamp(strOf(acc.MaturityDate)),
		OpeningDate:                  formatTimestamp(strOf(acc.OpeningDate)),
		PrincipalAmount:              strFloat(acc.PrincipalAmount),
		RecurringAmount:              strFloat(acc.RecurringAmount),
		RecurringDepositDay:          strInt(acc.RecurringDepositDay),
		TenureDays:                   strInt(acc.TenureDays),
		TenureMonths:                 strInt(acc.TenureMonths),
		TenureYears:                  strInt(acc.TenureYears),
		CurrentValue:                 strFloat(acc.CurrentValue),
		CurrentBalance:               strFloat(acc.CurrentBalance),
		AvailableBalance:             strFloat(acc.AvailableBalance),
		Currency:                     strOf(acc.Currency),
		Status:                       strOf(acc.Status),
		CreditLimit:                  strFloat(acc.CreditLimit),
		AvailableCredit:              strFloat(acc.AvailableCredit),
		CurrentDue:                   strFloat(acc.CurrentDue),
		TotalDueAmount:               strFloat(acc.TotalDueAmount),
		DueDate:                      formatTimestamp(strOf(acc.DueDate)),
		LoyaltyPoints:                strFloat(acc.LoyaltyPoints),
	}
}

func buildTransaction(txn RawTransaction) Transaction {
	return Transaction{
		Amount:               strFloat(txn.Amount),
		Mode:                 strOf(txn.Mode),
		Narration:            strOf(txn.Narration),
		Reference:            strOf(txn.Reference),
		TransactionTimestamp: formatTimestamp(strOf(txn.TransactionTimestamp)),
		TxnID:                strOf(txn.ID),
		Type:                 strOf(txn.Type),
		ValueDate:            formatTimestamp(strOf(txn.ValueDate)),
		Balance:              strFloat(txn.Balance),
	}
}

// emptyDataset returns the canonical-empty envelope: a valid structure with
// no provider groups and an empty "from" date.
func (n *Normalizer) emptyDataset(dataTo string, now time.Time) *Dataset {
	return &Dataset{
		Type:           "FI_DATA_READY",
		Status:         "COMPLETED",
		Timestamp:      envelopeTimestamp(now),
		ConsentID:      uuid.NewString(),
		DataSessionID:  uuid.NewString(),
		DataRange:      DataRange{From: "", To: dataTo + "T00:00:00.000Z"},
		FIData:         []FIPGroup{},
		NotificationID: "0",
	}
}

func envelopeTimestamp(now time.Time) string {
	return now.UTC().Format("2006-01-02T15:04:05.000") + "Z"
}

func notificationID() string {
	return fmt.Sprintf("%d", uuid.New().ID()%100000)
}
