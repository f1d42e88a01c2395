package analyzer

import (
	"time"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
)

// Analyze produces the full five-part summary for a canonical dataset. The
// computation is a pure function of the dataset plus a single wall-clock
// read, so concurrent invocations need no coordination.
func Analyze(ds *fidata.Dataset) *Summary {
	return AnalyzeAt(ds, time.Now())
}

// AnalyzeAt is Analyze with a pinned clock, for deterministic tests.
func AnalyzeAt(ds *fidata.Dataset, now time.Time) *Summary {
	summary := &Summary{
		DataOverview: extractDataOverview(ds),
		Accounts:     []AccountAnalysis{},
	}

	var allTransactions []fidata.Transaction
	for _, fip := range ds.FIData {
		for _, block := range fip.Data {
			account := block.DecryptedFI.Account
			accountType := block.DecryptedFI.Type
			if accountType == "" {
				accountType = account.Type
			}
			if accountType == "" {
				accountType = "unknown"
			}

			summary.Accounts = append(summary.Accounts, analyzeAccount(account, accountType, fip.FIPID))
			allTransactions = append(allTransactions, account.Transactions.Transaction...)
		}
	}

	summary.AggregatedInsights = GenerateAggregateInsights(summary.Accounts)
	summary.BehavioralPatterns = AnalyzeBehavioralPatterns(allTransactions)
	summary.FinancialHealthIndicators = CalculateFinancialHealth(summary)
	summary.PersonalizationContext = GeneratePersonalizationContext(summary, now)

	return summary
}

func extractDataOverview(ds *fidata.Dataset) DataOverview {
	overview := DataOverview{
		ConsentID:      ds.ConsentID,
		DataSessionID:  ds.DataSessionID,
		TotalFIPs:      len(ds.FIData),
		FetchTimestamp: ds.Timestamp,
	}

	from, fromOK := ParseTimestamp(ds.DataRange.From)
	to, toOK := ParseTimestamp(ds.DataRange.To)
	if fromOK {
		overview.DataFrom = from.Format(time.RFC3339)
	}
	if toOK {
		overview.DataTo = to.Format(time.RFC3339)
	}
	if fromOK && toOK {
		span := int(to.Sub(from).Hours() / 24)
		overview.DataSpanDays = &span
	}

	return overview
}

func analyzeAccount(account fidata.Account, accountType, fipID string) AccountAnalysis {
	var holderInfo *HolderInfo
	if holders := account.Profile.Holders.Holder; len(holders) > 0 {
		h := holders[0]
		holderInfo = &HolderInfo{
			Name:         h.Name,
			HasNominee:   h.Nominee != "NOT-REGISTERED",
			KYCCompliant: h.CKYCCompliance == "true",
		}
	}

	return AccountAnalysis{
		AccountType:        accountType,
		MaskedAccount:      account.MaskedAccNumber,
		FIPID:              fipID,
		HolderInfo:         holderInfo,
		AccountDetails:     extractAccountDetails(account.Summary, accountType),
		TransactionSummary: AnalyzeTransactions(account.Transactions.Transaction),
	}
}

// extractAccountDetails picks the detail fields relevant to the account
// type. Stringified numerics coerce to 0 when absent or malformed.
func extractAccountDetails(summary fidata.AccountSummary, accountType string) AccountDetails {
	details := AccountDetails{
		Branch:      summary.Branch,
		IFSC:        summary.IFSC,
		OpeningDate: summary.OpeningDate,
	}

	switch accountType {
	case "recurring_deposit", "term_deposit", "deposit":
		details.PrincipalAmount = floatPtr(safeFloat(summary.PrincipalAmount))
		details.CurrentValue = floatPtr(safeFloat(summary.CurrentValue))
		details.MaturityAmount = floatPtr(safeFloat(summary.MaturityAmount))
		details.MaturityDate = summary.MaturityDate
		details.InterestRate = floatPtr(safeFloat(summary.InterestRate))
		details.CompoundingFrequency = summary.CompoundingFrequency
		details.TenureMonths = intPtr(int(safeFloat(summary.TenureMonths)))
		if accountType == "recurring_deposit" {
			details.RecurringAmount = floatPtr(safeFloat(summary.RecurringAmount))
		}
	case "savings", "current":
		details.CurrentBalance = floatPtr(safeFloat(summary.CurrentBalance))
		details.AvailableBalance = floatPtr(safeFloat(summary.AvailableBalance))
		details.Currency = summary.Currency
		if details.Currency == "" {
			details.Currency = "INR"
		}
		details.Status = summary.Status
	case "credit_card":
		details.CreditLimit = floatPtr(safeFloat(summary.CreditLimit))
		details.AvailableCredit = floatPtr(safeFloat(summary.AvailableCredit))
		details.CurrentDue = floatPtr(safeFloat(summary.CurrentDue))
		details.TotalDue = floatPtr(safeFloat(summary.TotalDueAmount))
		details.DueDate = summary.DueDate
		details.RewardPoints = floatPtr(safeFloat(summary.LoyaltyPoints))
	}

	return details
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }
