package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
)

var analysisClock = time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC)

// scenarioDataset builds a portfolio with a recurring deposit maturing in 30
// days and a savings account with five transactions, no nominee registered.
func scenarioDataset() *fidata.Dataset {
	rd := fidata.AccountBlock{
		LinkRefNumber:   "link-rd",
		MaskedAccNumber: "XXXX1111",
		DecryptedFI: fidata.DecryptedFI{
			Type: "recurring_deposit",
			Account: fidata.Account{
				MaskedAccNumber: "XXXX1111",
				Type:            "recurring_deposit",
				Version:         "2.0.0",
				Profile: fidata.Profile{Holders: fidata.Holders{
					Type: "SINGLE",
					Holder: []fidata.Holder{{
						Name:           "Ravi",
						Nominee:        "NOT-REGISTERED",
						CKYCCompliance: "true",
					}},
				}},
				Summary: fidata.AccountSummary{
					AccountType:     "RECURRING",
					PrincipalAmount: "45000",
					CurrentValue:    "47000",
					MaturityAmount:  "50000",
					MaturityDate:    "2023-07-16T00:00:00",
					InterestRate:    "7.1",
					TenureMonths:    "12",
					RecurringAmount: "5000",
				},
			},
		},
	}

	savings := fidata.AccountBlock{
		LinkRefNumber:   "link-sav",
		MaskedAccNumber: "XXXX2222",
		DecryptedFI: fidata.DecryptedFI{
			Type: "savings",
			Account: fidata.Account{
				MaskedAccNumber: "XXXX2222",
				Type:            "savings",
				Version:         "2.0.0",
				Summary: fidata.AccountSummary{
					AccountType:    "SAVINGS",
					CurrentBalance: "18000",
					Status:         "ACTIVE",
				},
				Transactions: fidata.TransactionWindow{
					StartDate: "2023-06-01",
					EndDate:   "2023-06-15",
					Transaction: []fidata.Transaction{
						txn("2023-06-01T10:00:00", "5000", "CREDIT", "UPI", "25000"),
						txn("2023-06-03T11:00:00", "1500", "DEBIT", "UPI", "23500"),
						txn("2023-06-07T12:00:00", "2000", "DEBIT", "CARD", "21500"),
						txn("2023-06-10T09:00:00", "1500", "DEBIT", "UPI", "20000"),
						txn("2023-06-15T15:00:00", "2000", "DEBIT", "UPI", "18000"),
					},
				},
			},
		},
	}

	return &fidata.Dataset{
		Type:          "FI_DATA_READY",
		Status:        "COMPLETED",
		Timestamp:     "2023-06-16T00:00:00.000Z",
		ConsentID:     "consent-1",
		DataSessionID: "sess-1",
		DataRange: fidata.DataRange{
			From: "2023-06-01T00:00:00.000Z",
			To:   "2023-06-16T00:00:00.000Z",
		},
		FIData: []fidata.FIPGroup{
			{FIPID: "HDFC-FIP", Data: []fidata.AccountBlock{rd, savings}},
		},
		NotificationID: "42",
	}
}

func TestAnalyzeScenario(t *testing.T) {
	summary := AnalyzeAt(scenarioDataset(), analysisClock)

	require.Len(t, summary.Accounts, 2)

	overview := summary.DataOverview
	assert.Equal(t, "consent-1", overview.ConsentID)
	assert.Equal(t, 1, overview.TotalFIPs)
	require.NotNil(t, overview.DataSpanDays)
	assert.Equal(t, 15, *overview.DataSpanDays)

	rd := summary.Accounts[0]
	assert.Equal(t, "recurring_deposit", rd.AccountType)
	require.NotNil(t, rd.HolderInfo)
	assert.False(t, rd.HolderInfo.HasNominee)
	assert.True(t, rd.HolderInfo.KYCCompliant)
	require.NotNil(t, rd.AccountDetails.MaturityAmount)
	assert.Equal(t, 50000.0, *rd.AccountDetails.MaturityAmount)
	require.NotNil(t, rd.AccountDetails.RecurringAmount)
	assert.Equal(t, 5000.0, *rd.AccountDetails.RecurringAmount)

	savings := summary.Accounts[1]
	assert.Equal(t, "savings", savings.AccountType)
	assert.Nil(t, savings.HolderInfo)
	assert.Equal(t, "INR", savings.AccountDetails.Currency)
	assert.Equal(t, 5, savings.TransactionSummary.TotalTransactions)

	insights := summary.AggregatedInsights
	assert.Equal(t, 2, insights.TotalAccounts)
	assert.False(t, insights.HasNomineeRegistered)
	require.Len(t, insights.DepositAccounts, 1)
	assert.Equal(t, 47000.0+18000.0, insights.EstimatedTotalValue)

	health := summary.FinancialHealthIndicators
	assert.Equal(t, 40, health.DiversificationScore)
	assert.Equal(t, "low", health.TransactionRegularity)
	assert.Equal(t, "negative", health.BalanceTrend)
	assert.Contains(t, health.RiskIndicators, "Balance showing downward trend")

	ctx := summary.PersonalizationContext
	assert.Equal(t, "compliant", ctx.UserProfile.KYCStatus)
	assert.Equal(t, "not_registered", ctx.UserProfile.NomineeStatus)
	assert.Contains(t, ctx.ConversationHints,
		"User hasn't registered nominees - could benefit from estate planning discussion")
	assert.Contains(t, ctx.ConversationHints, "1 deposit(s) maturing within 90 days")
	assert.Contains(t, ctx.ConversationHints,
		"Balance trend is negative - user might benefit from budgeting tips")
	assert.Contains(t, ctx.RecommendedTopics, "nominee_registration")
	assert.Contains(t, ctx.RecommendedTopics, "reinvestment_options")
	assert.Contains(t, ctx.RecommendedTopics, "expense_management")
	assert.NotContains(t, ctx.RecommendedTopics, "portfolio_diversification",
		"two account types reach the 40-point floor")
	assert.Contains(t, ctx.AvoidTopics, "aggressive_investments")

	snapshot := ctx.FinancialSnapshot
	assert.True(t, snapshot.HasDeposits)
	assert.Equal(t, []string{"recurring_deposit", "savings"}, snapshot.PrimaryAccountTypes)
	require.Len(t, snapshot.UpcomingMaturities, 1)
	maturity := snapshot.UpcomingMaturities[0]
	assert.Equal(t, "recurring_deposit", maturity.Type)
	assert.Equal(t, 30, maturity.DaysRemaining)
	assert.Equal(t, 50000.0, maturity.Amount)
}

func TestAnalyzeEmptyDataset(t *testing.T) {
	ds := &fidata.Dataset{
		Type:           "FI_DATA_READY",
		Status:         "COMPLETED",
		ConsentID:      "consent-x",
		DataSessionID:  "sess-x",
		DataRange:      fidata.DataRange{To: "2023-06-16T00:00:00.000Z"},
		FIData:         []fidata.FIPGroup{},
		NotificationID: "0",
	}

	summary := AnalyzeAt(ds, analysisClock)

	assert.Empty(t, summary.Accounts)
	assert.NotNil(t, summary.Accounts, "accounts must be an empty list, not null")
	assert.Equal(t, 0, summary.AggregatedInsights.TotalAccounts)
	assert.Equal(t, "No transactions to analyze", summary.BehavioralPatterns.Message)
	assert.Equal(t, 0, summary.FinancialHealthIndicators.DiversificationScore)
	assert.Equal(t, "low", summary.FinancialHealthIndicators.TransactionRegularity)
	assert.Equal(t, "unknown", summary.FinancialHealthIndicators.BalanceTrend)
	assert.NotNil(t, summary.FinancialHealthIndicators.RiskIndicators)
	assert.NotNil(t, summary.PersonalizationContext.ConversationHints)
	assert.Contains(t, summary.PersonalizationContext.RecommendedTopics, "portfolio_diversification")
	assert.Empty(t, summary.DataOverview.DataFrom, "missing from date stays empty")
}

func TestAnalyzeAccountTypeFallbacks(t *testing.T) {
	ds := &fidata.Dataset{
		FIData: []fidata.FIPGroup{{
			FIPID: "FIP-1",
			Data: []fidata.AccountBlock{
				{DecryptedFI: fidata.DecryptedFI{Account: fidata.Account{Type: "current"}}},
				{DecryptedFI: fidata.DecryptedFI{}},
			},
		}},
	}

	summary := AnalyzeAt(ds, analysisClock)
	require.Len(t, summary.Accounts, 2)
	assert.Equal(t, "current", summary.Accounts[0].AccountType)
	assert.Equal(t, "unknown", summary.Accounts[1].AccountType)
}

func TestDiversificationScoreBounds(t *testing.T) {
	accounts := []AccountAnalysis{
		{AccountType: "savings"},
		{AccountType: "current"},
		{AccountType: "recurring_deposit"},
		{AccountType: "term_deposit"},
		{AccountType: "credit_card"},
		{AccountType: "deposit"},
	}
	summary := &Summary{AggregatedInsights: GenerateAggregateInsights(accounts)}
	health := CalculateFinancialHealth(summary)
	assert.Equal(t, 100, health.DiversificationScore, "six types cap at 100")
}

func TestTransactionRegularityThresholds(t *testing.T) {
	build := func(n int) *Summary {
		return &Summary{BehavioralPatterns: BehavioralPatterns{TotalAnalyzedTransactions: n}}
	}

	assert.Equal(t, "high", CalculateFinancialHealth(build(51)).TransactionRegularity)
	assert.Equal(t, "moderate", CalculateFinancialHealth(build(50)).TransactionRegularity)
	assert.Equal(t, "moderate", CalculateFinancialHealth(build(21)).TransactionRegularity)
	assert.Equal(t, "low", CalculateFinancialHealth(build(20)).TransactionRegularity)
}

func TestBalanceTrendFirstIncreasingWins(t *testing.T) {
	summary := &Summary{
		Accounts: []AccountAnalysis{
			{TransactionSummary: TransactionSummary{BalanceStatistics: &BalanceStatistics{Trend: "decreasing"}}},
			{TransactionSummary: TransactionSummary{BalanceStatistics: &BalanceStatistics{Trend: "increasing"}}},
			{TransactionSummary: TransactionSummary{BalanceStatistics: &BalanceStatistics{Trend: "decreasing"}}},
		},
	}

	health := CalculateFinancialHealth(summary)
	assert.Equal(t, "positive", health.BalanceTrend, "increasing overrides earlier decreasing")
	require.Len(t, health.RiskIndicators, 1, "only the decreasing account before the increasing one records risk")
	assert.Contains(t, health.PositiveIndicators, "Balance showing upward trend")
}

func TestUpcomingMaturityWindow(t *testing.T) {
	deposits := []DepositAccount{
		{Type: "term_deposit", MaturityDate: "2023-06-16", MaturityAmount: 1000},  // today: excluded
		{Type: "term_deposit", MaturityDate: "2023-06-17", MaturityAmount: 2000},  // 1 day
		{Type: "term_deposit", MaturityDate: "2023-09-14", MaturityAmount: 3000},  // 90 days
		{Type: "term_deposit", MaturityDate: "2023-09-15", MaturityAmount: 4000},  // 91 days: excluded
		{Type: "term_deposit", MaturityDate: "2023-01-01", MaturityAmount: 5000},  // matured: excluded
		{Type: "term_deposit", MaturityDate: "someday", MaturityAmount: 6000},     // unparseable: excluded
	}

	out := upcomingMaturities(deposits, analysisClock)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].DaysRemaining)
	assert.Equal(t, 90, out[1].DaysRemaining)
}
