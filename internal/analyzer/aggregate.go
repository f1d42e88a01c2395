package analyzer

import "fmt"

// GenerateAggregateInsights rolls up all per-account analyses.
func GenerateAggregateInsights(accounts []AccountAnalysis) AggregatedInsights {
	insights := AggregatedInsights{
		AccountTypeDistribution: make(map[string]int),
		DepositAccounts:         []DepositAccount{},
	}

	totalValue := 0.0
	for _, acc := range accounts {
		insights.AccountTypeDistribution[acc.AccountType]++

		details := acc.AccountDetails
		if v := deref(details.CurrentValue); v != 0 {
			totalValue += v
		} else if b := deref(details.CurrentBalance); b != 0 {
			totalValue += b
		}

		insights.TotalTransactionsAnalyzed += acc.TransactionSummary.TotalTransactions

		if acc.AccountType == "recurring_deposit" || acc.AccountType == "term_deposit" {
			insights.DepositAccounts = append(insights.DepositAccounts, DepositAccount{
				Type:           acc.AccountType,
				MaturityDate:   details.MaturityDate,
				MaturityAmount: deref(details.MaturityAmount),
				InterestRate:   deref(details.InterestRate),
			})
		}

		if acc.HolderInfo != nil && acc.HolderInfo.HasNominee {
			insights.HasNomineeRegistered = true
		}
	}

	insights.TotalAccounts = len(accounts)
	insights.EstimatedTotalValue = round2(totalValue)
	return insights
}

// CalculateFinancialHealth derives the bounded health signal from the
// aggregated insights, behavioral patterns and per-account trends.
func CalculateFinancialHealth(summary *Summary) HealthIndicators {
	indicators := HealthIndicators{
		TransactionRegularity: "unknown",
		BalanceTrend:          "unknown",
		RiskIndicators:        []string{},
		PositiveIndicators:    []string{},
	}

	insights := summary.AggregatedInsights

	score := len(insights.AccountTypeDistribution) * 20
	if score > 100 {
		score = 100
	}
	indicators.DiversificationScore = score

	if insights.HasNomineeRegistered {
		indicators.PositiveIndicators = append(indicators.PositiveIndicators, "Nominee registered for accounts")
	}

	if len(insights.DepositAccounts) > 0 {
		indicators.PositiveIndicators = append(indicators.PositiveIndicators,
			fmt.Sprintf("Active savings in %d deposit account(s)", len(insights.DepositAccounts)))
	}

	switch total := summary.BehavioralPatterns.TotalAnalyzedTransactions; {
	case total > 50:
		indicators.TransactionRegularity = "high"
		indicators.PositiveIndicators = append(indicators.PositiveIndicators, "Regular transaction activity")
	case total > 20:
		indicators.TransactionRegularity = "moderate"
	default:
		indicators.TransactionRegularity = "low"
	}

	// Accounts are scanned in stored order; the first increasing trend wins
	// and stops the scan, while decreasing trends seen before it each add a
	// risk indicator.
	for _, acc := range summary.Accounts {
		stats := acc.TransactionSummary.BalanceStatistics
		if stats == nil {
			continue
		}
		if stats.Trend == "increasing" {
			indicators.BalanceTrend = "positive"
			indicators.PositiveIndicators = append(indicators.PositiveIndicators, "Balance showing upward trend")
			break
		}
		if stats.Trend == "decreasing" {
			indicators.BalanceTrend = "negative"
			indicators.RiskIndicators = append(indicators.RiskIndicators, "Balance showing downward trend")
		}
	}

	return indicators
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
