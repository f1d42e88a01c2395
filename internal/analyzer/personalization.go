package analyzer

import (
	"fmt"
	"time"
)

// GeneratePersonalizationContext translates the computed summary into
// conversation-ready hints for the downstream prompt. The hint rules are
// evaluated independently; several can fire at once. now is the single
// per-invocation clock read used for the maturity window.
func GeneratePersonalizationContext(summary *Summary, now time.Time) PersonalizationContext {
	context := PersonalizationContext{
		ConversationHints: []string{},
		RecommendedTopics: []string{},
		AvoidTopics:       []string{},
	}

	// Profile strings come from the first account's holder info only.
	if len(summary.Accounts) > 0 {
		var holder HolderInfo
		if summary.Accounts[0].HolderInfo != nil {
			holder = *summary.Accounts[0].HolderInfo
		}
		context.UserProfile.KYCStatus = "pending"
		if holder.KYCCompliant {
			context.UserProfile.KYCStatus = "compliant"
		}
		context.UserProfile.NomineeStatus = "not_registered"
		if holder.HasNominee {
			context.UserProfile.NomineeStatus = "registered"
		}
	}

	insights := summary.AggregatedInsights
	health := summary.FinancialHealthIndicators
	patterns := summary.BehavioralPatterns

	context.FinancialSnapshot = FinancialSnapshot{
		TotalAccounts:           insights.TotalAccounts,
		EstimatedPortfolioValue: insights.EstimatedTotalValue,
		PrimaryAccountTypes:     primaryAccountTypes(summary.Accounts),
		HasDeposits:             len(insights.DepositAccounts) > 0,
		PreferredPaymentMode:    patterns.PreferredPaymentMode,
		MostActiveDay:           patterns.MostActiveWeekday,
		HealthScore:             health.DiversificationScore,
	}

	if !insights.HasNomineeRegistered {
		context.ConversationHints = append(context.ConversationHints,
			"User hasn't registered nominees - could benefit from estate planning discussion")
		context.RecommendedTopics = append(context.RecommendedTopics, "nominee_registration")
	}

	if health.DiversificationScore < 40 {
		context.ConversationHints = append(context.ConversationHints,
			"Low diversification - may benefit from investment diversification advice")
		context.RecommendedTopics = append(context.RecommendedTopics, "portfolio_diversification")
	}

	maturities := upcomingMaturities(insights.DepositAccounts, now)
	if len(maturities) > 0 {
		context.ConversationHints = append(context.ConversationHints,
			fmt.Sprintf("%d deposit(s) maturing within 90 days", len(maturities)))
		context.RecommendedTopics = append(context.RecommendedTopics, "reinvestment_options")
		context.FinancialSnapshot.UpcomingMaturities = maturities
	}

	if health.BalanceTrend == "negative" {
		context.ConversationHints = append(context.ConversationHints,
			"Balance trend is negative - user might benefit from budgeting tips")
		context.RecommendedTopics = append(context.RecommendedTopics, "expense_management")
	}

	if len(health.RiskIndicators) > 0 {
		context.AvoidTopics = append(context.AvoidTopics, "aggressive_investments")
	}

	return context
}

// upcomingMaturities keeps deposits maturing within the next 90 days,
// exclusive of already-matured or same-day maturities.
func upcomingMaturities(deposits []DepositAccount, now time.Time) []UpcomingMaturity {
	var out []UpcomingMaturity
	for _, dep := range deposits {
		maturity, ok := ParseTimestamp(dep.MaturityDate)
		if !ok {
			continue
		}
		days := int(maturity.UTC().Sub(now.UTC()).Hours() / 24)
		if days > 0 && days <= 90 {
			out = append(out, UpcomingMaturity{
				Type:          dep.Type,
				DaysRemaining: days,
				Amount:        dep.MaturityAmount,
			})
		}
	}
	return out
}

// primaryAccountTypes lists distinct account types in first-encounter order.
func primaryAccountTypes(accounts []AccountAnalysis) []string {
	seen := make(map[string]bool)
	types := []string{}
	for _, acc := range accounts {
		if !seen[acc.AccountType] {
			seen[acc.AccountType] = true
			types = append(types, acc.AccountType)
		}
	}
	return types
}
