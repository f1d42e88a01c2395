package analyzer

// Summary is the five-part analysis produced for one canonical dataset. It is
// a plain nested structure: the prompt-construction layer serializes it
// without any knowledge of how it was computed.
type Summary struct {
	DataOverview              DataOverview           `json:"data_overview"`
	Accounts                  []AccountAnalysis      `json:"accounts"`
	AggregatedInsights        AggregatedInsights     `json:"aggregated_insights"`
	BehavioralPatterns        BehavioralPatterns     `json:"behavioral_patterns"`
	FinancialHealthIndicators HealthIndicators       `json:"financial_health_indicators"`
	PersonalizationContext    PersonalizationContext `json:"personalization_context"`
}

// DataOverview carries high-level metadata about the analyzed dataset.
type DataOverview struct {
	ConsentID      string `json:"consent_id"`
	DataSessionID  string `json:"data_session_id"`
	DataFrom       string `json:"data_from,omitempty"`
	DataTo         string `json:"data_to,omitempty"`
	DataSpanDays   *int   `json:"data_span_days,omitempty"`
	TotalFIPs      int    `json:"total_fips"`
	FetchTimestamp string `json:"fetch_timestamp,omitempty"`
}

// AccountAnalysis is the per-account slice of the summary.
type AccountAnalysis struct {
	AccountType        string             `json:"account_type"`
	MaskedAccount      string             `json:"masked_account"`
	FIPID              string             `json:"fip_id"`
	HolderInfo         *HolderInfo        `json:"holder_info"`
	AccountDetails     AccountDetails     `json:"account_details"`
	TransactionSummary TransactionSummary `json:"transaction_summary"`
}

// HolderInfo keeps minimal holder PII: a display name plus two flags.
type HolderInfo struct {
	Name         string `json:"name,omitempty"`
	HasNominee   bool   `json:"has_nominee"`
	KYCCompliant bool   `json:"kyc_compliant"`
}

// AccountDetails holds the type-specific fields of one account. Only the
// group matching the account type is populated.
type AccountDetails struct {
	Branch      string `json:"branch"`
	IFSC        string `json:"ifsc"`
	OpeningDate string `json:"opening_date"`

	// Deposit-like accounts.
	PrincipalAmount      *float64 `json:"principal_amount,omitempty"`
	CurrentValue         *float64 `json:"current_value,omitempty"`
	MaturityAmount       *float64 `json:"maturity_amount,omitempty"`
	MaturityDate         string   `json:"maturity_date,omitempty"`
	InterestRate         *float64 `json:"interest_rate,omitempty"`
	CompoundingFrequency string   `json:"compounding_frequency,omitempty"`
	TenureMonths         *int     `json:"tenure_months,omitempty"`
	RecurringAmount      *float64 `json:"recurring_amount,omitempty"`

	// Transacting accounts (savings, current).
	CurrentBalance   *float64 `json:"current_balance,omitempty"`
	AvailableBalance *float64 `json:"available_balance,omitempty"`
	Currency         string   `json:"currency,omitempty"`
	Status           string   `json:"status,omitempty"`

	// Credit cards.
	CreditLimit     *float64 `json:"credit_limit,omitempty"`
	AvailableCredit *float64 `json:"available_credit,omitempty"`
	CurrentDue      *float64 `json:"current_due,omitempty"`
	TotalDue        *float64 `json:"total_due,omitempty"`
	DueDate         string   `json:"due_date,omitempty"`
	RewardPoints    *float64 `json:"reward_points,omitempty"`
}

// TransactionSummary is the statistics block for one account's ledger.
// When nothing parses, only TotalTransactions and Message are set; that is a
// degraded result, not an error.
type TransactionSummary struct {
	TotalTransactions        int                          `json:"total_transactions"`
	Message                  string                       `json:"message,omitempty"`
	DateRange                *TransactionDateRange        `json:"date_range,omitempty"`
	AmountStatistics         *AmountStatistics            `json:"amount_statistics,omitempty"`
	ByTransactionType        map[string]TypeBreakdown     `json:"by_transaction_type,omitempty"`
	ByPaymentMode            map[string]ModeBreakdown     `json:"by_payment_mode,omitempty"`
	MonthlyBreakdown         map[string]MonthlyActivity   `json:"monthly_breakdown,omitempty"`
	BalanceStatistics        *BalanceStatistics           `json:"balance_statistics,omitempty"`
	NotableLargeTransactions []LargeTransaction           `json:"notable_large_transactions,omitempty"`
}

type TransactionDateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
	SpanDays int    `json:"span_days"`
}

type AmountStatistics struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	StdDev  float64 `json:"std_dev"`
}

type TypeBreakdown struct {
	Count             int     `json:"count"`
	Total             float64 `json:"total"`
	Average           float64 `json:"average"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

type ModeBreakdown struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

type MonthlyActivity struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// BalanceStatistics tracks the running balance over transactions that
// reported a strictly positive balance, in chronological order.
type BalanceStatistics struct {
	Starting float64 `json:"starting"`
	Ending   float64 `json:"ending"`
	Highest  float64 `json:"highest"`
	Lowest   float64 `json:"lowest"`
	Average  float64 `json:"average"`
	Trend    string  `json:"trend"` // "increasing", "decreasing" or "stable"
}

type LargeTransaction struct {
	Amount float64 `json:"amount"`
	Type   string  `json:"type"`
	Mode   string  `json:"mode"`
	Date   string  `json:"date"`
}

// AggregatedInsights rolls up all per-account analyses.
type AggregatedInsights struct {
	TotalAccounts             int              `json:"total_accounts"`
	AccountTypeDistribution   map[string]int   `json:"account_type_distribution"`
	EstimatedTotalValue       float64          `json:"estimated_total_value"`
	TotalTransactionsAnalyzed int              `json:"total_transactions_analyzed"`
	DepositAccounts           []DepositAccount `json:"deposit_accounts"`
	HasNomineeRegistered      bool             `json:"has_nominee_registered"`
}

// DepositAccount tracks a recurring/term deposit for maturity planning.
type DepositAccount struct {
	Type           string  `json:"type"`
	MaturityDate   string  `json:"maturity_date,omitempty"`
	MaturityAmount float64 `json:"maturity_amount"`
	InterestRate   float64 `json:"interest_rate"`
}

// BehavioralPatterns describes temporal and channel habits across the union
// of all accounts' transactions.
type BehavioralPatterns struct {
	Message                   string             `json:"message,omitempty"`
	MostActiveWeekday         string             `json:"most_active_weekday,omitempty"`
	WeekdayDistribution       []WeekdayActivity  `json:"weekday_distribution,omitempty"`
	PeakTransactionHours      []HourActivity     `json:"peak_transaction_hours,omitempty"`
	RecurringPaymentDays      []int              `json:"recurring_payment_days,omitempty"`
	PreferredPaymentMode      string             `json:"preferred_payment_mode,omitempty"`
	PaymentModeDistribution   map[string]float64 `json:"payment_mode_distribution,omitempty"`
	TotalAnalyzedTransactions int                `json:"total_analyzed_transactions"`
}

// WeekdayActivity is one entry of the Monday-first weekday distribution.
type WeekdayActivity struct {
	Day         string  `json:"day"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

type HourActivity struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// HealthIndicators is the bounded, explainable health signal.
type HealthIndicators struct {
	DiversificationScore  int      `json:"diversification_score"`
	TransactionRegularity string   `json:"transaction_regularity"`
	BalanceTrend          string   `json:"balance_trend"`
	RiskIndicators        []string `json:"risk_indicators"`
	PositiveIndicators    []string `json:"positive_indicators"`
}

// PersonalizationContext is the conversation-ready slice of the summary,
// consumed by the prompt builder.
type PersonalizationContext struct {
	UserProfile       UserProfile       `json:"user_profile"`
	FinancialSnapshot FinancialSnapshot `json:"financial_snapshot"`
	ConversationHints []string          `json:"conversation_hints"`
	RecommendedTopics []string          `json:"recommended_topics"`
	AvoidTopics       []string          `json:"avoid_topics"`
}

type UserProfile struct {
	KYCStatus     string `json:"kyc_status,omitempty"`
	NomineeStatus string `json:"nominee_status,omitempty"`
}

type FinancialSnapshot struct {
	TotalAccounts           int                `json:"total_accounts"`
	EstimatedPortfolioValue float64            `json:"estimated_portfolio_value"`
	PrimaryAccountTypes     []string           `json:"primary_account_types"`
	HasDeposits             bool               `json:"has_deposits"`
	PreferredPaymentMode    string             `json:"preferred_payment_mode,omitempty"`
	MostActiveDay           string             `json:"most_active_day,omitempty"`
	HealthScore             int                `json:"health_score"`
	UpcomingMaturities      []UpcomingMaturity `json:"upcoming_maturities,omitempty"`
}

type UpcomingMaturity struct {
	Type          string  `json:"type"`
	DaysRemaining int     `json:"days_remaining"`
	Amount        float64 `json:"amount"`
}
