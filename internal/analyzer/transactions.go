package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
)

// parsedTransaction is a canonical transaction whose timestamp parsed.
type parsedTransaction struct {
	amount    float64
	mode      string
	txnType   string
	narration string
	timestamp time.Time
	balance   float64
	reference string
}

// AnalyzeTransactions computes the statistics block for one account's
// transaction list. Unparseable timestamps exclude a transaction from the
// statistics but it still counts toward the raw total.
func AnalyzeTransactions(transactions []fidata.Transaction) TransactionSummary {
	if len(transactions) == 0 {
		return TransactionSummary{TotalTransactions: 0, Message: "No transactions found"}
	}

	parsed := make([]parsedTransaction, 0, len(transactions))
	for _, txn := range transactions {
		ts, ok := ParseTimestamp(txn.TransactionTimestamp)
		if !ok {
			continue
		}
		parsed = append(parsed, parsedTransaction{
			amount:    safeFloat(txn.Amount),
			mode:      orUnknown(txn.Mode),
			txnType:   orUnknown(txn.Type),
			narration: txn.Narration,
			timestamp: ts,
			balance:   safeFloat(txn.Balance),
			reference: txn.Reference,
		})
	}

	if len(parsed) == 0 {
		return TransactionSummary{
			TotalTransactions: len(transactions),
			Message:           "Could not parse transaction dates",
		}
	}

	// Chronological order; stable so equal timestamps keep input order.
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].timestamp.Before(parsed[j].timestamp)
	})

	first, last := parsed[0], parsed[len(parsed)-1]
	dateRange := &TransactionDateRange{
		Earliest: first.timestamp.Format(time.RFC3339),
		Latest:   last.timestamp.Format(time.RFC3339),
		SpanDays: int(last.timestamp.Sub(first.timestamp).Hours() / 24),
	}

	amounts := make([]float64, len(parsed))
	for i, t := range parsed {
		amounts[i] = t.amount
	}
	stats := amountStatistics(amounts)

	return TransactionSummary{
		TotalTransactions:        len(parsed),
		DateRange:                dateRange,
		AmountStatistics:         stats,
		ByTransactionType:        typeBreakdown(parsed, stats.Total),
		ByPaymentMode:            modeBreakdown(parsed),
		MonthlyBreakdown:         monthlyBreakdown(parsed),
		BalanceStatistics:        balanceStatistics(parsed),
		NotableLargeTransactions: largeTransactions(parsed, stats),
	}
}

func amountStatistics(amounts []float64) *AmountStatistics {
	sum := 0.0
	min := amounts[0]
	max := amounts[0]
	for _, a := range amounts {
		sum += a
		if a < min {
			min = a
		}
		if a > max {
			max = a
		}
	}
	avg := sum / float64(len(amounts))

	return &AmountStatistics{
		Total:   round2(sum),
		Average: round2(avg),
		Min:     round2(min),
		Max:     round2(max),
		StdDev:  round2(sampleStdDev(amounts, avg)),
	}
}

// sampleStdDev is the n-1 standard deviation; 0 for fewer than two points.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func typeBreakdown(parsed []parsedTransaction, grandTotal float64) map[string]TypeBreakdown {
	type acc struct {
		count int
		total float64
	}
	byType := make(map[string]*acc)
	for _, t := range parsed {
		a := byType[t.txnType]
		if a == nil {
			a = &acc{}
			byType[t.txnType] = a
		}
		a.count++
		a.total += t.amount
	}

	out := make(map[string]TypeBreakdown, len(byType))
	for name, a := range byType {
		pct := 0.0
		if grandTotal > 0 {
			pct = round1(a.total / grandTotal * 100)
		}
		out[name] = TypeBreakdown{
			Count:             a.count,
			Total:             round2(a.total),
			Average:           round2(a.total / float64(a.count)),
			PercentageOfTotal: pct,
		}
	}
	return out
}

func modeBreakdown(parsed []parsedTransaction) map[string]ModeBreakdown {
	type acc struct {
		count int
		total float64
	}
	byMode := make(map[string]*acc)
	for _, t := range parsed {
		a := byMode[t.mode]
		if a == nil {
			a = &acc{}
			byMode[t.mode] = a
		}
		a.count++
		a.total += t.amount
	}

	out := make(map[string]ModeBreakdown, len(byMode))
	for name, a := range byMode {
		out[name] = ModeBreakdown{Count: a.count, Total: round2(a.total)}
	}
	return out
}

// monthlyBreakdown is keyed by calendar year-month; the map marshals with
// keys in ascending order.
func monthlyBreakdown(parsed []parsedTransaction) map[string]MonthlyActivity {
	type acc struct {
		count int
		total float64
	}
	byMonth := make(map[string]*acc)
	for _, t := range parsed {
		key := t.timestamp.Format("2006-01")
		a := byMonth[key]
		if a == nil {
			a = &acc{}
			byMonth[key] = a
		}
		a.count++
		a.total += t.amount
	}

	out := make(map[string]MonthlyActivity, len(byMonth))
	for key, a := range byMonth {
		out[key] = MonthlyActivity{Count: a.count, Total: round2(a.total)}
	}
	return out
}

// balanceStatistics tracks the trajectory over strictly positive recorded
// balances; nil when no transaction reported one.
func balanceStatistics(parsed []parsedTransaction) *BalanceStatistics {
	var balances []float64
	for _, t := range parsed {
		if t.balance > 0 {
			balances = append(balances, t.balance)
		}
	}
	if len(balances) == 0 {
		return nil
	}

	first, last := balances[0], balances[len(balances)-1]
	highest, lowest, sum := balances[0], balances[0], 0.0
	for _, b := range balances {
		if b > highest {
			highest = b
		}
		if b < lowest {
			lowest = b
		}
		sum += b
	}

	trend := "stable"
	switch {
	case last > first:
		trend = "increasing"
	case last < first:
		trend = "decreasing"
	}

	return &BalanceStatistics{
		Starting: first,
		Ending:   last,
		Highest:  highest,
		Lowest:   lowest,
		Average:  round2(sum / float64(len(balances))),
		Trend:    trend,
	}
}

// largeTransactions flags amounts above mean + 2*stddev (or above the
// maximum when stddev is 0, which matches nothing). The report keeps the
// first ten matches in chronological order, not the ten largest.
func largeTransactions(parsed []parsedTransaction, stats *AmountStatistics) []LargeTransaction {
	threshold := stats.Max
	if stats.StdDev > 0 {
		threshold = stats.Average + 2*stats.StdDev
	}

	var out []LargeTransaction
	for _, t := range parsed {
		if t.amount <= threshold {
			continue
		}
		out = append(out, LargeTransaction{
			Amount: t.amount,
			Type:   t.txnType,
			Mode:   t.mode,
			Date:   t.timestamp.Format(time.RFC3339),
		})
		if len(out) == 10 {
			break
		}
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "UNKNOWN"
	}
	return s
}
