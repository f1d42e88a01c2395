package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
)

func txn(ts, amount, txnType, mode, balance string) fidata.Transaction {
	return fidata.Transaction{
		TransactionTimestamp: ts,
		Amount:               amount,
		Type:                 txnType,
		Mode:                 mode,
		Balance:              balance,
	}
}

func TestAnalyzeTransactionsEmpty(t *testing.T) {
	summary := AnalyzeTransactions(nil)
	assert.Equal(t, 0, summary.TotalTransactions)
	assert.Equal(t, "No transactions found", summary.Message)
	assert.Nil(t, summary.AmountStatistics)
}

func TestAnalyzeTransactionsUnparseableDates(t *testing.T) {
	summary := AnalyzeTransactions([]fidata.Transaction{
		txn("01/06/2023", "100", "CREDIT", "UPI", ""),
		txn("yesterday", "200", "DEBIT", "UPI", ""),
	})
	assert.Equal(t, 2, summary.TotalTransactions)
	assert.Equal(t, "Could not parse transaction dates", summary.Message)
	assert.Nil(t, summary.DateRange)
}

func TestAnalyzeTransactionsSingle(t *testing.T) {
	summary := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "500", "CREDIT", "UPI", "10000"),
	})

	require.NotNil(t, summary.AmountStatistics)
	assert.Equal(t, 1, summary.TotalTransactions)
	assert.Equal(t, 500.0, summary.AmountStatistics.Total)
	assert.Equal(t, 500.0, summary.AmountStatistics.Average)
	assert.Equal(t, 0.0, summary.AmountStatistics.StdDev, "single point has no spread")
	assert.Empty(t, summary.NotableLargeTransactions, "zero stddev must flag nothing")
	assert.Equal(t, 0, summary.DateRange.SpanDays)
}

func TestAnalyzeTransactionsTypeBreakdown(t *testing.T) {
	summary := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "100", "CREDIT", "UPI", ""),
		txn("2023-06-02T10:00:00", "300", "CREDIT", "UPI", ""),
		txn("2023-06-03T10:00:00", "600", "DEBIT", "CARD", ""),
	})

	require.Len(t, summary.ByTransactionType, 2)
	credit := summary.ByTransactionType["CREDIT"]
	debit := summary.ByTransactionType["DEBIT"]

	assert.Equal(t, 2, credit.Count)
	assert.Equal(t, 400.0, credit.Total)
	assert.Equal(t, 200.0, credit.Average)
	assert.Equal(t, 40.0, credit.PercentageOfTotal)
	assert.Equal(t, 60.0, debit.PercentageOfTotal)

	// Per-type totals reassemble the grand total.
	assert.Equal(t, summary.AmountStatistics.Total, credit.Total+debit.Total)

	require.Len(t, summary.ByPaymentMode, 2)
	assert.Equal(t, 2, summary.ByPaymentMode["UPI"].Count)
	assert.Equal(t, 600.0, summary.ByPaymentMode["CARD"].Total)
}

func TestAnalyzeTransactionsMalformedAmountCountsAsZero(t *testing.T) {
	summary := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "not-a-number", "CREDIT", "UPI", ""),
		txn("2023-06-02T10:00:00", "100", "CREDIT", "UPI", ""),
	})

	assert.Equal(t, 2, summary.TotalTransactions, "malformed amount still counts")
	assert.Equal(t, 100.0, summary.AmountStatistics.Total)
	assert.Equal(t, 0.0, summary.AmountStatistics.Min)
}

func TestAnalyzeTransactionsMonthlyBreakdown(t *testing.T) {
	var txns []fidata.Transaction
	for month := 1; month <= 12; month++ {
		for day := 1; day <= 5; day++ {
			ts := fmt.Sprintf("2023-%02d-%02dT09:00:00", month, day)
			txns = append(txns, txn(ts, "100", "DEBIT", "UPI", ""))
		}
	}

	summary := AnalyzeTransactions(txns)
	require.Len(t, summary.MonthlyBreakdown, 12)
	jan := summary.MonthlyBreakdown["2023-01"]
	assert.Equal(t, 5, jan.Count)
	assert.Equal(t, 500.0, jan.Total)
	assert.Equal(t, 60, summary.TotalTransactions)
}

func TestAnalyzeTransactionsBalanceTrend(t *testing.T) {
	up := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "100", "CREDIT", "UPI", "1000"),
		txn("2023-06-02T10:00:00", "100", "CREDIT", "UPI", "2000"),
	})
	require.NotNil(t, up.BalanceStatistics)
	assert.Equal(t, "increasing", up.BalanceStatistics.Trend)
	assert.Equal(t, 1000.0, up.BalanceStatistics.Starting)
	assert.Equal(t, 2000.0, up.BalanceStatistics.Ending)

	down := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "100", "DEBIT", "UPI", "2000"),
		txn("2023-06-02T10:00:00", "100", "DEBIT", "UPI", "1000"),
	})
	assert.Equal(t, "decreasing", down.BalanceStatistics.Trend)

	flat := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "100", "DEBIT", "UPI", "1500"),
		txn("2023-06-02T10:00:00", "100", "CREDIT", "UPI", "1500"),
	})
	assert.Equal(t, "stable", flat.BalanceStatistics.Trend)

	none := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-01T10:00:00", "100", "DEBIT", "UPI", ""),
	})
	assert.Nil(t, none.BalanceStatistics, "no positive balances reported")
}

func TestAnalyzeTransactionsLargeOutliers(t *testing.T) {
	var txns []fidata.Transaction
	for day := 1; day <= 20; day++ {
		ts := fmt.Sprintf("2023-06-%02dT10:00:00", day)
		txns = append(txns, txn(ts, "100", "DEBIT", "UPI", ""))
	}
	txns = append(txns, txn("2023-06-25T10:00:00", "10000", "DEBIT", "NEFT", ""))

	summary := AnalyzeTransactions(txns)
	require.Len(t, summary.NotableLargeTransactions, 1)
	large := summary.NotableLargeTransactions[0]
	assert.Equal(t, 10000.0, large.Amount)
	assert.Equal(t, "NEFT", large.Mode)
}

func TestAnalyzeTransactionsSortsChronologically(t *testing.T) {
	summary := AnalyzeTransactions([]fidata.Transaction{
		txn("2023-06-10T10:00:00", "100", "DEBIT", "UPI", "500"),
		txn("2023-06-01T10:00:00", "100", "CREDIT", "UPI", "900"),
	})

	assert.Equal(t, "2023-06-01T10:00:00Z", summary.DateRange.Earliest)
	assert.Equal(t, "2023-06-10T10:00:00Z", summary.DateRange.Latest)
	assert.Equal(t, 9, summary.DateRange.SpanDays)
	// Balance order follows time, not input order.
	assert.Equal(t, 900.0, summary.BalanceStatistics.Starting)
	assert.Equal(t, "decreasing", summary.BalanceStatistics.Trend)
}
