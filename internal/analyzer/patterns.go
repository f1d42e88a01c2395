package analyzer

import (
	"sort"
	"time"

	"github.com/shettydevesh/zenvestAi-backend/internal/fidata"
)

// weekdayNames is Monday-first, matching the 0=Monday..6=Sunday convention
// used throughout the behavioral analysis.
var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// AnalyzeBehavioralPatterns detects temporal and channel habits from the
// union of all accounts' transactions. When nothing parses, the result is a
// diagnostic message rather than a partial structure.
func AnalyzeBehavioralPatterns(all []fidata.Transaction) BehavioralPatterns {
	if len(all) == 0 {
		return BehavioralPatterns{Message: "No transactions to analyze"}
	}

	type event struct {
		amount     float64
		mode       string
		weekday    int
		hour       int
		dayOfMonth int
	}

	var events []event
	for _, txn := range all {
		ts, ok := ParseTimestamp(txn.TransactionTimestamp)
		if !ok {
			continue
		}
		events = append(events, event{
			amount:     safeFloat(txn.Amount),
			mode:       orUnknown(txn.Mode),
			weekday:    mondayFirst(ts.Weekday()),
			hour:       ts.Hour(),
			dayOfMonth: ts.Day(),
		})
	}

	if len(events) == 0 {
		return BehavioralPatterns{Message: "Could not parse transactions"}
	}

	var weekdayCounts [7]int
	var weekdayAmounts [7]float64
	for _, e := range events {
		weekdayCounts[e.weekday]++
		weekdayAmounts[e.weekday] += e.amount
	}

	// Highest count wins; ties resolve to the earlier weekday.
	mostActive := 0
	for day := 1; day < 7; day++ {
		if weekdayCounts[day] > weekdayCounts[mostActive] {
			mostActive = day
		}
	}

	distribution := make([]WeekdayActivity, 7)
	for day := 0; day < 7; day++ {
		distribution[day] = WeekdayActivity{
			Day:         weekdayNames[day],
			Count:       weekdayCounts[day],
			TotalAmount: round2(weekdayAmounts[day]),
		}
	}

	hourCounts := make(map[int]int)
	dayCounts := make(map[int]int)
	modeCounts := make(map[string]int)
	var modeOrder []string
	for _, e := range events {
		hourCounts[e.hour]++
		dayCounts[e.dayOfMonth]++
		if _, seen := modeCounts[e.mode]; !seen {
			modeOrder = append(modeOrder, e.mode)
		}
		modeCounts[e.mode]++
	}

	// Any day of month hit by three or more transactions is a candidate
	// recurring-payment day.
	var frequentDays []int
	for day, count := range dayCounts {
		if count >= 3 {
			frequentDays = append(frequentDays, day)
		}
	}
	sort.Ints(frequentDays)

	total := len(events)
	preferred := modeOrder[0]
	for _, mode := range modeOrder[1:] {
		if modeCounts[mode] > modeCounts[preferred] {
			preferred = mode
		}
	}
	modePercentages := make(map[string]float64, len(modeCounts))
	for mode, count := range modeCounts {
		modePercentages[mode] = round1(float64(count) / float64(total) * 100)
	}

	return BehavioralPatterns{
		MostActiveWeekday:         weekdayNames[mostActive],
		WeekdayDistribution:       distribution,
		PeakTransactionHours:      peakHours(hourCounts),
		RecurringPaymentDays:      frequentDays,
		PreferredPaymentMode:      preferred,
		PaymentModeDistribution:   modePercentages,
		TotalAnalyzedTransactions: total,
	}
}

// peakHours returns the top three hours by count, descending, ties broken by
// hour value ascending.
func peakHours(hourCounts map[int]int) []HourActivity {
	hours := make([]HourActivity, 0, len(hourCounts))
	for hour := 0; hour < 24; hour++ {
		if count, ok := hourCounts[hour]; ok {
			hours = append(hours, HourActivity{Hour: hour, Count: count})
		}
	}
	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].Count > hours[j].Count
	})
	if len(hours) > 3 {
		hours = hours[:3]
	}
	return hours
}

// mondayFirst converts Go's Sunday-first weekday to 0=Monday..6=Sunday.
func mondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
