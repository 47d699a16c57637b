package core

import (
	"fmt"
	"sort"
	"time"
)

// PeriodGroup is one month bucket of transactions. Items keep the order they
// arrived in; the grouping itself is returned most recent month first.
type PeriodGroup[T Transaction] struct {
	Key   PeriodKey
	Items []T
}

// GroupByPeriod partitions transactions into month buckets keyed by each
// record's current date. Flattening the result reproduces the input exactly.
func GroupByPeriod[T Transaction](txs []T) []PeriodGroup[T] {
	index := make(map[PeriodKey]int)
	var groups []PeriodGroup[T]
	for _, tx := range txs {
		key := PeriodOf(tx.When())
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, PeriodGroup[T]{Key: key})
		}
		groups[i].Items = append(groups[i].Items, tx)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[j].Key.Before(groups[i].Key)
	})
	return groups
}

// Total sums the amounts of a transaction list. Records with an unset or
// non-positive amount contribute nothing; callers that need to tell "no data"
// apart from an explicit zero pair this with HasContributingAmount.
func Total[T Transaction](txs []T) Money {
	var sum Money
	for _, tx := range txs {
		if v := tx.Value(); v.Cents > 0 {
			sum = sum.Add(v)
		}
	}
	return sum
}

// HasContributingAmount reports whether at least one record carries a
// positive amount, letting presentation layers suppress misleading zeros.
func HasContributingAmount[T Transaction](txs []T) bool {
	for _, tx := range txs {
		if tx.Value().Cents > 0 {
			return true
		}
	}
	return false
}

// FilterByYear keeps the groups belonging to the given calendar year.
func FilterByYear[T Transaction](groups []PeriodGroup[T], year int) []PeriodGroup[T] {
	var out []PeriodGroup[T]
	for _, g := range groups {
		if g.Key.Year == year {
			out = append(out, g)
		}
	}
	return out
}

// TimeRange selects one of the supported net-savings windows relative to a
// reference instant. All boundaries are inclusive.
type TimeRange string

const (
	RangeDay       TimeRange = "day"
	RangeWeek      TimeRange = "week"
	RangeMonth     TimeRange = "month"
	RangeSixMonths TimeRange = "sixMonths"
	RangeYear      TimeRange = "year"
)

// ParseTimeRange validates raw range input.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case RangeDay, RangeWeek, RangeMonth, RangeSixMonths, RangeYear:
		return TimeRange(s), nil
	}
	return "", fmt.Errorf("%w: unknown range %q", ErrInvalidInput, s)
}

// Includes reports whether d falls inside the range anchored at now.
// The week window runs from the most recent Monday through now.
func (r TimeRange) Includes(d Date, now time.Time) bool {
	now = now.UTC()
	t := d.Time
	switch r {
	case RangeDay:
		return t.Year() == now.Year() && t.Month() == now.Month() && t.Day() == now.Day()
	case RangeWeek:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -daysSinceMonday)
		return !t.Before(start) && !t.After(now)
	case RangeMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case RangeSixMonths:
		s := now.AddDate(0, -6, 0)
		start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
		return !t.Before(start) && !t.After(now)
	case RangeYear:
		return t.Year() == now.Year()
	}
	return false
}

// NetSavings is total income minus total expenses over the window.
func NetSavings(incomes []Income, expenses []Expense, r TimeRange, now time.Time) Money {
	var net Money
	for _, in := range incomes {
		if in.Amount.Cents > 0 && r.Includes(in.Date, now) {
			net = net.Add(in.Amount)
		}
	}
	for _, e := range expenses {
		if e.Amount.Cents > 0 && r.Includes(e.Date, now) {
			net = net.Sub(e.Amount)
		}
	}
	return net
}

// AverageDailySpending divides a month's expense total by the month's
// calendar length. The bool is false when the period has no contributing
// expenses: an empty month has no daily figure, which is not the same thing
// as spending zero.
func AverageDailySpending(key PeriodKey, expenses []Expense) (Money, bool) {
	var total Money
	for _, e := range expenses {
		if PeriodOf(e.Date) == key && e.Amount.Cents > 0 {
			total = total.Add(e.Amount)
		}
	}
	if total.Cents == 0 {
		return Money{}, false
	}
	return Money{Cents: total.Cents / int64(key.Days())}, true
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category Category
	Total    Money
}

// CategoryBreakdown groups expense totals by category, largest first. Ties
// keep the order the categories were first seen in the input.
func CategoryBreakdown(expenses []Expense) []CategoryTotal {
	index := make(map[Category]int)
	var rows []CategoryTotal
	for _, e := range expenses {
		if e.Amount.Cents <= 0 {
			continue
		}
		i, ok := index[e.Category]
		if !ok {
			i = len(rows)
			index[e.Category] = i
			rows = append(rows, CategoryTotal{Category: e.Category})
		}
		rows[i].Total = rows[i].Total.Add(e.Amount)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total.Cents > rows[j].Total.Cents
	})
	return rows
}
