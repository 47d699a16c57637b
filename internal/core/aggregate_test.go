package core

import (
	"testing"
	"time"
)

func expense(id string, d Date, cents int64, cat Category) Expense {
	return Expense{ID: id, Date: d, Amount: Money{Cents: cents}, Description: "e-" + id, Category: cat}
}

func income(id string, d Date, cents int64) Income {
	return Income{ID: id, Date: d, Amount: Money{Cents: cents}, Description: "i-" + id}
}

func TestGroupByPeriod(t *testing.T) {
	txs := []Expense{
		expense("a", NewDate(2024, time.November, 15), 100, CategoryFood),
		expense("b", NewDate(2024, time.December, 1), 200, CategoryBills),
		expense("c", NewDate(2024, time.November, 2), 300, CategoryFuel),
		expense("d", NewDate(2023, time.November, 2), 400, CategoryFuel),
	}
	groups := GroupByPeriod(txs)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	// Most recent month first.
	wantOrder := []PeriodKey{
		{2024, time.December},
		{2024, time.November},
		{2023, time.November},
	}
	for i, k := range wantOrder {
		if groups[i].Key != k {
			t.Fatalf("group %d key = %v, want %v", i, groups[i].Key, k)
		}
	}
	// Arrival order inside a group.
	nov := groups[1].Items
	if len(nov) != 2 || nov[0].ID != "a" || nov[1].ID != "c" {
		t.Fatalf("november group order broken: %+v", nov)
	}

	// Flattening reconstructs the input set with no loss or duplication.
	seen := make(map[string]int)
	total := 0
	for _, g := range groups {
		for _, tx := range g.Items {
			seen[tx.ID]++
			total++
		}
	}
	if total != len(txs) {
		t.Fatalf("flattened %d items, want %d", total, len(txs))
	}
	for _, tx := range txs {
		if seen[tx.ID] != 1 {
			t.Fatalf("transaction %s appears %d times", tx.ID, seen[tx.ID])
		}
	}
}

func TestGroupByPeriodEmpty(t *testing.T) {
	if groups := GroupByPeriod([]Income(nil)); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
}

func TestTotalAndContribution(t *testing.T) {
	txs := []Expense{
		expense("a", NewDate(2024, time.November, 1), 500, CategoryFood),
		expense("b", NewDate(2024, time.November, 2), 0, CategoryFood), // unset amount
	}
	if got := Total(txs); got.Cents != 500 {
		t.Fatalf("Total = %d, want 500", got.Cents)
	}
	if !HasContributingAmount(txs) {
		t.Fatalf("expected contributing amount")
	}

	empty := []Expense{expense("c", NewDate(2024, time.November, 3), 0, CategoryBills)}
	if got := Total(empty); got.Cents != 0 {
		t.Fatalf("Total = %d, want 0", got.Cents)
	}
	if HasContributingAmount(empty) {
		t.Fatalf("zero-only list must not report a contributing amount")
	}
}

func TestNetSavings(t *testing.T) {
	now := time.Date(2024, time.November, 20, 10, 0, 0, 0, time.UTC)
	incomes := []Income{
		income("salary", NewDate(2024, time.November, 1), 200000),
		income("gift", NewDate(2024, time.December, 1), 50000),
	}
	expenses := []Expense{
		expense("groceries", NewDate(2024, time.November, 15), 50000, CategoryFood),
		expense("old", NewDate(2023, time.March, 1), 99900, CategoryTravel),
	}

	// November window: 2000.00 income - 500.00 expenses = 1500.00.
	if got := NetSavings(incomes, expenses, RangeMonth, now); got.Cents != 150000 {
		t.Fatalf("month net = %d, want 150000", got.Cents)
	}
	// Year window includes the December income.
	if got := NetSavings(incomes, expenses, RangeYear, now); got.Cents != 200000 {
		t.Fatalf("year net = %d, want 200000", got.Cents)
	}
	// Day window sees nothing on the 20th.
	if got := NetSavings(incomes, expenses, RangeDay, now); got.Cents != 0 {
		t.Fatalf("day net = %d, want 0", got.Cents)
	}
}

func TestTimeRangeIncludes(t *testing.T) {
	// 2024-11-20 is a Wednesday; the week window starts Monday 2024-11-18.
	now := time.Date(2024, time.November, 20, 15, 30, 0, 0, time.UTC)
	cases := []struct {
		name string
		r    TimeRange
		d    Date
		want bool
	}{
		{"day same date", RangeDay, NewDate(2024, time.November, 20), true},
		{"day previous date", RangeDay, NewDate(2024, time.November, 19), false},
		{"week monday boundary", RangeWeek, NewDate(2024, time.November, 18), true},
		{"week before monday", RangeWeek, NewDate(2024, time.November, 17), false},
		{"week future day", RangeWeek, NewDate(2024, time.November, 21), false},
		{"month boundary first", RangeMonth, NewDate(2024, time.November, 1), true},
		{"month previous", RangeMonth, NewDate(2024, time.October, 31), false},
		{"six months boundary", RangeSixMonths, NewDate(2024, time.May, 20), true},
		{"six months too old", RangeSixMonths, NewDate(2024, time.May, 19), false},
		{"year january", RangeYear, NewDate(2024, time.January, 1), true},
		{"year previous", RangeYear, NewDate(2023, time.December, 31), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Includes(tc.d, now); got != tc.want {
				t.Errorf("%s.Includes(%s) = %v, want %v", tc.r, tc.d.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestParseTimeRange(t *testing.T) {
	for _, ok := range []string{"day", "week", "month", "sixMonths", "year"} {
		if _, err := ParseTimeRange(ok); err != nil {
			t.Fatalf("ParseTimeRange(%q): %v", ok, err)
		}
	}
	if _, err := ParseTimeRange("decade"); err == nil {
		t.Fatalf("expected error for unknown range")
	}
}

func TestAverageDailySpending(t *testing.T) {
	nov := PeriodKey{2024, time.November}
	expenses := []Expense{
		expense("a", NewDate(2024, time.November, 15), 30000, CategoryFood),
		expense("b", NewDate(2024, time.December, 1), 99999, CategoryBills), // other month
	}
	avg, ok := AverageDailySpending(nov, expenses)
	if !ok {
		t.Fatalf("expected a daily figure")
	}
	if avg.Cents != 1000 { // 300.00 over 30 days
		t.Fatalf("avg = %d, want 1000", avg.Cents)
	}

	// No expenses in the period: no figure, not zero.
	if _, ok := AverageDailySpending(PeriodKey{2024, time.January}, expenses); ok {
		t.Fatalf("empty period must not produce a daily figure")
	}
	// Zero-amount records likewise.
	zeros := []Expense{expense("z", NewDate(2024, time.November, 1), 0, CategoryFood)}
	if _, ok := AverageDailySpending(nov, zeros); ok {
		t.Fatalf("zero total must not produce a daily figure")
	}
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []Expense{
		expense("a", NewDate(2024, time.November, 1), 100, CategoryFood),
		expense("b", NewDate(2024, time.November, 2), 500, CategoryBills),
		expense("c", NewDate(2024, time.November, 3), 400, CategoryFood),
		expense("d", NewDate(2024, time.November, 4), 500, CategoryFuel), // ties with Food
		expense("z", NewDate(2024, time.November, 5), 0, CategoryTravel), // no contribution
	}
	rows := CategoryBreakdown(expenses)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// All three tie at 500; ties keep first-seen order.
	want := []CategoryTotal{
		{CategoryFood, Money{Cents: 500}},
		{CategoryBills, Money{Cents: 500}},
		{CategoryFuel, Money{Cents: 500}},
	}
	for i, w := range want {
		if rows[i] != w {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], w)
		}
	}

	// Breakdown totals sum exactly to the period total.
	var sum int64
	for _, r := range rows {
		sum += r.Total.Cents
	}
	if total := Total(expenses); sum != total.Cents {
		t.Fatalf("breakdown sum %d != total %d", sum, total.Cents)
	}
}

func TestFilterByYear(t *testing.T) {
	groups := GroupByPeriod([]Expense{
		expense("a", NewDate(2024, time.November, 1), 100, CategoryFood),
		expense("b", NewDate(2023, time.May, 1), 200, CategoryFood),
		expense("c", NewDate(2024, time.May, 1), 300, CategoryFood),
	})
	got := FilterByYear(groups, 2024)
	if len(got) != 2 {
		t.Fatalf("got %d groups, want 2", len(got))
	}
	for _, g := range got {
		if g.Key.Year != 2024 {
			t.Fatalf("unexpected year %d", g.Key.Year)
		}
	}
}
