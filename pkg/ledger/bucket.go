package ledger

// PrincipalDays are the reference days of the month the dashboard groups
// recurring items under. Anything due on another day falls into the
// "other dates" bucket.
var PrincipalDays = []int{5, 10, 15, 20, 25, 30}

// OtherDatesDay is the sentinel day of the catch-all bucket.
const OtherDatesDay = 0

// Bucket groups the items sharing one recurring day with their summed amount.
type Bucket[T any] struct {
	Day   int     `json:"dia"`
	Items []T     `json:"itens"`
	Total float64 `json:"total"`
}

// GroupByDay partitions items by their day-of-month into one bucket per
// principal day plus, when non-empty, a trailing "other dates" bucket.
// Principal buckets with no members are omitted. The same pass serves both
// fixed bills and income sources; callers supply the field accessors.
func GroupByDay[T any](items []T, day func(T) int, amount func(T) float64) []Bucket[T] {
	var buckets []Bucket[T]
	for _, d := range PrincipalDays {
		b := Bucket[T]{Day: d}
		for _, it := range items {
			if day(it) == d {
				b.Items = append(b.Items, it)
				b.Total += amount(it)
			}
		}
		if len(b.Items) > 0 {
			buckets = append(buckets, b)
		}
	}
	other := Bucket[T]{Day: OtherDatesDay}
	for _, it := range items {
		if !isPrincipalDay(day(it)) {
			other.Items = append(other.Items, it)
			other.Total += amount(it)
		}
	}
	if len(other.Items) > 0 {
		buckets = append(buckets, other)
	}
	return buckets
}

func isPrincipalDay(d int) bool {
	for _, p := range PrincipalDays {
		if d == p {
			return true
		}
	}
	return false
}

// NetBalance is total income minus total fixed bills. It is not floored at
// zero: a negative result means the bills outweigh the income.
func NetBalance(totalIncome, totalBills float64) float64 {
	return totalIncome - totalBills
}

// UpcomingKey orders recurring days by distance from today's day-of-month:
// today and later days sort first, earlier days wrap to the next month.
func UpcomingKey(day, today int) int {
	if day >= today {
		return day
	}
	return day + 31
}
