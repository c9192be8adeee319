package paypal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetOperations(t *testing.T) {
	d := Dataset{
		row(TypeCartPayment, StatusCompleted, "A", "10.00", "-0.59"),
		row(TypeCartItem, StatusCompleted, "A", "10.00", "0.00"),
		row(TypeCartPayment, StatusCompleted, "B", "20.00", "-0.88"),
	}

	t.Run("Where keeps matching rows in order", func(t *testing.T) {
		got := d.Where(func(r Record) bool { return r.Type == TypeCartPayment })

		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].Name)
		assert.Equal(t, "B", got[1].Name)
	})

	t.Run("Partition splits without losing rows", func(t *testing.T) {
		matched, rest := d.Partition(func(r Record) bool { return r.Name == "A" })

		assert.Len(t, matched, 2)
		assert.Len(t, rest, 1)
		assert.Equal(t, len(d), len(matched)+len(rest))
	})

	t.Run("GroupBy returns keys in first-appearance order", func(t *testing.T) {
		keys, groups := d.GroupBy(func(r Record) string { return r.Name })

		assert.Equal(t, []string{"A", "B"}, keys)
		assert.Len(t, groups["A"], 2)
		assert.Len(t, groups["B"], 1)
	})

	t.Run("DistinctBy keeps the first occurrence", func(t *testing.T) {
		got := d.DistinctBy(func(r Record) string { return r.Name })

		require.Len(t, got, 2)
		assert.Equal(t, TypeCartPayment, got[0].Type)
	})

	t.Run("sums are signed", func(t *testing.T) {
		assert.True(t, d.SumGross().Equal(dec("40.00")), "gross sum = %s", d.SumGross())
		assert.True(t, d.SumFee().Equal(dec("-1.47")), "fee sum = %s", d.SumFee())
	})
}

func TestBetweenDates(t *testing.T) {
	day := func(d int) Record {
		r := row(TypeCartPayment, StatusCompleted, "A", "1.00", "0.00")
		r.Date = time.Date(2015, 6, d, 0, 0, 0, 0, time.UTC)
		return r
	}
	d := Dataset{day(1), day(15), day(30)}

	t.Run("bounds are inclusive", func(t *testing.T) {
		start := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2015, 6, 15, 0, 0, 0, 0, time.UTC)

		got := d.BetweenDates(&start, &end)

		assert.Len(t, got, 2)
	})

	t.Run("nil bounds are open", func(t *testing.T) {
		start := time.Date(2015, 6, 10, 0, 0, 0, 0, time.UTC)

		assert.Len(t, d.BetweenDates(&start, nil), 2)
		assert.Len(t, d.BetweenDates(nil, &start), 1)
		assert.Len(t, d.BetweenDates(nil, nil), 3)
	})
}
