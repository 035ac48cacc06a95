package timesheet

import (
	"testing"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseNumericOrZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8", "8"},
		{"7.5", "7.5"},
		{" 2.25 ", "2.25"},
		{"7.5 hrs", "7.5"},
		{"-1", "-1"},
		{"+3", "3"},
		{".5", "0.5"},
		{"3.", "3"},
		{"1e2", "100"},
		{"", "0"},
		{"abc", "0"},
		{"Infinity", "0"},
		{"NaN", "0"},
		{"1e999", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseNumericOrZero(tt.in)
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRowTotal(t *testing.T) {
	assert.True(t, RowTotal([]string{"1", "", "2.5", "abc"}).Equal(dec("3.5")))
	assert.True(t, RowTotal(nil).IsZero())
	assert.True(t, RowTotal([]string{"0.1", "0.2"}).Equal(dec("0.3")))
}

func TestGrandAndColumnTotals(t *testing.T) {
	groups := []timesheet.EmployeeGroup{
		{Name: "Ann", Jobs: []timesheet.Job{
			{DayValues: []string{"8", "", "8"}},
			{DayValues: []string{"1", "1", ""}},
		}},
		{Name: "Bob", Jobs: []timesheet.Job{
			{DayValues: []string{"", "7.5", "x"}},
		}},
	}

	assert.True(t, GrandTotal(groups).Equal(dec("25.5")))

	cols := ColumnTotals(groups, 3)
	require.Len(t, cols, 3)
	assert.True(t, cols[0].Equal(dec("9")))
	assert.True(t, cols[1].Equal(dec("8.5")))
	assert.True(t, cols[2].Equal(dec("8")))

	totals := Totals(groups, 3)
	require.Len(t, totals.Rows, 2)
	require.Len(t, totals.Rows[0], 2)
	assert.True(t, totals.Rows[0][0].Equal(dec("16")))
	assert.True(t, totals.Rows[1][0].Equal(dec("7.5")))
	assert.True(t, totals.Grand.Equal(dec("25.5")))

	assert.True(t, GrandTotal(nil).IsZero())
	assert.Empty(t, ColumnTotals(nil, 0))
}
