package appealcase

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadpenalty/appealcore/pkg/errors"
)

func TestNormalizeTicketNumber(t *testing.T) {
	assert.Equal(t, "WK12345678", NormalizeTicketNumber("wk12 345-678"))
	assert.Equal(t, "AB1234", NormalizeTicketNumber("  a b # 1.2;3:4 "))
	assert.Equal(t, "", NormalizeTicketNumber("---"))
}

func TestValidateTicketNumber(t *testing.T) {
	pcn, ok := TicketTypeByKey("pcn")
	require.True(t, ok)

	got, err := ValidateTicketNumber("wk 1234-5678", pcn)
	require.NoError(t, err)
	assert.Equal(t, "WK12345678", got)

	_, err = ValidateTicketNumber("12345", pcn)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))

	_, err = ValidateTicketNumber("  --- ", pcn)
	assert.True(t, errors.IsValidation(err))
}

func TestNormalizeRegistration(t *testing.T) {
	got, err := NormalizeRegistration(" ab12 cde ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CDE", got)

	_, err = NormalizeRegistration("ab1")
	assert.True(t, errors.IsValidation(err))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"70", 70},
		{"£65.50", 65.5},
		{"the fine is 130 pounds (reduced 65)", 130},
		{"35.00", 35},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseAmount("no idea")
	assert.True(t, errors.IsValidation(err))
}

func TestParseDate_CanonicalISO(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5/3/2024", "2024-03-05"},
		{"05/03/2024", "2024-03-05"},
		{"15-11-2023", "2023-11-15"},
		{"1/1/2024", "2024-01-01"},
		{"issued on 28/2/2024 at noon", "2024-02-28"},
		{"29/2/2024", "2024-02-29"}, // leap year
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

// Every valid single- or double-digit day/month combination must come out as
// canonical ISO.
func TestParseDate_AllValidCombinations(t *testing.T) {
	for month := 1; month <= 12; month++ {
		for _, day := range []int{1, 9, 10, 28} {
			in := fmt.Sprintf("%d/%d/2023", day, month)
			want := fmt.Sprintf("2023-%02d-%02d", month, day)
			got, err := ParseDate(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, in := range []string{"31/2/2024", "0/1/2024", "32/1/2024", "1/13/2024", "29/2/2023", "date unknown", "2024-03-05"} {
		_, err := ParseDate(in)
		assert.Error(t, err, in)
		assert.True(t, errors.IsValidation(err), in)
	}
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 14, DaysSince("2024-05-18", now))
	assert.Equal(t, 0, DaysSince("2024-07-01", now)) // future dates clamp to zero
	assert.Equal(t, -1, DaysSince("not-a-date", now))
}

func TestReasonLabels(t *testing.T) {
	assert.Equal(t, "Invalid or unclear signage", ReasonLabels["1"])
	assert.Len(t, ReasonLabels, 7)
}
