package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, Date{Year: 2024, Month: 1, Day: 15}, date)
	})

	t.Run("Timestamp is truncated", func(t *testing.T) {
		date, err := ParseDate("2025-03-01T00:00:00Z")
		assert.NoError(t, err)
		assert.Equal(t, "2025-03-01", date.String())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date format")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "month must be between 1 and 12")
	})

	t.Run("Day past end of month", func(t *testing.T) {
		_, err := ParseDate("2023-02-29")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "day must be between 1 and 28")
	})
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    int
		expected int
	}{
		{2024, 1, 31},
		{2024, 2, 29},
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 12, 31},
		{2000, 2, 29},
		{1900, 2, 28},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := MustParseDate("2025-01-31")

	assert.Equal(t, "2025-02-01", d.AddDays(1).String())
	assert.Equal(t, "2025-01-24", d.AddDays(-7).String())
	assert.Equal(t, "2025-01-01", d.FirstOfMonth().String())
	assert.Equal(t, 9, MustParseDate("2025-01-01").DaysUntil(MustParseDate("2025-01-10")))
	assert.Equal(t, -1, MustParseDate("2025-01-01").DaysUntil(MustParseDate("2024-12-31")))
	assert.True(t, MustParseDate("2024-12-31").Before(MustParseDate("2025-01-01")))
	assert.True(t, MustParseDate("2025-01-02").After(MustParseDate("2025-01-01")))
	assert.Equal(t, 0, d.Compare(MustParseDate("2025-01-31")))
}

func TestDate_JSON(t *testing.T) {
	t.Run("Marshal", func(t *testing.T) {
		data, err := json.Marshal(struct {
			A Date `json:"a"`
			B Date `json:"b"`
		}{A: MustParseDate("2025-01-10")})
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":"2025-01-10","b":null}`, string(data))
	})

	t.Run("Unmarshal empty and null", func(t *testing.T) {
		var v struct {
			A Date `json:"a"`
			B Date `json:"b"`
			C Date `json:"c"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"a":"2025-01-10","b":"","c":null}`), &v))
		assert.Equal(t, "2025-01-10", v.A.String())
		assert.True(t, v.B.IsZero())
		assert.True(t, v.C.IsZero())
	})

	t.Run("Unmarshal invalid", func(t *testing.T) {
		var d Date
		assert.Error(t, json.Unmarshal([]byte(`"10/01/2025"`), &d))
		assert.Error(t, json.Unmarshal([]byte(`20250110`), &d))
	})
}

func TestDate_SQL(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-05-06", d.String())

	require.NoError(t, d.Scan([]byte("2025-05-07")))
	assert.Equal(t, "2025-05-07", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = MustParseDate("2025-05-06").Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-05-06", v)
}
