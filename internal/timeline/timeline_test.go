package timeline

import (
	"testing"

	"equipment-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var d = domain.MustParseDate

func TestLayout_Cells(t *testing.T) {
	assert.Equal(t, 7, NewLayout(ViewWeek, d("2025-01-06"), 0).Cells())
	assert.Equal(t, 31, NewLayout(ViewMonth, d("2025-01-15"), 0).Cells())
	assert.Equal(t, 28, NewLayout(ViewMonth, d("2025-02-01"), 0).Cells())
	assert.Equal(t, 29, NewLayout(ViewMonth, d("2024-02-10"), 0).Cells())
	assert.Equal(t, 12, NewLayout(ViewYear, d("2025-06-01"), 0).Cells())
	assert.Equal(t, 100.0, NewLayout(ViewYear, d("2025-06-01"), 1200).CellWidth())
}

func TestLayout_Bar_Month(t *testing.T) {
	l := NewLayout(ViewMonth, d("2025-01-01"), 1200)
	cw := l.CellWidth()

	t.Run("Range inside the month", func(t *testing.T) {
		bar, ok := l.Bar(d("2025-01-10"), d("2025-01-15"))
		require.True(t, ok)
		assert.InDelta(t, 9*cw, bar.Offset, 1e-9)
		assert.InDelta(t, 6*cw, bar.Width, 1e-9)
	})

	t.Run("Range in a previous year", func(t *testing.T) {
		_, ok := l.Bar(d("2024-01-01"), d("2024-01-05"))
		assert.False(t, ok)
	})

	t.Run("Range after the window", func(t *testing.T) {
		_, ok := l.Bar(d("2025-02-01"), d("2025-02-05"))
		assert.False(t, ok)
	})

	t.Run("Clamped on both sides", func(t *testing.T) {
		bar, ok := l.Bar(d("2024-12-20"), d("2025-02-10"))
		require.True(t, ok)
		assert.Equal(t, 0.0, bar.Offset)
		assert.InDelta(t, 31*cw, bar.Width, 1e-9)
		assert.Equal(t, 0, bar.StartCell)
		assert.Equal(t, 30, bar.EndCell)
	})

	t.Run("Zero-length range is one cell", func(t *testing.T) {
		bar, ok := l.Bar(d("2025-01-20"), d("2025-01-20"))
		require.True(t, ok)
		assert.InDelta(t, cw, bar.Width, 1e-9)
	})

	t.Run("Only one date", func(t *testing.T) {
		_, ok := l.Bar(d("2025-01-20"), domain.Date{})
		assert.False(t, ok)
		_, ok = l.Bar(domain.Date{}, d("2025-01-20"))
		assert.False(t, ok)
	})

	t.Run("Anchor mid-month uses the first of the month", func(t *testing.T) {
		mid := NewLayout(ViewMonth, d("2025-01-17"), 1200)
		bar, ok := mid.Bar(d("2025-01-10"), d("2025-01-15"))
		require.True(t, ok)
		assert.Equal(t, 9, bar.StartCell)
	})
}

func TestLayout_Bar_Year(t *testing.T) {
	l := NewLayout(ViewYear, d("2025-01-01"), 1200)

	bar, ok := l.Bar(d("2025-03-01"), d("2025-03-31"))
	require.True(t, ok)
	assert.Equal(t, 2, bar.StartCell)
	assert.Equal(t, 200.0, bar.Offset)
	assert.Equal(t, 100.0, bar.Width)

	bar, ok = l.Bar(d("2024-11-15"), d("2025-02-10"))
	require.True(t, ok)
	assert.Equal(t, 0, bar.StartCell)
	assert.Equal(t, 1, bar.EndCell)

	_, ok = l.Bar(d("2026-03-01"), d("2026-04-01"))
	assert.False(t, ok)
}

func TestLayout_Bar_Week(t *testing.T) {
	l := NewLayout(ViewWeek, d("2025-03-08"), 700)

	// crosses the US daylight-saving change on 2025-03-09
	bar, ok := l.Bar(d("2025-03-09"), d("2025-03-11"))
	require.True(t, ok)
	assert.Equal(t, 1, bar.StartCell)
	assert.Equal(t, 100.0, bar.Offset)
	assert.Equal(t, 300.0, bar.Width)

	bar, ok = l.Bar(d("2025-03-13"), d("2025-03-30"))
	require.True(t, ok)
	assert.Equal(t, 6, bar.EndCell)

	_, ok = l.Bar(d("2025-03-15"), d("2025-03-20"))
	assert.False(t, ok)
}

func TestLayout_Header(t *testing.T) {
	month := NewLayout(ViewMonth, d("2025-01-01"), 1200).Header()
	require.Len(t, month, 31)
	assert.Equal(t, "1", month[0].Label)
	assert.Equal(t, "Wed", month[0].Weekday)
	assert.False(t, month[0].Weekend)
	assert.True(t, month[3].Weekend) // Sat 4th
	assert.True(t, month[4].Weekend) // Sun 5th

	year := NewLayout(ViewYear, d("2025-07-04"), 1200).Header()
	require.Len(t, year, 12)
	assert.Equal(t, "Jan", year[0].Label)
	assert.Equal(t, "Dec", year[11].Label)
	assert.False(t, year[5].Weekend)

	week := NewLayout(ViewWeek, d("2025-01-06"), 1200).Header()
	require.Len(t, week, 7)
	assert.Equal(t, "Mon", week[0].Weekday)
	assert.True(t, week[6].Weekend)
}

func TestLayout_Title(t *testing.T) {
	assert.Equal(t, "January 2025", NewLayout(ViewMonth, d("2025-01-20"), 0).Title())
	assert.Equal(t, "2025", NewLayout(ViewYear, d("2025-01-20"), 0).Title())
	assert.Equal(t, "Jan 6 - Jan 12, 2025", NewLayout(ViewWeek, d("2025-01-06"), 0).Title())
}

func TestLayout_Rows(t *testing.T) {
	l := NewLayout(ViewMonth, d("2025-01-01"), 1200)
	items := []domain.Equipment{
		{Code: "C3"},
		{Code: "A1", StartDate: d("2025-01-10"), EndDate: d("2025-01-15")},
		{Code: "B2", StartDate: d("2024-01-01"), EndDate: d("2024-01-05")},
	}

	rows := l.Rows(items, DefaultMinRows)
	require.Len(t, rows, 15)
	assert.Equal(t, "A1", rows[0].Equipment.Code)
	assert.NotNil(t, rows[0].Bar)
	assert.Equal(t, "B2", rows[1].Equipment.Code)
	assert.Nil(t, rows[1].Bar)
	assert.Equal(t, "C3", rows[2].Equipment.Code)
	assert.Nil(t, rows[3].Equipment)
	assert.Equal(t, 14, rows[14].Index)

	many := make([]domain.Equipment, 20)
	assert.Len(t, l.Rows(many, DefaultMinRows), 20)
}

func TestShift(t *testing.T) {
	assert.Equal(t, d("2025-01-13"), Shift(ViewWeek, d("2025-01-06"), 1))
	assert.Equal(t, d("2024-12-30"), Shift(ViewWeek, d("2025-01-06"), -1))
	assert.Equal(t, d("2025-02-01"), Shift(ViewMonth, d("2025-01-31"), 1))
	assert.Equal(t, d("2024-12-01"), Shift(ViewMonth, d("2025-01-15"), -1))
	assert.Equal(t, d("2026-01-01"), Shift(ViewYear, d("2025-06-15"), 1))
	assert.Equal(t, d("2025-06-15"), Shift(ViewYear, d("2025-06-15"), 0))
}

func TestParseView(t *testing.T) {
	v, err := ParseView(" Month ")
	assert.NoError(t, err)
	assert.Equal(t, ViewMonth, v)

	_, err = ParseView("decade")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	tl := Build([]domain.Equipment{{Code: "A1"}}, ViewMonth, d("2025-01-01"), 1200, 15)
	assert.Equal(t, "January 2025", tl.Title)
	assert.Len(t, tl.Header, 31)
	assert.Len(t, tl.Rows, 15)
	assert.Equal(t, d("2024-12-01"), tl.Prev)
	assert.Equal(t, d("2025-02-01"), tl.Next)
}
