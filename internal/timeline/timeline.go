// Package timeline lays equipment rental periods out as horizontal bars on a
// week, month or year grid.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"equipment-tracker/internal/domain"
)

type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

const (
	DefaultWidth   = 1200
	DefaultMinRows = 15
)

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewWeek, ViewMonth, ViewYear:
		return v, nil
	default:
		return "", fmt.Errorf("unknown timeline view %q", s)
	}
}

// Bar is the horizontal extent of one rental period, in pixels from the
// left edge of the grid.
type Bar struct {
	Offset    float64 `json:"offset"`
	Width     float64 `json:"width"`
	StartCell int     `json:"startCell"`
	EndCell   int     `json:"endCell"`
}

// Layout is one rendering of the grid: a view, the date it is anchored on
// and the total pixel width.
type Layout struct {
	View   View
	Anchor domain.Date
	Width  float64
}

func NewLayout(view View, anchor domain.Date, width float64) Layout {
	if width <= 0 {
		width = DefaultWidth
	}
	return Layout{View: view, Anchor: anchor, Width: width}
}

// Cells is the number of columns: 7 days, the days of the anchor's month, or 12 months.
func (l Layout) Cells() int {
	switch l.View {
	case ViewWeek:
		return 7
	case ViewYear:
		return 12
	default:
		return domain.DaysInMonth(l.Anchor.Year, l.Anchor.Month)
	}
}

func (l Layout) CellWidth() float64 {
	return l.Width / float64(l.Cells())
}

// WindowStart is the date of the first column.
func (l Layout) WindowStart() domain.Date {
	switch l.View {
	case ViewWeek:
		return l.Anchor
	case ViewYear:
		return domain.Date{Year: l.Anchor.Year, Month: 1, Day: 1}
	default:
		return l.Anchor.FirstOfMonth()
	}
}

func (l Layout) cellOf(d domain.Date) int {
	if l.View == ViewYear {
		return (d.Year-l.Anchor.Year)*12 + d.Month - 1
	}
	return l.WindowStart().DaysUntil(d)
}

// Bar places [start, end] on the grid. It reports false when either date is
// missing or the range lies entirely outside the window.
func (l Layout) Bar(start, end domain.Date) (Bar, bool) {
	if start.IsZero() || end.IsZero() {
		return Bar{}, false
	}

	last := l.Cells() - 1
	from, to := l.cellOf(start), l.cellOf(end)
	if from > last || to < 0 {
		return Bar{}, false
	}
	from = max(from, 0)
	to = min(to, last)
	if from > to {
		return Bar{}, false
	}

	cw := l.CellWidth()
	return Bar{
		Offset:    float64(from) * cw,
		Width:     float64(to-from+1) * cw,
		StartCell: from,
		EndCell:   to,
	}, true
}

// HeaderCell labels one column.
type HeaderCell struct {
	Index   int         `json:"index"`
	Date    domain.Date `json:"date"`
	Label   string      `json:"label"`
	Weekday string      `json:"weekday,omitempty"`
	Weekend bool        `json:"weekend"`
}

func (l Layout) Header() []HeaderCell {
	n := l.Cells()
	cells := make([]HeaderCell, n)
	start := l.WindowStart()
	for i := 0; i < n; i++ {
		if l.View == ViewYear {
			d := start.AddMonths(i)
			cells[i] = HeaderCell{Index: i, Date: d, Label: time.Month(d.Month).String()[:3]}
			continue
		}
		d := start.AddDays(i)
		wd := d.Time().Weekday()
		cells[i] = HeaderCell{
			Index:   i,
			Date:    d,
			Label:   fmt.Sprintf("%d", d.Day),
			Weekday: wd.String()[:3],
			Weekend: wd == time.Saturday || wd == time.Sunday,
		}
	}
	return cells
}

// Title names the window, e.g. "January 2025" or "2025".
func (l Layout) Title() string {
	start := l.WindowStart()
	switch l.View {
	case ViewYear:
		return fmt.Sprintf("%d", start.Year)
	case ViewWeek:
		end := start.AddDays(6)
		return fmt.Sprintf("%s - %s", start.Time().Format("Jan 2"), end.Time().Format("Jan 2, 2006"))
	default:
		return start.Time().Format("January 2006")
	}
}

// Row is one line of the grid. Padding rows have no equipment.
type Row struct {
	Index     int               `json:"index"`
	Equipment *domain.Equipment `json:"equipment,omitempty"`
	Bar       *Bar              `json:"bar,omitempty"`
}

// Rows sorts items by code, places each rental period, and pads the result
// with empty rows up to minRows.
func (l Layout) Rows(items []domain.Equipment, minRows int) []Row {
	sorted := append([]domain.Equipment{}, items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	n := max(len(sorted), minRows)
	rows := make([]Row, n)
	for i := range rows {
		rows[i].Index = i
		if i >= len(sorted) {
			continue
		}
		e := sorted[i]
		rows[i].Equipment = &e
		if bar, ok := l.Bar(e.StartDate, e.EndDate); ok {
			rows[i].Bar = &bar
		}
	}
	return rows
}

// Shift moves anchor one window forward (dir > 0) or back (dir < 0).
// Month and year anchors land on the first day of the new window.
func Shift(view View, anchor domain.Date, dir int) domain.Date {
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return anchor
	}
	switch view {
	case ViewWeek:
		return anchor.AddDays(7 * dir)
	case ViewYear:
		return domain.Date{Year: anchor.Year + dir, Month: 1, Day: 1}
	default:
		return anchor.FirstOfMonth().AddMonths(dir)
	}
}

// Timeline is a fully computed grid ready to render.
type Timeline struct {
	View      View         `json:"view"`
	Anchor    domain.Date  `json:"anchor"`
	Title     string       `json:"title"`
	Width     float64      `json:"width"`
	CellWidth float64      `json:"cellWidth"`
	Header    []HeaderCell `json:"header"`
	Rows      []Row        `json:"rows"`
	Prev      domain.Date  `json:"prev"`
	Next      domain.Date  `json:"next"`
}

func Build(items []domain.Equipment, view View, anchor domain.Date, width float64, minRows int) Timeline {
	l := NewLayout(view, anchor, width)
	return Timeline{
		View:      view,
		Anchor:    anchor,
		Title:     l.Title(),
		Width:     l.Width,
		CellWidth: l.CellWidth(),
		Header:    l.Header(),
		Rows:      l.Rows(items, minRows),
		Prev:      Shift(view, anchor, -1),
		Next:      Shift(view, anchor, 1),
	}
}
