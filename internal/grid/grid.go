// Package grid derives the seat layout of a show from a theatre's total
// seat capacity. The layout is a pure function of the capacity: the same
// capacity always yields the same rows and seat numbers, which is what
// makes persisted (row, seat) identities stable across requests.
package grid

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SeatsPerRow is the fixed width of every row except possibly the last,
// which is truncated so the grid holds exactly the theatre's capacity.
const SeatsPerRow = 10

// Seat identifies a single seat inside a show's grid by its row label
// ("A", "B", ... "Z", "AA", ...) and 1-based number within the row.
type Seat struct {
	Row    string `json:"row"`
	Number int    `json:"number"`
}

// String renders the seat in the compact "A7" form used on tickets.
func (s Seat) String() string { return s.Row + strconv.Itoa(s.Number) }

// ParseSeat parses a compact seat code such as "A7" or "AB12". The row
// part must be one or more ASCII uppercase letters and the number part a
// positive integer.
func ParseSeat(code string) (Seat, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	i := 0
	for i < len(code) && code[i] >= 'A' && code[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(code) {
		return Seat{}, fmt.Errorf("malformed seat code %q", code)
	}
	n, err := strconv.Atoi(code[i:])
	if err != nil || n <= 0 {
		return Seat{}, fmt.Errorf("malformed seat code %q", code)
	}
	return Seat{Row: code[:i], Number: n}, nil
}

// Grid is the derived layout for one show. It is immutable and safe for
// concurrent use.
type Grid struct {
	totalSeats int
	rows       int
}

// Layout derives the grid for a theatre with the given capacity.
func Layout(totalSeats int) (Grid, error) {
	if totalSeats <= 0 {
		return Grid{}, errors.New("total seats must be positive")
	}
	rows := (totalSeats + SeatsPerRow - 1) / SeatsPerRow
	return Grid{totalSeats: totalSeats, rows: rows}, nil
}

// TotalSeats returns the capacity the grid was derived from.
func (g Grid) TotalSeats() int { return g.totalSeats }

// Rows returns the number of rows in the grid.
func (g Grid) Rows() int { return g.rows }

// SeatsInRow returns how many seats the 1-based row index holds. Every
// row holds SeatsPerRow seats except the last, which is truncated so the
// grid totals exactly the capacity. Out-of-range indexes return 0.
func (g Grid) SeatsInRow(rowIndex int) int {
	if rowIndex < 1 || rowIndex > g.rows {
		return 0
	}
	if rowIndex < g.rows {
		return SeatsPerRow
	}
	if rem := g.totalSeats % SeatsPerRow; rem != 0 {
		return rem
	}
	return SeatsPerRow
}

// Contains reports whether the seat exists in this grid.
func (g Grid) Contains(s Seat) bool {
	idx, ok := rowIndex(s.Row)
	if !ok || idx < 1 || idx > g.rows {
		return false
	}
	return s.Number >= 1 && s.Number <= g.SeatsInRow(idx)
}

// Seats enumerates every seat in the grid in row-major order. The order
// is deterministic: row A first, seat 1 first within a row.
func (g Grid) Seats() []Seat {
	out := make([]Seat, 0, g.totalSeats)
	for r := 1; r <= g.rows; r++ {
		label := RowLabel(r)
		for n := 1; n <= g.SeatsInRow(r); n++ {
			out = append(out, Seat{Row: label, Number: n})
		}
	}
	return out
}

// RowLabel maps a 1-based row index to its label: 1→"A" … 26→"Z",
// 27→"AA", 28→"AB" and so on, spreadsheet style. Capacities beyond 26
// rows therefore get well-defined labels instead of running off the
// alphabet.
func RowLabel(i int) string {
	if i < 1 {
		return ""
	}
	var b []byte
	for i > 0 {
		i--
		b = append([]byte{byte('A' + i%26)}, b...)
		i /= 26
	}
	return string(b)
}

// rowIndex is the inverse of RowLabel. It returns false for labels with
// characters outside A-Z or the empty string.
func rowIndex(label string) (int, bool) {
	if label == "" {
		return 0, false
	}
	idx := 0
	for i := 0; i < len(label); i++ {
		c := label[i]
		if c < 'A' || c > 'Z' {
			return 0, false
		}
		idx = idx*26 + int(c-'A') + 1
	}
	return idx, true
}

// SortSeats orders seats by row then number, the order used everywhere
// seats are rendered or persisted.
func SortSeats(seats []Seat) {
	sort.Slice(seats, func(i, j int) bool {
		ri, _ := rowIndex(seats[i].Row)
		rj, _ := rowIndex(seats[j].Row)
		if ri != rj {
			return ri < rj
		}
		return seats[i].Number < seats[j].Number
	})
}
