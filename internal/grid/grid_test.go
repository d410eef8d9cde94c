package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout_TruncatesLastRow(t *testing.T) {
	g, err := Layout(25)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 10, g.SeatsInRow(1))
	assert.Equal(t, 10, g.SeatsInRow(2))
	assert.Equal(t, 5, g.SeatsInRow(3))
	assert.Equal(t, 25, len(g.Seats()))
}

func TestLayout_ExactMultiple(t *testing.T) {
	g, err := Layout(30)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 10, g.SeatsInRow(3))
}

func TestLayout_Deterministic(t *testing.T) {
	g1, err := Layout(25)
	require.NoError(t, err)
	g2, err := Layout(25)
	require.NoError(t, err)
	assert.Equal(t, g1.Seats(), g2.Seats())
}

func TestLayout_RejectsNonPositive(t *testing.T) {
	_, err := Layout(0)
	assert.Error(t, err)
	_, err = Layout(-4)
	assert.Error(t, err)
}

func TestRowLabel_BeyondZ(t *testing.T) {
	assert.Equal(t, "A", RowLabel(1))
	assert.Equal(t, "Z", RowLabel(26))
	assert.Equal(t, "AA", RowLabel(27))
	assert.Equal(t, "AB", RowLabel(28))
	assert.Equal(t, "AZ", RowLabel(52))
	assert.Equal(t, "BA", RowLabel(53))
}

func TestGrid_ContainsLargeTheatre(t *testing.T) {
	// 265 seats: 27 rows, the 27th labelled "AA" with 5 seats.
	g, err := Layout(265)
	require.NoError(t, err)
	assert.Equal(t, 27, g.Rows())
	assert.True(t, g.Contains(Seat{Row: "AA", Number: 5}))
	assert.False(t, g.Contains(Seat{Row: "AA", Number: 6}))
	assert.False(t, g.Contains(Seat{Row: "AB", Number: 1}))
}

func TestGrid_Contains(t *testing.T) {
	g, err := Layout(22)
	require.NoError(t, err)
	cases := []struct {
		seat Seat
		want bool
	}{
		{Seat{"A", 1}, true},
		{Seat{"A", 10}, true},
		{Seat{"B", 10}, true},
		{Seat{"C", 2}, true},
		{Seat{"C", 3}, false},  // truncated row
		{Seat{"D", 1}, false},  // row beyond grid
		{Seat{"A", 0}, false},  // numbers are 1-based
		{Seat{"A", 11}, false}, // beyond row width
		{Seat{"a", 1}, false},  // labels are uppercase
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, g.Contains(tc.seat), "seat %v", tc.seat)
	}
}

func TestParseSeat(t *testing.T) {
	s, err := ParseSeat("A7")
	require.NoError(t, err)
	assert.Equal(t, Seat{Row: "A", Number: 7}, s)

	s, err = ParseSeat(" ab12 ")
	require.NoError(t, err)
	assert.Equal(t, Seat{Row: "AB", Number: 12}, s)

	for _, bad := range []string{"", "A", "7", "A0", "A-1", "1A"} {
		_, err := ParseSeat(bad)
		assert.Error(t, err, "code %q", bad)
	}
}

func TestSortSeats(t *testing.T) {
	seats := []Seat{{"AA", 1}, {"B", 2}, {"A", 10}, {"A", 2}}
	SortSeats(seats)
	assert.Equal(t, []Seat{{"A", 2}, {"A", 10}, {"B", 2}, {"AA", 1}}, seats)
}
