package seamcarve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matrixOf builds a matrix out of its rows.
func matrixOf(rows ...[]int) *Matrix {
	m := NewMatrix(len(rows[0]), len(rows))
	for row, values := range rows {
		for col, v := range values {
			m.Set(row, col, v)
		}
	}
	return m
}

func TestMatrix_NewIsZero(t *testing.T) {
	m := NewMatrix(4, 3)
	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			assert.Zero(t, m.Get(row, col))
		}
	}

	assert.Panics(t, func() { NewMatrix(0, 3) })
	assert.Panics(t, func() { NewMatrix(3, -1) })
}

func TestMatrix_Fill(t *testing.T) {
	m := NewMatrix(3, 2)
	m.Fill(7)
	assert.Equal(t, matrixOf([]int{7, 7, 7}, []int{7, 7, 7}), m)
}

func TestMatrix_FillBorder(t *testing.T) {
	m := NewMatrix(4, 4)
	m.Fill(1)
	m.FillBorder(9)

	expected := matrixOf(
		[]int{9, 9, 9, 9},
		[]int{9, 1, 1, 9},
		[]int{9, 1, 1, 9},
		[]int{9, 9, 9, 9},
	)
	assert.True(t, expected.Equal(m))
}

func TestMatrix_FillBorderDegenerate(t *testing.T) {
	single := NewMatrix(1, 1)
	single.FillBorder(5)
	assert.Equal(t, 5, single.Get(0, 0))

	row := NewMatrix(4, 1)
	row.FillBorder(3)
	assert.True(t, matrixOf([]int{3, 3, 3, 3}).Equal(row))

	column := NewMatrix(1, 3)
	column.FillBorder(2)
	assert.True(t, matrixOf([]int{2}, []int{2}, []int{2}).Equal(column))
}

func TestMatrix_Offsets(t *testing.T) {
	m := NewMatrix(5, 3)

	off := m.Offset(2, 3)
	assert.Equal(t, 13, off)
	assert.Equal(t, 2, m.Row(off))
	assert.Equal(t, 3, m.Column(off))

	ptr := m.At(1, 4)
	*ptr = 42
	assert.Equal(t, 42, m.Get(1, 4))
	assert.Equal(t, m.Offset(1, 4), m.OffsetOf(ptr))

	other := NewMatrix(5, 3)
	assert.Panics(t, func() { m.OffsetOf(other.At(0, 0)) })
	assert.Panics(t, func() { m.Offset(3, 0) })
	assert.Panics(t, func() { m.Offset(0, 5) })
	assert.Panics(t, func() { m.Row(15) })
	assert.Panics(t, func() { m.Column(-1) })
}

func TestMatrix_Max(t *testing.T) {
	m := matrixOf([]int{-3, 4, 1}, []int{8, 0, -9})
	assert.Equal(t, 8, m.Max())
}

func TestMatrix_MinValueInRow(t *testing.T) {
	m := matrixOf(
		[]int{4, 2, 8, 2, 6},
		[]int{5, 5, 5, 5, 5},
	)

	assert.Equal(t, 1, m.ColumnOfMinValueInRow(0, 0, 5))
	assert.Equal(t, 2, m.MinValueInRow(0, 0, 5))
	assert.Equal(t, 3, m.ColumnOfMinValueInRow(0, 2, 5))
	assert.Equal(t, 2, m.ColumnOfMinValueInRow(0, 2, 3))

	// Ties go to the leftmost column.
	assert.Equal(t, 0, m.ColumnOfMinValueInRow(1, 0, 5))
	assert.Equal(t, 2, m.ColumnOfMinValueInRow(1, 2, 4))
}

func TestMatrix_MinValueInRowInvalidRange(t *testing.T) {
	m := NewMatrix(3, 2)

	testCases := []struct {
		name            string
		row, start, end int
	}{
		{name: "empty range", row: 0, start: 1, end: 1},
		{name: "reversed range", row: 0, start: 2, end: 1},
		{name: "negative start", row: 0, start: -1, end: 2},
		{name: "end past width", row: 0, start: 0, end: 4},
		{name: "row out of range", row: 2, start: 0, end: 3},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() { m.ColumnOfMinValueInRow(tc.row, tc.start, tc.end) })
		})
	}
}

func TestMatrix_CloneAndEqual(t *testing.T) {
	m := matrixOf([]int{1, 2}, []int{3, 4})
	clone := m.Clone()
	require.True(t, m.Equal(clone))

	clone.Set(0, 0, 10)
	assert.False(t, m.Equal(clone))
	assert.Equal(t, 1, m.Get(0, 0))

	assert.False(t, m.Equal(matrixOf([]int{1, 2, 3, 4})))
}

func TestMatrix_Rotate(t *testing.T) {
	m := matrixOf(
		[]int{1, 2, 3},
		[]int{4, 5, 6},
	)

	left := m.RotateLeft()
	assert.True(t, matrixOf(
		[]int{3, 6},
		[]int{2, 5},
		[]int{1, 4},
	).Equal(left))

	right := m.RotateRight()
	assert.True(t, matrixOf(
		[]int{4, 1},
		[]int{5, 2},
		[]int{6, 3},
	).Equal(right))

	assert.True(t, m.Equal(left.RotateRight()))
	assert.True(t, m.Equal(right.RotateLeft()))
}

func TestMatrix_RemoveVerticalSeam(t *testing.T) {
	m := matrixOf(
		[]int{1, 2, 3},
		[]int{4, 5, 6},
		[]int{7, 8, 9},
	)

	res := m.RemoveVerticalSeam(Seam{0, 1, 2})
	assert.True(t, matrixOf(
		[]int{2, 3},
		[]int{4, 6},
		[]int{7, 8},
	).Equal(res))

	// The source matrix is left untouched.
	assert.Equal(t, 3, m.Width())

	assert.Panics(t, func() { m.RemoveVerticalSeam(Seam{0, 1}) })
	assert.Panics(t, func() { m.RemoveVerticalSeam(Seam{0, 1, 3}) })
	assert.Panics(t, func() { NewMatrix(1, 2).RemoveVerticalSeam(Seam{0, 0}) })
}

func TestMatrix_PrintAndRead(t *testing.T) {
	m := matrixOf(
		[]int{1, -2, 30},
		[]int{4, 5, 6},
	)

	var buf bytes.Buffer
	require.NoError(t, m.Print(&buf))
	assert.Equal(t, "3 2\n1 -2 30 \n4 5 6 \n", buf.String())

	res, err := ReadMatrix(&buf)
	require.NoError(t, err)
	assert.True(t, m.Equal(res))
}

func TestMatrix_ReadErrors(t *testing.T) {
	for _, input := range []string{"", "2", "0 2", "2 1 1", "2 1 1 x"} {
		_, err := ReadMatrix(strings.NewReader(input))
		assert.Error(t, err, "input %q", input)
	}
}
