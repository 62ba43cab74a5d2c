package seamcarve

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Matrix is a dense two dimensional grid of integers stored in row-major order.
// It backs the color channels of an Image as well as the energy and cost maps.
type Matrix struct {
	width  int
	height int
	data   []int
}

// NewMatrix allocates a zero filled matrix. Both dimensions must be positive.
func NewMatrix(width, height int) *Matrix {
	precondition(width > 0 && height > 0, "invalid matrix dimensions %dx%d", width, height)

	return &Matrix{
		width:  width,
		height: height,
		data:   make([]int, width*height),
	}
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.width }

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.height }

// Offset returns the position of the (row, col) cell in the backing store.
func (m *Matrix) Offset(row, col int) int {
	precondition(row >= 0 && row < m.height, "row %d out of range [0, %d)", row, m.height)
	precondition(col >= 0 && col < m.width, "column %d out of range [0, %d)", col, m.width)

	return row*m.width + col
}

// Row returns the row of the cell stored at offset.
func (m *Matrix) Row(offset int) int {
	precondition(offset >= 0 && offset < len(m.data), "offset %d outside of matrix", offset)
	return offset / m.width
}

// Column returns the column of the cell stored at offset.
func (m *Matrix) Column(offset int) int {
	precondition(offset >= 0 && offset < len(m.data), "offset %d outside of matrix", offset)
	return offset % m.width
}

// At returns a pointer to the (row, col) cell, which can be used to modify it in place.
func (m *Matrix) At(row, col int) *int {
	return &m.data[m.Offset(row, col)]
}

// OffsetOf maps a pointer obtained from At back to its offset.
// It panics if ptr does not point into this matrix.
func (m *Matrix) OffsetOf(ptr *int) int {
	for i := range m.data {
		if &m.data[i] == ptr {
			return i
		}
	}
	panic("seamcarve: pointer does not belong to the matrix")
}

// Get returns the value of the (row, col) cell.
func (m *Matrix) Get(row, col int) int {
	return m.data[m.Offset(row, col)]
}

// Set assigns v to the (row, col) cell.
func (m *Matrix) Set(row, col, v int) {
	m.data[m.Offset(row, col)] = v
}

// Fill sets every cell to v.
func (m *Matrix) Fill(v int) {
	for i := range m.data {
		m.data[i] = v
	}
}

// FillBorder sets every cell of the first and last row and
// of the first and last column to v.
func (m *Matrix) FillBorder(v int) {
	last := (m.height - 1) * m.width
	for col := 0; col < m.width; col++ {
		m.data[col] = v
		m.data[last+col] = v
	}
	for row := 0; row < m.height; row++ {
		m.data[row*m.width] = v
		m.data[row*m.width+m.width-1] = v
	}
}

// Max returns the largest value stored in the matrix.
func (m *Matrix) Max() int {
	max := m.data[0]
	for _, v := range m.data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// ColumnOfMinValueInRow returns the column holding the smallest value of row
// within [start, end). In case of a tie the leftmost column wins.
func (m *Matrix) ColumnOfMinValueInRow(row, start, end int) int {
	m.checkRange(row, start, end)

	base := row * m.width
	col := start
	for c := start + 1; c < end; c++ {
		if m.data[base+c] < m.data[base+col] {
			col = c
		}
	}
	return col
}

// MinValueInRow returns the smallest value of row within [start, end).
func (m *Matrix) MinValueInRow(row, start, end int) int {
	return m.Get(row, m.ColumnOfMinValueInRow(row, start, end))
}

func (m *Matrix) checkRange(row, start, end int) {
	precondition(row >= 0 && row < m.height, "row %d out of range [0, %d)", row, m.height)
	precondition(start >= 0 && start < end && end <= m.width,
		"invalid column range [%d, %d) for width %d", start, end, m.width)
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	dst := NewMatrix(m.width, m.height)
	copy(dst.data, m.data)
	return dst
}

// Equal reports whether both matrices have the same dimensions and cells.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// RotateLeft returns a copy of the matrix rotated by 90 degrees counter clockwise.
func (m *Matrix) RotateLeft() *Matrix {
	dst := NewMatrix(m.height, m.width)
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			dst.data[(m.width-1-c)*dst.width+r] = m.data[r*m.width+c]
		}
	}
	return dst
}

// RotateRight returns a copy of the matrix rotated by 90 degrees clockwise.
func (m *Matrix) RotateRight() *Matrix {
	dst := NewMatrix(m.height, m.width)
	for r := 0; r < m.height; r++ {
		for c := 0; c < m.width; c++ {
			dst.data[c*dst.width+m.height-1-r] = m.data[r*m.width+c]
		}
	}
	return dst
}

// RemoveVerticalSeam returns a new matrix one column narrower than m, where
// the cell at column seam[row] has been dropped from every row.
// The receiver is left untouched.
func (m *Matrix) RemoveVerticalSeam(seam Seam) *Matrix {
	precondition(m.width >= 2, "cannot remove a seam from a matrix of width %d", m.width)
	seam.check(m.width, m.height)

	dst := NewMatrix(m.width-1, m.height)
	for row, col := range seam {
		src := m.data[row*m.width : (row+1)*m.width]
		out := dst.data[row*dst.width : (row+1)*dst.width]
		copy(out[:col], src[:col])
		copy(out[col:], src[col+1:])
	}
	return dst
}

// Print writes the matrix in its textual form: the width and height on the
// first line, followed by one line per row where every value is followed by a space.
func (m *Matrix) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", m.width, m.height)
	for row := 0; row < m.height; row++ {
		for _, v := range m.data[row*m.width : (row+1)*m.width] {
			bw.WriteString(strconv.Itoa(v))
			bw.WriteByte(' ')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ReadMatrix parses a matrix written by Print.
func ReadMatrix(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, errors.Errorf("unexpected end of input while reading %s", what)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, errors.Wrapf(err, "invalid %s %q", what, sc.Text())
		}
		return v, nil
	}

	width, err := next("width")
	if err != nil {
		return nil, err
	}
	height, err := next("height")
	if err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid matrix dimensions %dx%d", width, height)
	}

	m := NewMatrix(width, height)
	for i := range m.data {
		if m.data[i], err = next("cell"); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// precondition panics with a formatted message when cond does not hold.
// Violations are programming errors.
func precondition(cond bool, format string, args ...any) {
	if !cond {
		panic("seamcarve: " + fmt.Sprintf(format, args...))
	}
}
