package gemmbench

import (
	"fmt"
)

// Matrix is a square, row-major matrix of float64 values stored in one
// contiguous slice. Element (i, j) lives at data[i*n+j].
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix allocates a zero-filled n×n matrix.
func NewMatrix(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	return &Matrix{n: n, data: make([]float64, n*n)}, nil
}

// NewMatrixFrom allocates an n×n matrix holding a copy of data, which must
// be given in row-major order.
func NewMatrixFrom(n int, data []float64) (*Matrix, error) {
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	if len(data) != n*n {
		return nil, NewDimensionError("NewMatrixFrom",
			fmt.Sprintf("got %d values for a %dx%d matrix", len(data), n, n))
	}
	copy(m.data, data)
	return m, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := NewMatrix(n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// N returns the order of the matrix.
func (m *Matrix) N() int {
	return m.n
}

// At returns element (i, j). It panics on out of range indices, like a
// slice access.
func (m *Matrix) At(i, j int) float64 {
	return m.data[m.index(i, j)]
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.data[m.index(i, j)] = v
}

func (m *Matrix) index(i, j int) int {
	if uint(i) >= uint(m.n) || uint(j) >= uint(m.n) {
		panic(fmt.Sprintf("gemmbench: index (%d,%d) out of range for order %d", i, j, m.n))
	}
	return i*m.n + j
}

// Data returns the backing slice. Writes through it modify the matrix.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Zero resets every element to 0.
func (m *Matrix) Zero() {
	clear(m.data)
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{n: m.n, data: data}
}

// Corner returns the top-left rows×cols excerpt, clamped to the matrix order.
func (m *Matrix) Corner(rows, cols int) [][]float64 {
	rows = min(max(rows, 0), m.n)
	cols = min(max(cols, 0), m.n)
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		copy(row, m.data[i*m.n:i*m.n+cols])
		out[i] = row
	}
	return out
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var s []byte
	for i := 0; i < m.n; i++ {
		s = append(s, '[')
		for j := 0; j < m.n; j++ {
			if j > 0 {
				s = append(s, ' ')
			}
			s = fmt.Appendf(s, "%g", m.data[i*m.n+j])
		}
		s = append(s, ']', '\n')
	}
	return string(s)
}

// checkOperands validates a multiplication call: all three matrices must be
// non-nil and share one order. It returns that order.
func checkOperands(op string, a, b, c *Matrix) (int, error) {
	if a == nil || b == nil || c == nil {
		return 0, &Error{Type: ErrTypeInvalidArg, Op: op, Message: "nil matrix", Err: ErrNilMatrix}
	}
	if a.n != b.n || a.n != c.n {
		return 0, &Error{
			Type:    ErrTypeDimension,
			Op:      op,
			Message: fmt.Sprintf("orders differ: A=%d B=%d C=%d", a.n, b.n, c.n),
			Err:     ErrSizeMismatch,
		}
	}
	return a.n, nil
}
