// Package matrix provides the dense weight matrix shared by the network and
// the trainer.
//
// A Matrix is a fixed-size rows×cols array of float64 backed by a gonum
// mat.Dense. Between two adjacent layers i and i+1 the rows index the source
// neurons of layer i (the last row is the bias neuron) and the columns index
// the destination neurons of layer i+1.
//
// Element access is always bounds-checked: an index outside [0,rows)×[0,cols)
// panics. Out-of-range access is a programming error, never clamped.
package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense, bounds-checked 2-D array of float64.
//
// The zero value is not usable; create matrices with New.
type Matrix struct {
	rows, cols int
	dense      *mat.Dense
}

// New creates a rows×cols matrix filled with zeros.
//
// Panics if rows or cols is not positive.
func New(rows, cols int) *Matrix {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix: non-positive dimensions %dx%d", rows, cols))
	}
	return &Matrix{rows: rows, cols: cols, dense: mat.NewDense(rows, cols, nil)}
}

// NewFromRows creates a matrix from row slices, which must all have the same
// non-zero length.
func NewFromRows(rows [][]float64) *Matrix {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("matrix: empty rows")
	}
	m := New(len(rows), len(rows[0]))
	for r, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("matrix: row %d has %d columns, want %d", r, len(row), m.cols))
		}
		m.dense.SetRow(r, row)
	}
	return m
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) check(r, c int) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d,%d) out of range %dx%d", r, c, m.rows, m.cols))
	}
}

// At returns the element at row r, column c.
func (m *Matrix) At(r, c int) float64 {
	m.check(r, c)
	return m.dense.At(r, c)
}

// Set stores v at row r, column c.
func (m *Matrix) Set(r, c int, v float64) {
	m.check(r, c)
	m.dense.Set(r, c, v)
}

// Add adds v to the element at row r, column c.
func (m *Matrix) Add(r, c int, v float64) {
	m.check(r, c)
	m.dense.Set(r, c, m.dense.At(r, c)+v)
}

// Row returns a copy of row r.
func (m *Matrix) Row(r int) []float64 {
	m.check(r, 0)
	return mat.Row(nil, r, m.dense)
}

// Clone returns an independent copy of m.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{rows: m.rows, cols: m.cols, dense: mat.DenseCopyOf(m.dense)}
}

// Copy overwrites m with the contents of src, which must have the same shape.
func (m *Matrix) Copy(src *Matrix) {
	m.sameShape(src)
	m.dense.Copy(src.dense)
}

// Zero sets every element to zero.
func (m *Matrix) Zero() {
	m.dense.Zero()
}

// Scale multiplies every element by alpha.
func (m *Matrix) Scale(alpha float64) {
	m.dense.Scale(alpha, m.dense)
}

// AddMatrix adds other element-wise into m.
func (m *Matrix) AddMatrix(other *Matrix) {
	m.sameShape(other)
	m.dense.Add(m.dense, other.dense)
}

// AddScaled computes m += alpha*other.
func (m *Matrix) AddScaled(alpha float64, other *Matrix) {
	m.sameShape(other)
	var scaled mat.Dense
	scaled.Scale(alpha, other.dense)
	m.dense.Add(m.dense, &scaled)
}

// Outer accumulates the rank-one update m += alpha * x * yᵀ.
//
// len(x) must equal Rows and len(y) must equal Cols.
func (m *Matrix) Outer(alpha float64, x, y []float64) {
	if len(x) != m.rows || len(y) != m.cols {
		panic(fmt.Sprintf("matrix: outer product %dx%d does not fit %dx%d", len(x), len(y), m.rows, m.cols))
	}
	m.dense.RankOne(m.dense, alpha, mat.NewVecDense(len(x), x), mat.NewVecDense(len(y), y))
}

// MulVec returns M·x, a vector of length Rows. len(x) must equal Cols.
func (m *Matrix) MulVec(x []float64) []float64 {
	if len(x) != m.cols {
		panic(fmt.Sprintf("matrix: vector of length %d does not fit %d columns", len(x), m.cols))
	}
	var out mat.VecDense
	out.MulVec(m.dense, mat.NewVecDense(len(x), x))
	return out.RawVector().Data
}

// MulTransVec returns Mᵀ·x, a vector of length Cols. len(x) must equal Rows.
func (m *Matrix) MulTransVec(x []float64) []float64 {
	if len(x) != m.rows {
		panic(fmt.Sprintf("matrix: vector of length %d does not fit %d rows", len(x), m.rows))
	}
	var out mat.VecDense
	out.MulVec(m.dense.T(), mat.NewVecDense(len(x), x))
	return out.RawVector().Data
}

// EqualApprox reports whether m and other have the same shape and all
// elements within tol of each other.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	return mat.EqualApprox(m.dense, other.dense, tol)
}

// MaxAbs returns the largest absolute element value.
func (m *Matrix) MaxAbs() float64 {
	raw := m.dense.RawMatrix()
	largest := 0.0
	for r := 0; r < m.rows; r++ {
		row := raw.Data[r*raw.Stride : r*raw.Stride+m.cols]
		if v := floats.Norm(row, math.Inf(1)); v > largest {
			largest = v
		}
	}
	return largest
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Prefix(""), mat.Squeeze()))
}

func (m *Matrix) sameShape(other *Matrix) {
	if m.rows != other.rows || m.cols != other.cols {
		panic(fmt.Sprintf("matrix: shape mismatch %dx%d vs %dx%d", m.rows, m.cols, other.rows, other.cols))
	}
}
