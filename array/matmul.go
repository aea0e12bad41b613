package array

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/arloliu/mdarr/errs"
	"github.com/arloliu/mdarr/format"
	"github.com/arloliu/mdarr/internal/pool"
)

// matrixShape returns the rows and columns of a one- or two-dimensional symmetric
// array. One-dimensional arrays are column vectors.
func matrixShape(v *View) (int, int, error) {
	if v.Dimensions() > 2 {
		return 0, 0, fmt.Errorf("%w: matrix operand has %d dimensions", errs.ErrDimensionMismatch, v.Dimensions())
	}
	if !v.IsSymmetric() {
		return 0, 0, fmt.Errorf("%w: matrix operand is not symmetric", errs.ErrStructureMismatch)
	}

	root := v.entry(1, 0)
	if v.Dimensions() == 1 {
		return int(root.Length), 1, nil
	}
	cols, _ := v.DimensionSize(2)

	return int(root.ChildCount), cols, nil
}

// MatrixMul multiplies two floating-point matrices.
//
// Both operands must be f32 or f64 arrays of the same type with at most two
// dimensions, symmetric, and free of NULLs and empty sub-arrays. The product is
// computed by the BLAS general matrix multiply and returned as a fresh
// two-dimensional array with one leaf entry per row.
//
// Returns:
//   - Array: rowsA × colsB product
//   - error: ErrTypeMismatch, ErrNullNotAllowed, ErrEmptyStructureNotAllowed,
//     ErrDimensionMismatch, or ErrStructureMismatch when colsA != rowsB
func MatrixMul(a, b Array) (Array, error) {
	if !a.Type.IsFloatingPoint() || !b.Type.IsFloatingPoint() {
		return Array{}, fmt.Errorf("%w: matrix multiply requires f32 or f64, got %s and %s", errs.ErrTypeMismatch, a.Type, b.Type)
	}
	if a.Type != b.Type {
		return Array{}, fmt.Errorf("%w: %s × %s", errs.ErrTypeMismatch, a.Type, b.Type)
	}

	av, err := NewView(a)
	if err != nil {
		return Array{}, err
	}
	bv, err := NewView(b)
	if err != nil {
		return Array{}, err
	}

	for _, v := range []*View{av, bv} {
		if err := checkArithmetic(v); err != nil {
			return Array{}, err
		}
	}

	rowsA, colsA, err := matrixShape(av)
	if err != nil {
		return Array{}, err
	}
	rowsB, colsB, err := matrixShape(bv)
	if err != nil {
		return Array{}, err
	}
	if colsA != rowsB {
		return Array{}, fmt.Errorf("%w: %d×%d × %d×%d", errs.ErrStructureMismatch, rowsA, colsA, rowsB, colsB)
	}

	builder, err := NewBuilder(a.Type)
	if err != nil {
		return Array{}, err
	}
	defer builder.Release()

	builder.AddRegular([]int{rowsA, colsB})
	w := builder.Writer()

	if a.Type == format.TypeFloat32 {
		ad, releaseA := loadFloat32(av)
		defer releaseA()
		bd, releaseB := loadFloat32(bv)
		defer releaseB()
		cd, releaseC := pool.GetFloat32Slice(rowsA * colsB)
		defer releaseC()

		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: rowsA, Cols: colsA, Stride: colsA, Data: ad},
			blas32.General{Rows: rowsB, Cols: colsB, Stride: colsB, Data: bd},
			0, blas32.General{Rows: rowsA, Cols: colsB, Stride: colsB, Data: cd})
		for _, x := range cd {
			w.AppendFloat32(x)
			builder.AppendPresent()
		}
	} else {
		ad, releaseA := loadFloat64(av)
		defer releaseA()
		bd, releaseB := loadFloat64(bv)
		defer releaseB()
		cd, releaseC := pool.GetFloat64Slice(rowsA * colsB)
		defer releaseC()

		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: rowsA, Cols: colsA, Stride: colsA, Data: ad},
			blas64.General{Rows: rowsB, Cols: colsB, Stride: colsB, Data: bd},
			0, blas64.General{Rows: rowsA, Cols: colsB, Stride: colsB, Data: cd})
		for _, x := range cd {
			w.AppendFloat64(x)
			builder.AppendPresent()
		}
	}

	return builder.Build(), nil
}

func loadFloat32(v *View) ([]float32, func()) {
	data, release := pool.GetFloat32Slice(v.elems.Len())
	for i := range data {
		data[i] = v.elems.Float32(i)
	}

	return data, release
}

func loadFloat64(v *View) ([]float64, func()) {
	data, release := pool.GetFloat64Slice(v.elems.Len())
	for i := range data {
		data[i] = v.elems.Float64(i)
	}

	return data, release
}
