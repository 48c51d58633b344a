// Package tensor provides Table, the immutable two-dimensional numeric array every
// model in gradlearn consumes.
//
// A Table is backed by a gonum *mat.Dense that is never exposed for writing:
// accessors return copies and every transformation returns a new Table.
package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// Table は行×列の不変な数値テーブル
type Table struct {
	data *mat.Dense
}

// New は行スライスからテーブルを作成する
//
// パラメータ:
//   - rows: 各行の値（全行が同じ列数であること）
//
// 戻り値:
//   - Table: 入力をコピーしたテーブル
//   - error: 行が0件の場合は ErrEmptyData、列数が揃っていない場合は DimensionError
func New(rows [][]float64) (Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Table{}, errors.NewEmptyDataError("tensor.New")
	}

	c := len(rows[0])
	backing := make([]float64, 0, len(rows)*c)
	for _, row := range rows {
		if len(row) != c {
			return Table{}, errors.NewDimensionError("tensor.New", c, len(row), 1)
		}
		backing = append(backing, row...)
	}

	return Table{data: mat.NewDense(len(rows), c, backing)}, nil
}

// MustNew は New と同じだが、エラー時にpanicする（テストや定数データ用）
func MustNew(rows [][]float64) Table {
	t, err := New(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Column は1列のテーブルを作成する
func Column(values []float64) (Table, error) {
	if len(values) == 0 {
		return Table{}, errors.NewEmptyDataError("tensor.Column")
	}
	backing := make([]float64, len(values))
	copy(backing, values)
	return Table{data: mat.NewDense(len(values), 1, backing)}, nil
}

// FromMatrix は任意の mat.Matrix をコピーしてテーブルを作成する
func FromMatrix(m mat.Matrix) (Table, error) {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return Table{}, errors.NewEmptyDataError("tensor.FromMatrix")
	}
	return Table{data: mat.DenseCopyOf(m)}, nil
}

// Ones は全要素が1のテーブルを作成する
func Ones(rows, cols int) Table {
	backing := make([]float64, rows*cols)
	for i := range backing {
		backing[i] = 1
	}
	return Table{data: mat.NewDense(rows, cols, backing)}
}

// Zeros は全要素が0の mat.Dense を作成する（重み行列の初期化用）
func Zeros(rows, cols int) *mat.Dense {
	return mat.NewDense(rows, cols, nil)
}

// Wrap は呼び出し側が以後変更しない Dense をコピーなしでテーブルにする。
// 演算結果をテーブルとして返すために使う。
func Wrap(d *mat.Dense) Table {
	return Table{data: d}
}

// IsEmpty はゼロ値のテーブルかどうかを返す
func (t Table) IsEmpty() bool {
	return t.data == nil
}

// Dims は行数と列数を返す
func (t Table) Dims() (rows, cols int) {
	if t.data == nil {
		return 0, 0
	}
	return t.data.Dims()
}

// Rows は行数を返す
func (t Table) Rows() int {
	r, _ := t.Dims()
	return r
}

// Cols は列数を返す
func (t Table) Cols() int {
	_, c := t.Dims()
	return c
}

// Matrix は読み取り専用の mat.Matrix ビューを返す（空テーブルでは 0×0）
func (t Table) Matrix() mat.Matrix {
	if t.data == nil {
		return &mat.Dense{}
	}
	return t.data
}

// Dense はテーブルのコピーを *mat.Dense として返す
func (t Table) Dense() *mat.Dense {
	if t.data == nil {
		return &mat.Dense{}
	}
	return mat.DenseCopyOf(t.data)
}

// At は (i, j) の値を返す
func (t Table) At(i, j int) (float64, error) {
	r, c := t.Dims()
	if i < 0 || i >= r {
		return 0, errors.NewIndexError("Table.At", i, r, 0)
	}
	if j < 0 || j >= c {
		return 0, errors.NewIndexError("Table.At", j, c, 1)
	}
	return t.data.At(i, j), nil
}

// Row は i 行目のコピーを返す
func (t Table) Row(i int) ([]float64, error) {
	r, c := t.Dims()
	if i < 0 || i >= r {
		return nil, errors.NewIndexError("Table.Row", i, r, 0)
	}
	return mat.Row(make([]float64, c), i, t.data), nil
}

// Col は j 列目のコピーを返す
func (t Table) Col(j int) ([]float64, error) {
	r, c := t.Dims()
	if j < 0 || j >= c {
		return nil, errors.NewIndexError("Table.Col", j, c, 1)
	}
	return mat.Col(make([]float64, r), j, t.data), nil
}

// ToRows は全行のコピーを返す
func (t Table) ToRows() [][]float64 {
	r, c := t.Dims()
	out := make([][]float64, r)
	for i := 0; i < r; i++ {
		out[i] = mat.Row(make([]float64, c), i, t.data)
	}
	return out
}

// ColumnMin は j 列目の最小値を返す
func (t Table) ColumnMin(j int) (float64, error) {
	col, err := t.column("Table.ColumnMin", j)
	if err != nil {
		return 0, err
	}
	return floats.Min(col), nil
}

// ColumnMax は j 列目の最大値を返す
func (t Table) ColumnMax(j int) (float64, error) {
	col, err := t.column("Table.ColumnMax", j)
	if err != nil {
		return 0, err
	}
	return floats.Max(col), nil
}

// ColumnMean は j 列目の平均を返す
func (t Table) ColumnMean(j int) (float64, error) {
	col, err := t.column("Table.ColumnMean", j)
	if err != nil {
		return 0, err
	}
	return stat.Mean(col, nil), nil
}

// ColumnVariance は j 列目の母分散（n で割る）を返す
func (t Table) ColumnVariance(j int) (float64, error) {
	col, err := t.column("Table.ColumnVariance", j)
	if err != nil {
		return 0, err
	}
	_, variance := stat.PopMeanVariance(col, nil)
	return variance, nil
}

func (t Table) column(op string, j int) ([]float64, error) {
	r, c := t.Dims()
	if r == 0 {
		return nil, errors.NewEmptyDataError(op)
	}
	if j < 0 || j >= c {
		return nil, errors.NewIndexError(op, j, c, 1)
	}
	return mat.Col(make([]float64, r), j, t.data), nil
}

// Slice は [start, end) の行範囲を新しいテーブルとして返す
func (t Table) Slice(start, end int) (Table, error) {
	r, c := t.Dims()
	if start < 0 || start >= r {
		return Table{}, errors.NewIndexError("Table.Slice", start, r, 0)
	}
	if end <= start || end > r {
		return Table{}, errors.NewIndexError("Table.Slice", end, r, 0)
	}
	return Wrap(mat.DenseCopyOf(t.data.Slice(start, end, 0, c))), nil
}

// PrependOnes は先頭に 1.0 の列（切片項）を追加したテーブルを返す
func (t Table) PrependOnes() Table {
	r, c := t.Dims()
	if r == 0 {
		return Table{}
	}
	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1.0)
		for j := 0; j < c; j++ {
			out.Set(i, j+1, t.data.At(i, j))
		}
	}
	return Wrap(out)
}

// Columns は指定した列だけを順に並べたテーブルを返す
func (t Table) Columns(idx ...int) (Table, error) {
	r, c := t.Dims()
	if r == 0 || len(idx) == 0 {
		return Table{}, errors.NewEmptyDataError("Table.Columns")
	}
	out := mat.NewDense(r, len(idx), nil)
	for k, j := range idx {
		if j < 0 || j >= c {
			return Table{}, errors.NewIndexError("Table.Columns", j, c, 1)
		}
		for i := 0; i < r; i++ {
			out.Set(i, k, t.data.At(i, j))
		}
	}
	return Wrap(out), nil
}

// SplitLabel は最終列をラベル、それ以外を特徴量として分割する
func (t Table) SplitLabel() (features, labels Table, err error) {
	r, c := t.Dims()
	if r == 0 {
		return Table{}, Table{}, errors.NewEmptyDataError("Table.SplitLabel")
	}
	if c < 2 {
		return Table{}, Table{}, errors.NewDimensionError("Table.SplitLabel", 2, c, 1)
	}
	features = Wrap(mat.DenseCopyOf(t.data.Slice(0, r, 0, c-1)))
	labels = Wrap(mat.DenseCopyOf(t.data.Slice(0, r, c-1, c)))
	return features, labels, nil
}

// Argmax は各行で最大値を持つ列インデックスを返す（同値の場合は最初の列）
func (t Table) Argmax() []int {
	r, c := t.Dims()
	out := make([]int, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, t.data)
		out[i] = floats.MaxIdx(row)
	}
	return out
}

// Equal は2つのテーブルの形状と値が一致するかを返す
func (t Table) Equal(other Table) bool {
	if t.data == nil || other.data == nil {
		return t.data == nil && other.data == nil
	}
	return mat.Equal(t.data, other.data)
}

// EqualApprox は許容誤差 tol で値が一致するかを返す
func (t Table) EqualApprox(other Table, tol float64) bool {
	if t.data == nil || other.data == nil {
		return t.data == nil && other.data == nil
	}
	return mat.EqualApprox(t.data, other.data, tol)
}

// HasNaN はテーブルに NaN が含まれるかを返す
func (t Table) HasNaN() bool {
	if t.data == nil {
		return false
	}
	return floats.HasNaN(t.data.RawMatrix().Data)
}

// String はテーブルの文字列表現を返す
func (t Table) String() string {
	if t.data == nil {
		return "Table(empty)"
	}
	r, c := t.Dims()
	return fmt.Sprintf("Table(%dx%d)\n%v", r, c, mat.Formatted(t.data, mat.Prefix(""), mat.Squeeze()))
}

// RoundedLabel は浮動小数で保持されたラベル値を整数クラスに変換する
func RoundedLabel(v float64) int {
	return int(math.Round(v))
}
