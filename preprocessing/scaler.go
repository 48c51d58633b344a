// Package preprocessing provides the feature scalers used before distance
// computation and gradient descent.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/core/model"
	"github.com/YuminosukeSato/gradlearn/core/parallel"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
)

// StandardScaler はデータを列ごとに平均0・分散1へ変換する
//
// 分散は母分散（n で割る）。分散がちょうど0の列は分散1として扱うため、
// 定数列は全て0に変換される。
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Variance は各特徴量の母分散（0 は 1 に置き換え済み）
	Variance []float64
}

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler()
//	scaled, err := scaler.FitTransform(features)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{state: model.NewStateManager()}
}

// Fit は訓練データから各列の平均と母分散を計算する
//
// パラメータ:
//   - X: 訓練データ (n_samples × n_features)
//
// 戻り値:
//   - error: 空データの場合は ErrEmptyData
func (s *StandardScaler) Fit(X tensor.Table) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyDataError("StandardScaler.Fit")
	}

	mean := make([]float64, c)
	variance := make([]float64, c)
	for j := 0; j < c; j++ {
		m, err := X.ColumnMean(j)
		if err != nil {
			return err
		}
		v, err := X.ColumnVariance(j)
		if err != nil {
			return err
		}
		// 定数列はゼロ除算を避けるため分散1とする
		if v == 0 {
			v = 1
		}
		mean[j] = m
		variance[j] = v
	}

	s.Mean = mean
	s.Variance = variance
	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
//
// パラメータ:
//   - X: 変換するデータ（列数は Fit 時と同じであること）
//
// 戻り値:
//   - tensor.Table: 標準化されたデータ
//   - error: 未学習なら NotFittedError、列数が違えば DimensionError
func (s *StandardScaler) Transform(X tensor.Table) (tensor.Table, error) {
	if err := s.check("Transform", X); err != nil {
		return tensor.Table{}, err
	}
	return mapElements(X, func(j int, v float64) float64 {
		return (v - s.Mean[j]) / math.Sqrt(s.Variance[j])
	}), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X tensor.Table) (tensor.Table, error) {
	if err := s.Fit(X); err != nil {
		return tensor.Table{}, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X tensor.Table) (tensor.Table, error) {
	if err := s.check("InverseTransform", X); err != nil {
		return tensor.Table{}, err
	}
	return mapElements(X, func(j int, v float64) float64 {
		return v*math.Sqrt(s.Variance[j]) + s.Mean[j]
	}), nil
}

// IsFitted は Fit 済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

func (s *StandardScaler) check(method string, X tensor.Table) error {
	if err := s.state.RequireFitted("StandardScaler", method); err != nil {
		return err
	}
	if X.IsEmpty() {
		return errors.NewEmptyDataError("StandardScaler." + method)
	}
	return s.state.RequireFeatures("StandardScaler."+method, X.Cols())
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	nFeatures, _ := s.state.GetDimensions()
	return fmt.Sprintf("StandardScaler(n_features=%d)", nFeatures)
}

// MinMaxScaler はデータを列ごとに指定範囲（デフォルト[0,1]）へスケーリングする
//
// 最大値と最小値が等しい列は範囲1として扱い、FeatureRange の下限に変換される。
type MinMaxScaler struct {
	state *model.StateManager

	// DataMin は学習データの最小値
	DataMin []float64

	// DataMax は学習データの最大値
	DataMax []float64

	// Scale は各特徴量のスケール (max - min、定数列は 1)
	Scale []float64

	// FeatureRange はスケーリング後の範囲 [min, max]
	FeatureRange [2]float64
}

// NewMinMaxScaler は新しいMinMaxScalerを作成する
//
// パラメータ:
//   - featureRange: スケーリング後の範囲 [min, max]
//
// 使用例:
//
//	scaler := preprocessing.NewMinMaxScaler([2]float64{0.0, 1.0})
//	scaled, err := scaler.FitTransform(X)
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{
		state:        model.NewStateManager(),
		FeatureRange: featureRange,
	}
}

// NewMinMaxScalerDefault はデフォルト設定([0,1]範囲)でMinMaxScalerを作成する
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit は訓練データから各列の最小値・最大値を計算する
func (m *MinMaxScaler) Fit(X tensor.Table) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewEmptyDataError("MinMaxScaler.Fit")
	}
	if m.FeatureRange[1] <= m.FeatureRange[0] {
		return errors.NewValidationError("feature_range", "upper bound must exceed lower bound", m.FeatureRange)
	}

	dataMin := make([]float64, c)
	dataMax := make([]float64, c)
	scale := make([]float64, c)
	for j := 0; j < c; j++ {
		lo, err := X.ColumnMin(j)
		if err != nil {
			return err
		}
		hi, err := X.ColumnMax(j)
		if err != nil {
			return err
		}
		dataMin[j] = lo
		dataMax[j] = hi
		scale[j] = hi - lo
		if scale[j] == 0 {
			scale[j] = 1
		}
	}

	m.DataMin = dataMin
	m.DataMax = dataMax
	m.Scale = scale
	m.state.SetDimensions(c, r)
	m.state.SetFitted()
	return nil
}

// Transform は学習済みの最小値・最大値を使ってデータをスケーリングする
func (m *MinMaxScaler) Transform(X tensor.Table) (tensor.Table, error) {
	if err := m.check("Transform", X); err != nil {
		return tensor.Table{}, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return mapElements(X, func(j int, v float64) float64 {
		return (v-m.DataMin[j])/m.Scale[j]*width + m.FeatureRange[0]
	}), nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (m *MinMaxScaler) FitTransform(X tensor.Table) (tensor.Table, error) {
	if err := m.Fit(X); err != nil {
		return tensor.Table{}, err
	}
	return m.Transform(X)
}

// InverseTransform はスケーリングされたデータを元の範囲に戻す
func (m *MinMaxScaler) InverseTransform(X tensor.Table) (tensor.Table, error) {
	if err := m.check("InverseTransform", X); err != nil {
		return tensor.Table{}, err
	}
	width := m.FeatureRange[1] - m.FeatureRange[0]
	return mapElements(X, func(j int, v float64) float64 {
		return (v-m.FeatureRange[0])/width*m.Scale[j] + m.DataMin[j]
	}), nil
}

// IsFitted は Fit 済みかどうかを返す
func (m *MinMaxScaler) IsFitted() bool {
	return m.state.IsFitted()
}

func (m *MinMaxScaler) check(method string, X tensor.Table) error {
	if err := m.state.RequireFitted("MinMaxScaler", method); err != nil {
		return err
	}
	if X.IsEmpty() {
		return errors.NewEmptyDataError("MinMaxScaler." + method)
	}
	return m.state.RequireFeatures("MinMaxScaler."+method, X.Cols())
}

// String はスケーラーの文字列表現を返す
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f])",
			m.FeatureRange[0], m.FeatureRange[1])
	}
	nFeatures, _ := m.state.GetDimensions()
	return fmt.Sprintf("MinMaxScaler(feature_range=[%.1f, %.1f], n_features=%d)",
		m.FeatureRange[0], m.FeatureRange[1], nFeatures)
}

// mapElements は各要素に fn(列, 値) を適用した新しいテーブルを返す。
// 大きなテーブルでは行範囲ごとに並列処理する。
func mapElements(X tensor.Table, fn func(j int, v float64) float64) tensor.Table {
	r, c := X.Dims()
	src := X.Matrix()
	out := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, j, fn(j, src.At(i, j)))
			}
		}
	})
	return tensor.Wrap(out)
}

var (
	_ model.InverseTransformer = (*StandardScaler)(nil)
	_ model.InverseTransformer = (*MinMaxScaler)(nil)
)
