package linear

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/gradlearn/core/model"
	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/metrics"
	"github.com/YuminosukeSato/gradlearn/optim"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
	"github.com/YuminosukeSato/gradlearn/pkg/telemetry"
	"github.com/YuminosukeSato/gradlearn/preprocessing"
)

// Link は線形推定値 X·W をモデルの出力へ変換する（z を直接書き換える）
type Link func(z *mat.Dense)

// Identity は線形回帰の恒等リンク
func Identity(*mat.Dense) {}

// Sigmoid は要素ごとのロジスティック関数
func Sigmoid(z *mat.Dense) {
	z.Apply(func(_, _ int, v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	}, z)
}

// Softmax は行ごとのソフトマックス。log-sum-exp で桁あふれを防ぐ。
func Softmax(z *mat.Dense) {
	r, c := z.Dims()
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, z)
		lse := errors.LogSumExp(row)
		for j, v := range row {
			z.Set(i, j, math.Exp(v-lse))
		}
	}
}

// lossFunc はエポックごとに記録する損失
type lossFunc func(yTrue, yPred mat.Matrix) (float64, error)

// gradientDescent は3つのモデルが共有するバッチ勾配降下の実装
//
// 特徴量は構築時に標準化され、先頭に切片用の1列が付く。
// 重みは [特徴量数+1, 出力数] でゼロ初期化される。
type gradientDescent struct {
	name string
	id   string
	link Link
	loss lossFunc

	scaler   *preprocessing.StandardScaler
	features *mat.Dense
	labels   *mat.Dense
	weights  *mat.Dense

	config    Config
	batchSize int
	rate      *optim.AdaptiveRate
	history   metrics.History

	state    *model.StateManager
	logger   log.Logger
	observer telemetry.Observer
}

func newGradientDescent(name string, features, labels tensor.Table, link Link, loss lossFunc, opts []Option) (*gradientDescent, error) {
	s := newSettings(opts)
	op := "New" + name

	rows, cols := features.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewEmptyDataError(op)
	}
	if labels.Rows() != rows {
		return nil, errors.NewDimensionError(op, rows, labels.Rows(), 0)
	}
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	batchSize := s.config.BatchSize
	if batchSize == 0 {
		batchSize = rows
	}
	if batchSize > rows {
		return nil, errors.NewValidationError("batch_size", "must not exceed the number of training rows", batchSize)
	}

	scaler := preprocessing.NewStandardScaler()
	standardized, err := scaler.FitTransform(features)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	id := uuid.NewString()
	return &gradientDescent{
		name:      name,
		id:        id,
		link:      link,
		loss:      loss,
		scaler:    scaler,
		features:  standardized.PrependOnes().Dense(),
		labels:    labels.Dense(),
		weights:   tensor.Zeros(cols+1, labels.Cols()),
		config:    s.config,
		batchSize: batchSize,
		rate:      optim.NewAdaptiveRate(s.config.LearningRate),
		state:     model.NewStateManager(),
		logger:    s.logger.With(log.ModelNameKey, name, log.EstimatorIDKey, id),
		observer:  s.observer,
	}, nil
}

// forEachBatch は [0, rows) を size 行ずつ前から順に fn へ渡し、バッチ数を返す。
// size に満たない末尾の行は使わない。
func forEachBatch(rows, size int, fn func(start, end int)) int {
	n := rows / size
	for b := 0; b < n; b++ {
		fn(b*size, (b+1)*size)
	}
	return n
}

// train は設定されたエポック数だけ勾配降下を実行する
//
// 失敗した場合（回収したパニックを含む）、状態は Constructed に戻る。
func (g *gradientDescent) train() (err error) {
	defer func() {
		if err != nil {
			g.state.Reset()
		}
	}()
	defer errors.Recover(&err, g.name+".Train")

	g.state.BeginTraining()
	started := time.Now()

	rows, cols := g.features.Dims()
	batches := rows / g.batchSize
	g.logger.Info("Training started",
		log.OperationKey, log.OperationTrain,
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, rows,
		log.FeaturesKey, cols-1,
		log.TargetsKey, g.labels.RawMatrix().Cols,
		log.BatchSizeKey, g.batchSize,
		log.BatchesKey, batches,
		log.DroppedRowsKey, rows-batches*g.batchSize,
		log.IterationsKey, g.config.Iterations,
		log.LearningRateKey, g.rate.Rate(),
	)

	warned := false
	for epoch := 1; epoch <= g.config.Iterations; epoch++ {
		forEachBatch(rows, g.batchSize, g.step)

		loss, err := g.loss(g.labels, g.estimate(g.features))
		if err != nil {
			return err
		}
		if unstable := errors.CheckScalar("loss", loss, epoch); unstable != nil && !warned {
			errors.Warn(unstable)
			warned = true
		}
		g.history.Push(loss)
		rate := g.rate.Adjust(g.history)

		g.logger.Debug("Epoch finished",
			log.EpochKey, epoch,
			log.LossKey, loss,
			log.LearningRateKey, rate,
		)
		g.observer.ObserveEpoch(telemetry.Epoch{
			Model:        g.name,
			EstimatorID:  g.id,
			Epoch:        epoch,
			Loss:         loss,
			LearningRate: rate,
		})
	}

	wr, wc := g.weights.Dims()
	if unstable := errors.CheckMatrix("weights", g.weights, wr, wc, g.config.Iterations); unstable != nil {
		g.logger.Warn("Weights are not finite after training",
			log.ErrorCodeKey, log.ErrorNumerical,
			log.ErrorTypeKey, unstable.Error(),
		)
	}

	g.state.SetDimensions(cols-1, rows)
	g.state.SetFitted()

	last, _ := g.history.Latest()
	g.logger.Info("Training finished",
		log.OperationKey, log.OperationTrain,
		log.DurationMsKey, time.Since(started).Milliseconds(),
		log.LossKey, last,
		log.LearningRateKey, g.rate.Rate(),
	)
	return nil
}

// step は1バッチ分の重み更新 W ← W - lr·Xᵀ(link(X·W) - y)/rows を行う
func (g *gradientDescent) step(start, end int) {
	_, cols := g.features.Dims()
	_, outputs := g.labels.Dims()
	x := g.features.Slice(start, end, 0, cols)
	y := g.labels.Slice(start, end, 0, outputs)

	var diff mat.Dense
	diff.Mul(x, g.weights)
	g.link(&diff)
	diff.Sub(&diff, y)

	var gradient mat.Dense
	gradient.Mul(x.T(), &diff)
	gradient.Scale(g.rate.Rate()/float64(end-start), &gradient)

	g.weights.Sub(g.weights, &gradient)
}

// estimate は link(X·W) を返す
func (g *gradientDescent) estimate(x mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Mul(x, g.weights)
	g.link(&out)
	return &out
}

// prepare は観測値を訓練時と同じ平均・分散で標準化し、切片列を付ける
func (g *gradientDescent) prepare(op string, observations tensor.Table) (*mat.Dense, error) {
	if observations.IsEmpty() {
		return nil, errors.NewEmptyDataError(op)
	}
	standardized, err := g.scaler.Transform(observations)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return standardized.PrependOnes().Dense(), nil
}

// output は観測値に対するリンク後の出力を返す
func (g *gradientDescent) output(op string, observations tensor.Table) (*mat.Dense, error) {
	x, err := g.prepare(op, observations)
	if err != nil {
		return nil, err
	}
	return g.estimate(x), nil
}

// checkLabels はテストラベルの行数と列数を検証する
func (g *gradientDescent) checkLabels(op string, testFeatures, testLabels tensor.Table) error {
	if testLabels.Rows() != testFeatures.Rows() {
		return errors.NewDimensionError(op, testFeatures.Rows(), testLabels.Rows(), 0)
	}
	if _, outputs := g.labels.Dims(); testLabels.Cols() != outputs {
		return errors.NewDimensionError(op, outputs, testLabels.Cols(), 1)
	}
	return nil
}

func (g *gradientDescent) logTest(metric string, score float64, rows int) {
	g.logger.Info("Tested",
		log.OperationKey, log.OperationTest,
		log.PhaseKey, log.PhaseTesting,
		log.SamplesKey, rows,
		metric, score,
	)
}

// Weights は重み行列（先頭行が切片）のコピーを返す
func (g *gradientDescent) Weights() tensor.Table {
	return tensor.Wrap(mat.DenseCopyOf(g.weights))
}

// LearningRate は現在の学習率を返す
func (g *gradientDescent) LearningRate() float64 {
	return g.rate.Rate()
}

// LossHistory はエポックごとの損失（新しい順）のコピーを返す
func (g *gradientDescent) LossHistory() metrics.History {
	return g.history.Clone()
}

// Config は構築時の設定を返す
func (g *gradientDescent) Config() Config {
	return g.config
}

// State は現在のライフサイクル状態を返す
func (g *gradientDescent) State() model.State {
	return g.state.State()
}

// EstimatorID はログとメトリクスに使うインスタンスIDを返す
func (g *gradientDescent) EstimatorID() string {
	return g.id
}
