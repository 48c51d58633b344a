package linear

import (
	"math"

	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
	"github.com/YuminosukeSato/gradlearn/pkg/telemetry"
)

// Config はハイパーパラメータ
//
// 学習中に変化するのは学習率のみで、その現在値は各モデルの LearningRate で取得する。
type Config struct {
	// LearningRate は初期学習率
	LearningRate float64
	// Iterations はエポック数
	Iterations int
	// BatchSize はミニバッチの行数。0 は訓練データ全体を1バッチとする
	BatchSize int
	// DecisionBoundary は二値分類で正例と判定する確率のしきい値（p > boundary）
	DecisionBoundary float64
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		LearningRate:     0.1,
		Iterations:       1000,
		BatchSize:        0,
		DecisionBoundary: 0.5,
	}
}

// Validate は設定値を検証し、不正な値に対して ValidationError を返す
func (c Config) Validate() error {
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return errors.NewValidationError("learning_rate", "must be a positive finite number", c.LearningRate)
	}
	if c.Iterations <= 0 {
		return errors.NewValidationError("iterations", "must be positive", c.Iterations)
	}
	if c.BatchSize < 0 {
		return errors.NewValidationError("batch_size", "must be positive, or 0 for the full training set", c.BatchSize)
	}
	if c.DecisionBoundary < 0 || c.DecisionBoundary > 1 || math.IsNaN(c.DecisionBoundary) {
		return errors.NewValidationError("decision_boundary", "must be within [0, 1]", c.DecisionBoundary)
	}
	return nil
}

// Option はモデルの設定を変更する関数
type Option func(*settings)

type settings struct {
	config   Config
	logger   log.Logger
	observer telemetry.Observer
}

// WithLearningRate は初期学習率を設定する
func WithLearningRate(rate float64) Option {
	return func(s *settings) {
		s.config.LearningRate = rate
	}
}

// WithIterations はエポック数を設定する
func WithIterations(n int) Option {
	return func(s *settings) {
		s.config.Iterations = n
	}
}

// WithBatchSize はミニバッチの行数を設定する
func WithBatchSize(n int) Option {
	return func(s *settings) {
		s.config.BatchSize = n
	}
}

// WithDecisionBoundary は二値分類のしきい値を設定する
func WithDecisionBoundary(boundary float64) Option {
	return func(s *settings) {
		s.config.DecisionBoundary = boundary
	}
}

// WithConfig は設定全体を置き換える
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		s.config = cfg
	}
}

// WithLogger はログ出力先を設定する
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithObserver はエポックごとの進捗の通知先を設定する
func WithObserver(observer telemetry.Observer) Option {
	return func(s *settings) {
		s.observer = observer
	}
}

func newSettings(opts []Option) settings {
	s := settings{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = log.GetLoggerWithName("linear")
	}
	if s.observer == nil {
		s.observer = telemetry.NopObserver{}
	}
	return s
}
