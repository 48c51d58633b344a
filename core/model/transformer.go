package model

import "github.com/YuminosukeSato/gradlearn/core/tensor"

// Transformer はデータ変換のインターフェース
type Transformer interface {
	// Fit は変換に必要なパラメータを学習する
	Fit(X tensor.Table) error

	// Transform はデータを変換する
	Transform(X tensor.Table) (tensor.Table, error)

	// FitTransform はFitとTransformを同時に実行する
	FitTransform(X tensor.Table) (tensor.Table, error)
}

// InverseTransformer は変換を元に戻せる Transformer
type InverseTransformer interface {
	Transformer

	// InverseTransform は変換後のデータを元のスケールに戻す
	InverseTransform(X tensor.Table) (tensor.Table, error)
}
