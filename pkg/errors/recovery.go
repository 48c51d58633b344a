package errors

import (
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	パニックからの復帰
//
// ===========================================================================

// PanicError は公開メソッド内で回収したパニックを表します。
// gonum の mat パッケージは形状の不一致などをパニックで通知するため、
// モデルの入口で error に変換します。
type PanicError struct {
	// Operation はパニックを回収したメソッド名（例: "LinearRegression.Train"）
	Operation string
	// PanicValue は panic() に渡された値
	PanicValue interface{}
	// StackTrace は回収時点のスタックトレース
	StackTrace string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("gradlearn: panic in %s: %v", e.Operation, e.PanicValue)
}

// Unwrap はパニック値が error（mat.ErrShape など）の場合にそれを返します。
// errors.Is(err, mat.ErrShape) で判定できます。
func (e *PanicError) Unwrap() error {
	if err, ok := e.PanicValue.(error); ok {
		return err
	}
	return nil
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *PanicError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Str("panic", fmt.Sprint(e.PanicValue)).
		Str("type", "PanicError")
}

// NewPanicError はスタックトレース付きの PanicError を作成します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		Operation:  operation,
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
	}
}

// Recover は defer で呼び出し、パニックを *err に変換します。
//
//	func (lr *LinearRegression) Predict(X tensor.Table) (out tensor.Table, err error) {
//	    defer errors.Recover(&err, "LinearRegression.Predict")
//	    ...
//	}
//
// 既にエラーが設定されている場合は、そのエラーを保ったままパニック情報を付け加えます。
func Recover(err *error, operation string) {
	r := recover()
	if r == nil {
		return
	}
	panicErr := NewPanicError(operation, r)
	if *err != nil {
		*err = Wrapf(*err, "%s", panicErr.Error())
		return
	}
	*err = panicErr
}
