// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// cockroachdb/errors を基盤に、スタックトレース付きの構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("linreg-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
// nil を渡すと従来のハンドラに戻ります。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// ConvergenceWarning は最適化が期待通りに進まなかった場合の警告です。
// 学習は打ち切られず、指定された反復回数を最後まで実行します。
type ConvergenceWarning struct {
	Algorithm  string
	Iterations int
	Message    string
}

func (w *ConvergenceWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s may not converge after %d iterations: %s", w.Algorithm, w.Iterations, w.Message)
	}
	return fmt.Sprintf("%s may not converge after %d iterations. Consider adjusting the learning rate or the iteration count.", w.Algorithm, w.Iterations)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *ConvergenceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("algorithm", w.Algorithm).
		Int("iterations", w.Iterations).
		Str("message", w.Message).
		Str("type", "ConvergenceWarning")
}

// NewConvergenceWarning は新しいConvergenceWarningを作成します。
func NewConvergenceWarning(algorithm string, iterations int, message string) *ConvergenceWarning {
	return &ConvergenceWarning{Algorithm: algorithm, Iterations: iterations, Message: message}
}

// ===========================================================================
//
//	入出力エラー
//
// ===========================================================================

// Kind はデータセットおよびモデルファイルの入出力エラーの種類です。
type Kind int

const (
	// KindUnknown は IOError 以外のエラーを表します。
	KindUnknown Kind = iota
	// CouldNotOpenFile は入力ファイルを開けない場合です。
	CouldNotOpenFile
	// InvalidFormat は内容が期待した形式に解析できない場合です。
	InvalidFormat
	// IsEmpty は解析は成功したがデータ行が一つもない場合です。
	IsEmpty
	// CouldNotSaveFile は出力ファイルの作成・書き込みに失敗した場合です。
	CouldNotSaveFile
	// CouldNotSerialize はレコードのエンコードに失敗した場合です。
	CouldNotSerialize
)

func (k Kind) String() string {
	switch k {
	case CouldNotOpenFile:
		return "CouldNotOpenFile"
	case InvalidFormat:
		return "InvalidFormat"
	case IsEmpty:
		return "IsEmpty"
	case CouldNotSaveFile:
		return "CouldNotSaveFile"
	case CouldNotSerialize:
		return "CouldNotSerialize"
	default:
		return "Unknown"
	}
}

// sentinel は errors.Is で種類を判定するための番兵エラーを返します。
func (k Kind) sentinel() error {
	switch k {
	case CouldNotOpenFile:
		return ErrCouldNotOpenFile
	case InvalidFormat:
		return ErrInvalidFormat
	case IsEmpty:
		return ErrIsEmpty
	case CouldNotSaveFile:
		return ErrCouldNotSaveFile
	case CouldNotSerialize:
		return ErrCouldNotSerialize
	default:
		return nil
	}
}

// IOError はファイルの読み書きに関するエラーです。
// Kind ごとに番兵エラーと errors.Is で照合できます。
type IOError struct {
	Op     string
	Kind   Kind
	Detail string
	Err    error
}

func (e *IOError) Error() string {
	if e.Kind == IsEmpty && e.Detail == "" {
		return fmt.Sprintf("linreg: %s: dataset is empty", e.Op)
	}
	return fmt.Sprintf("linreg: %s: %s: %s", e.Op, e.Kind, e.Detail)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is は同じ Kind の番兵エラーに一致します。
func (e *IOError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *IOError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind.String()).
		Str("detail", e.Detail).
		Str("type", "IOError")
}

// NewIOError は新しいIOErrorを作成し、スタックトレースを付与します。
// err が nil でない場合、Detail は err のメッセージになります。
func NewIOError(op string, kind Kind, err error) error {
	ioErr := &IOError{Op: op, Kind: kind, Err: err}
	if err != nil {
		ioErr.Detail = err.Error()
	}
	return errors.WithStack(ioErr)
}

// NewIOErrorf は詳細メッセージを指定してIOErrorを作成します。
func NewIOErrorf(op string, kind Kind, format string, args ...interface{}) error {
	ioErr := &IOError{Op: op, Kind: kind, Detail: fmt.Sprintf(format, args...)}
	return errors.WithStack(ioErr)
}

// KindOf はエラーチェーン中の IOError の種類を返します。
func KindOf(err error) Kind {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Kind
	}
	return KindUnknown
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError は必要な前処理（正規化など）が済んでいない状態で操作を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("linreg: %s: this estimator is not fitted yet. Call Fit() or Normalize() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの長さが期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("linreg: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("linreg: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// ValueError は引数の値やオブジェクトの状態が操作に対して不適切な場合のエラーです。
type ValueError struct {
	Op      string
	Message string
	Err     error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("linreg: %s: %s", e.Op, e.Message)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NewValueErrorWrap は原因となる番兵エラーをラップしたValueErrorを作成します。
func NewValueErrorWrap(op, message string, cause error) error {
	err := &ValueError{Op: op, Message: message, Err: cause}
	return errors.WithStack(err)
}

// ModelError はモデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("linreg: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("linreg: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// NumericalInstabilityError は数値計算が不安定になった場合のエラーです。
// 学習中に係数が NaN や Inf になったことを検出します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "gradient_descent"）
	Values    []float64 // 問題のある値
	Iteration int       // 発生したイテレーション番号
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	return fmt.Sprintf("linreg: numerical instability detected in %s at iteration %d. Values: [%s]",
		e.Operation, e.Iteration, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("iteration", e.Iteration).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
func NewNumericalInstabilityError(operation string, values []float64, iteration int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		Iteration: iteration,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrZeroRange は最小値と最大値が等しく正規化できない場合のエラーです。
	ErrZeroRange = New("zero range")

	// ErrZeroDenominator は相対誤差の分母となる実測値が0の場合のエラーです。
	ErrZeroDenominator = New("zero denominator")

	// 入出力エラーの種類ごとの番兵
	ErrCouldNotOpenFile  = New("could not open file")
	ErrInvalidFormat     = New("invalid format")
	ErrIsEmpty           = New("is empty")
	ErrCouldNotSaveFile  = New("could not save file")
	ErrCouldNotSerialize = New("could not serialize")
)
