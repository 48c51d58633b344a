package model

// State はモデルのライフサイクル上の状態を表す
type State int

const (
	// Constructed は構築直後（重みはゼロ）の状態
	Constructed State = iota
	// Training は Train 実行中の状態
	Training
	// Trained は Train が完了した状態
	Trained
)

// String は状態名を返す
func (s State) String() string {
	switch s {
	case Constructed:
		return "constructed"
	case Training:
		return "training"
	case Trained:
		return "trained"
	default:
		return "unknown"
	}
}
