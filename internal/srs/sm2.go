// internal/srs/sm2.go

// Package srs はSM-2系の間隔反復スケジューリングを実装します。
// Calculate は純粋関数で、I/O・時計・共有状態を一切持たないため
// 任意のゴルーチンから安全に呼び出せます。
package srs

import (
	"errors"
	"math"
	"time"
)

// 新規カードの初期値
const (
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3
)

// ErrQualityOutOfRange は quality が 0..5 の範囲外のときに返されます。
// 値の補正（クランプ）は行わず、必ずエラーにします。
var ErrQualityOutOfRange = errors.New("srs: quality must be in range 0..5")

// Result はレビュー適用後の新しいスケジューリング状態です。
type Result struct {
	Repetitions  int
	IntervalDays int
	EaseFactor   float64
	NextReviewAt time.Time
}

// Calculate は現在の状態とレビュー評価から次の状態を計算します。
//
//   - quality: 0 (完全に忘却) .. 5 (完璧な想起)。範囲外は ErrQualityOutOfRange。
//   - repetitions / intervalDays: 現在の連続正解回数と間隔（日数）。
//   - easeFactor: 現在のEF (1.3以上が前提)。
//   - reviewDate: レビュー実施日。内部で時計は読まない（呼び出し側が渡す）。
//
// EF更新式: EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02))。下限1.3、上限なし。
// quality < 3 は失敗扱いで repetitions=0, interval=1 にリセットする。
// 3回目以降の間隔 round(interval*EF') の丸めは四捨五入
// (round half away from zero, math.Round) に固定している。
func Calculate(quality, repetitions, intervalDays int, easeFactor float64, reviewDate time.Time) (Result, error) {
	if quality < 0 || quality > 5 {
		return Result{}, ErrQualityOutOfRange
	}

	q := float64(quality)
	ef := easeFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}

	var reps, interval int
	if quality < 3 {
		// 失敗: 進捗をリセットし、翌日必ず復習する
		reps = 0
		interval = 1
	} else {
		reps = repetitions + 1
		switch {
		case reps == 1:
			interval = 1
		case reps == 2:
			interval = 6
		default:
			if intervalDays > 0 {
				interval = int(math.Round(float64(intervalDays) * ef))
			} else {
				// 3回目以降で間隔0は本来起こらない状態。元実装に合わせて6にフォールバック
				interval = 6
			}
		}
	}

	return Result{
		Repetitions:  reps,
		IntervalDays: interval,
		EaseFactor:   ef,
		NextReviewAt: reviewDate.AddDate(0, 0, interval),
	}, nil
}
