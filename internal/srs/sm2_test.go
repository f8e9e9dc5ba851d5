// internal/srs/sm2_test.go
package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalculate(t *testing.T) {
	reviewDate := date(2024, 1, 1)

	tests := []struct {
		name         string
		quality      int
		repetitions  int
		intervalDays int
		easeFactor   float64
		wantReps     int
		wantInterval int
		wantEase     float64
		wantNext     time.Time
		wantErr      error
	}{
		{
			name:    "異常系: quality=-1 は範囲外エラー",
			quality: -1, repetitions: 1, intervalDays: 1, easeFactor: 2.5,
			wantErr: ErrQualityOutOfRange,
		},
		{
			name:    "異常系: quality=6 は範囲外エラー",
			quality: 6, repetitions: 1, intervalDays: 1, easeFactor: 2.5,
			wantErr: ErrQualityOutOfRange,
		},
		{
			name:    "正常系: 初回レビュー q=4 -> reps=1, interval=1, EF変化なし",
			quality: 4, repetitions: 0, intervalDays: 0, easeFactor: 2.5,
			wantReps: 1, wantInterval: 1, wantEase: 2.5, wantNext: date(2024, 1, 2),
		},
		{
			name:    "正常系: 2回目レビュー q=5 -> reps=2, interval=6, EF+0.1",
			quality: 5, repetitions: 1, intervalDays: 1, easeFactor: 2.5,
			wantReps: 2, wantInterval: 6, wantEase: 2.6, wantNext: date(2024, 1, 7),
		},
		{
			name:    "正常系: 3回目以降は interval*EF' を四捨五入 (6*2.6=15.6 -> 16)",
			quality: 4, repetitions: 2, intervalDays: 6, easeFactor: 2.6,
			wantReps: 3, wantInterval: 16, wantEase: 2.6, wantNext: date(2024, 1, 17),
		},
		{
			name:    "正常系: .5 は切り上げ方向に丸める (5*1.3=6.5 -> 7)",
			quality: 3, repetitions: 5, intervalDays: 5, easeFactor: 1.3,
			// EF'は1.16に下がるので下限1.3にクランプされる
			wantReps: 6, wantInterval: 7, wantEase: 1.3, wantNext: date(2024, 1, 8),
		},
		{
			name:    "正常系: 失敗 (q=2) は reps=0, interval=1 にリセット",
			quality: 2, repetitions: 8, intervalDays: 120, easeFactor: 2.6,
			wantReps: 0, wantInterval: 1, wantEase: 2.28, wantNext: date(2024, 1, 2),
		},
		{
			name:    "正常系: 完全忘却 (q=0) でもEFは1.3未満にならない",
			quality: 0, repetitions: 3, intervalDays: 15, easeFactor: 1.3,
			wantReps: 0, wantInterval: 1, wantEase: MinEaseFactor, wantNext: date(2024, 1, 2),
		},
		{
			name:    "正常系: q=0 のEF減少量は0.8",
			quality: 0, repetitions: 1, intervalDays: 1, easeFactor: 2.5,
			wantReps: 0, wantInterval: 1, wantEase: 1.7, wantNext: date(2024, 1, 2),
		},
		{
			name:    "正常系: 3回目以降で interval=0 (不正データ) は6日にフォールバック",
			quality: 4, repetitions: 2, intervalDays: 0, easeFactor: 2.5,
			wantReps: 3, wantInterval: 6, wantEase: 2.5, wantNext: date(2024, 1, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.quality, tt.repetitions, tt.intervalDays, tt.easeFactor, reviewDate)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, Result{}, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantReps, got.Repetitions)
			assert.Equal(t, tt.wantInterval, got.IntervalDays)
			assert.InDelta(t, tt.wantEase, got.EaseFactor, 1e-9)
			assert.Equal(t, tt.wantNext, got.NextReviewAt)
		})
	}
}

// 新規カードから始めて複数回レビューしたときの一連の状態遷移を確認する
func TestCalculate_Sequence(t *testing.T) {
	// 初期状態: reps=0, interval=0, EF=2.5
	r1, err := Calculate(4, 0, 0, InitialEaseFactor, date(2024, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, 1, r1.Repetitions)
	assert.Equal(t, 1, r1.IntervalDays)
	assert.InDelta(t, 2.5, r1.EaseFactor, 1e-9)
	assert.Equal(t, date(2024, 1, 2), r1.NextReviewAt)

	// 翌日 q=5
	r2, err := Calculate(5, r1.Repetitions, r1.IntervalDays, r1.EaseFactor, r1.NextReviewAt)
	require.NoError(t, err)
	assert.Equal(t, 2, r2.Repetitions)
	assert.Equal(t, 6, r2.IntervalDays)
	assert.InDelta(t, 2.6, r2.EaseFactor, 1e-9)
	assert.Equal(t, date(2024, 1, 8), r2.NextReviewAt)

	// 失敗 (q=2) で必ずリセットされる
	r3, err := Calculate(2, r2.Repetitions, r2.IntervalDays, r2.EaseFactor, r2.NextReviewAt)
	require.NoError(t, err)
	assert.Equal(t, 0, r3.Repetitions)
	assert.Equal(t, 1, r3.IntervalDays)
	assert.Equal(t, date(2024, 1, 9), r3.NextReviewAt)
}

// 月末・うるう年をまたぐ日付計算が暦通りであることを確認する
func TestCalculate_CalendarBoundaries(t *testing.T) {
	// うるう年の2月28日 + 1日 = 2月29日
	r, err := Calculate(3, 0, 0, 2.5, date(2024, 2, 28))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 2, 29), r.NextReviewAt)

	// 2月29日 + 6日 = 3月6日
	r, err = Calculate(4, 1, 1, 2.5, date(2024, 2, 29))
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 6), r.NextReviewAt)

	// 平年の2月28日 + 6日 = 3月6日
	r, err = Calculate(4, 1, 1, 2.5, date(2023, 2, 28))
	require.NoError(t, err)
	assert.Equal(t, date(2023, 3, 6), r.NextReviewAt)

	// 年末をまたぐ
	r, err = Calculate(4, 2, 6, 2.6, date(2023, 12, 30))
	require.NoError(t, err)
	assert.Equal(t, 16, r.IntervalDays)
	assert.Equal(t, date(2024, 1, 15), r.NextReviewAt)
}

// 同じ入力に対して常に同じ出力を返すこと (純粋関数)
func TestCalculate_Deterministic(t *testing.T) {
	for q := 0; q <= 5; q++ {
		a, err1 := Calculate(q, 3, 15, 2.1, date(2024, 6, 1))
		b, err2 := Calculate(q, 3, 15, 2.1, date(2024, 6, 1))
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, a, b, "quality=%d", q)
	}
}

// 全quality・複数の事前状態でEFが下限1.3を割らないこと
func TestCalculate_EaseFactorNeverBelowMin(t *testing.T) {
	priors := []float64{1.3, 1.5, 2.0, 2.5, 3.2}
	for q := 0; q <= 5; q++ {
		for _, ef := range priors {
			got, err := Calculate(q, 2, 10, ef, date(2024, 6, 1))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.EaseFactor, MinEaseFactor, "quality=%d ef=%f", q, ef)
			// 失敗時のリセットも常に成立する
			if q < 3 {
				assert.Equal(t, 0, got.Repetitions)
				assert.Equal(t, 1, got.IntervalDays)
			} else {
				assert.Equal(t, 3, got.Repetitions)
			}
		}
	}
}
