// internal/middleware/dev_auth.go
package middleware

import (
	"net/http"

	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/webutil"

	"github.com/google/uuid"
)

// DevUserContextMiddleware は開発・テスト用の認証ミドルウェア。
// X-User-ID ヘッダーの値をそのまま認証済みユーザーIDとして扱う。
// 本番では絶対に使わないこと。
func DevUserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			appErr := model.NewAppError("UNAUTHORIZED", "X-User-IDヘッダーの形式が正しくありません。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ctx := SetUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
