// internal/handlers/analytics_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_srs_tracker/internal/middleware"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/service"
	"go_srs_tracker/internal/webutil"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  *slog.Logger
}

func NewAnalyticsHandler(s service.AnalyticsService, logger *slog.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyticsHandler{
		service: s,
		logger:  logger,
	}
}

// GetReviewStats はレビュー実績の集計結果を返すハンドラ
func (h *AnalyticsHandler) GetReviewStats(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetReviewStats"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	resp, err := h.service.GetReviewStats(r.Context(), userID)
	if err != nil {
		logger.Error("Error getting review stats in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
