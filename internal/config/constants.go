// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "srs-tracker"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort          = ":8080"
	DefaultLogLevel            = "info"
	DefaultStudyQueueLimit     = 20
	DefaultAnalyticsWindowDays = 30
	DefaultHardCardMinReviews  = 3
	DefaultHardCardLimit       = 10
	DefaultAccessTokenTTL      = 24 * time.Hour
	DefaultMailerProvider      = "log"
)
