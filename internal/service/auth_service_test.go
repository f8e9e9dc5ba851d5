// internal/service/auth_service_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_srs_tracker/internal/config"
	"go_srs_tracker/internal/model"
	"go_srs_tracker/internal/repository/mocks"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBAuth() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for auth service testing: " + err.Error())
	}
	return db
}

func newAuthTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: time.Hour,
			Issuer:         "srs-tracker",
		},
	}
}

// --- Test Register ---
func Test_authService_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAuth()

	req := &model.RegisterRequest{
		Name:     "山田太郎",
		Email:    "taro@example.com",
		Password: "password123",
	}

	tests := []struct {
		name        string
		setupMock   func(m *mocks.UserRepository)
		wantErr     error
		wantErrCode string
	}{
		{
			name: "正常系: ユーザー作成とパスワードハッシュ化",
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), req.Email).
					Return(nil, model.ErrNotFound).Once()
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(u *model.User) bool {
					assert.Equal(t, req.Name, u.Name)
					assert.Equal(t, req.Email, u.Email)
					// 平文のまま保存していないこと
					assert.NotEqual(t, req.Password, u.PasswordHash)
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)))
					return true
				})).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: メールアドレス重複",
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), req.Email).
					Return(&model.User{UserID: uuid.New(), Email: req.Email}, nil).Once()
			},
			wantErr:     model.ErrConflict,
			wantErrCode: "DUPLICATE_EMAIL",
		},
		{
			name: "異常系: 作成時のユニーク制約違反 (レースコンディション)",
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), req.Email).
					Return(nil, model.ErrNotFound).Once()
				m.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.User")).
					Return(model.ErrConflict).Once()
			},
			wantErr:     model.ErrConflict,
			wantErrCode: "DUPLICATE_EMAIL",
		},
		{
			name: "異常系: 重複チェックでDBエラー",
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, mock.AnythingOfType("*gorm.DB"), req.Email).
					Return(nil, errors.New("db error")).Once()
			},
			wantErrCode: "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			tt.setupMock(mockUserRepo)

			svc := NewAuthService(db, mockUserRepo, &LogMailer{}, newAuthTestConfig())

			user, err := svc.Register(ctx, req)

			if tt.wantErr != nil || tt.wantErrCode != "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				if tt.wantErrCode != "" {
					var appErr *model.AppError
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, tt.wantErrCode, appErr.Detail.Code)
				}
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEqual(t, uuid.Nil, user.UserID)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}

// --- Test Login ---
func Test_authService_Login(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBAuth()
	cfg := newAuthTestConfig()

	userID := uuid.New()
	password := "correct-password"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	storedUser := &model.User{
		UserID:       userID,
		Name:         "山田太郎",
		Email:        "taro@example.com",
		PasswordHash: string(hashed),
	}

	tests := []struct {
		name        string
		req         *model.LoginRequest
		setupMock   func(m *mocks.UserRepository)
		wantErr     error
		wantErrCode string
	}{
		{
			name: "正常系: 正しい資格情報でトークンを発行",
			req:  &model.LoginRequest{Email: storedUser.Email, Password: password},
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, db, storedUser.Email).Return(storedUser, nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "異常系: パスワード不一致",
			req:  &model.LoginRequest{Email: storedUser.Email, Password: "wrong-password"},
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, db, storedUser.Email).Return(storedUser, nil).Once()
			},
			wantErr:     model.ErrInvalidInput,
			wantErrCode: "AUTHENTICATION_FAILED",
		},
		{
			name: "異常系: ユーザーが存在しない",
			req:  &model.LoginRequest{Email: "unknown@example.com", Password: password},
			setupMock: func(m *mocks.UserRepository) {
				m.On("FindByEmail", ctx, db, "unknown@example.com").Return(nil, model.ErrNotFound).Once()
			},
			wantErr:     model.ErrInvalidInput,
			wantErrCode: "AUTHENTICATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUserRepo := new(mocks.UserRepository)
			tt.setupMock(mockUserRepo)

			svc := NewAuthService(db, mockUserRepo, &LogMailer{}, cfg).(*authService)
			fixedNow := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
			svc.nowFn = func() time.Time { return fixedNow }

			resp, err := svc.Login(ctx, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				var appErr *model.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, tt.wantErrCode, appErr.Detail.Code)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				require.NotEmpty(t, resp.AccessToken)

				// 発行されたトークンの中身を検証
				token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
					return []byte(cfg.JWT.SecretKey), nil
				}, jwt.WithTimeFunc(func() time.Time { return fixedNow }))
				require.NoError(t, err)
				require.True(t, token.Valid)

				claims, ok := token.Claims.(jwt.MapClaims)
				require.True(t, ok)
				sub, err := claims.GetSubject()
				require.NoError(t, err)
				assert.Equal(t, userID.String(), sub)
				iss, err := claims.GetIssuer()
				require.NoError(t, err)
				assert.Equal(t, cfg.JWT.Issuer, iss)
			}
			mockUserRepo.AssertExpectations(t)
		})
	}
}
