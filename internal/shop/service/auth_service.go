package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fabioferrero90/strabello-manager/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshKeyPrefix = "auth:refresh:"

// AuthService 操作员PIN登录。签发JWT访问令牌，刷新令牌存redis。
type AuthService struct {
	cfg *config.Config
	rdb *redis.Client
}

func NewAuthService(cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb}
}

type LoginRequest struct {
	Operator string `json:"operator" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	if s.cfg.Shop.OperatorPIN == "" || req.PIN != s.cfg.Shop.OperatorPIN {
		return nil, fmt.Errorf("%w: PIN错误", ErrValidation)
	}

	access, err := s.issueAccessToken(req.Operator)
	if err != nil {
		return nil, err
	}

	refresh := uuid.New().String()
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, refreshKeyPrefix+refresh, req.Operator, s.cfg.JWT.RefreshTokenExpire).Err(); err != nil {
			return nil, fmt.Errorf("存储刷新令牌失败: %w", err)
		}
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if s.rdb == nil {
		return "", fmt.Errorf("%w: 刷新令牌不可用", ErrValidation)
	}
	operator, err := s.rdb.Get(ctx, refreshKeyPrefix+refreshToken).Result()
	if err != nil {
		return "", fmt.Errorf("%w: 刷新令牌无效或已过期", ErrValidation)
	}
	return s.issueAccessToken(operator)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, refreshKeyPrefix+refreshToken).Err()
}

func (s *AuthService) issueAccessToken(operator string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      operator,
		"operator": operator,
		"iss":      s.cfg.JWT.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.JWT.AccessTokenExpire).Unix(),
		"jti":      uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, nil
}
