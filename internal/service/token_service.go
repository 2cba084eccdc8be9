package service

import (
	"errors"
	"strings"
	"time"

	"github.com/marketplace-next/storefront/internal/config"
	"github.com/marketplace-next/storefront/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid 令牌无效
var ErrTokenInvalid = errors.New("token invalid")

// UserJWTClaims 用户 JWT 声明，令牌由账号服务签发
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService 校验用户令牌
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService 创建令牌服务
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret: []byte(cfg.SecretKey),
		issuer: strings.TrimSpace(cfg.Issuer),
	}
}

// Enabled 是否配置了签名密钥
func (s *TokenService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Generate 签发令牌，供种子数据与测试使用
func (s *TokenService) Generate(userID uint, role string, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", ErrTokenInvalid
	}
	if strings.TrimSpace(role) == "" {
		role = constants.RoleCustomer
	}
	now := time.Now()
	claims := UserJWTClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse 解析并校验令牌
func (s *TokenService) Parse(tokenString string) (*UserJWTClaims, error) {
	if !s.Enabled() {
		return nil, ErrTokenInvalid
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parser := jwt.NewParser(opts...)
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	claims.Role = strings.ToLower(strings.TrimSpace(claims.Role))
	if claims.Role == "" {
		claims.Role = constants.RoleCustomer
	}
	return claims, nil
}
