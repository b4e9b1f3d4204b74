package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

// IssuePair signs a fresh access/refresh pair and stores the refresh
// token for rotation checks.
func (t *TokenService) IssuePair(ctx context.Context, user *models.User) (string, string, error) {
	access, err := t.signAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}
	refresh, err := t.signRefreshToken(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}
	if err := t.saveRefreshToken(ctx, refresh, user.ID); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Rotate exchanges a valid refresh token for a new pair and revokes the
// old token.
func (t *TokenService) Rotate(ctx context.Context, rawToken string) (string, string, error) {
	claims, err := t.validateRefresh(ctx, rawToken)
	if err != nil {
		return "", "", err
	}

	userID, role, err := identityFromClaims(claims)
	if err != nil {
		return "", "", err
	}

	newAccess, err := t.signAccessToken(userID, role)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := t.signRefreshToken(userID, role)
	if err != nil {
		return "", "", err
	}

	err = t.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", rawToken).
		Update("revoked", true).Error
	if err != nil {
		return "", "", fmt.Errorf("db error: %w", err)
	}
	if err := t.saveRefreshToken(ctx, newRefresh, userID); err != nil {
		return "", "", err
	}

	return newAccess, newRefresh, nil
}

// ParseAccess resolves a raw access token to the acting user's identity.
func (t *TokenService) ParseAccess(rawToken string) (uuid.UUID, models.Role, error) {
	token, err := jwt.Parse(rawToken, func(j *jwt.Token) (interface{}, error) {
		if _, ok := j.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", j.Header["alg"])
		}
		return t.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid access token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errors.New("cannot parse claims")
	}
	return identityFromClaims(claims)
}

func (t *TokenService) signAccessToken(userID uuid.UUID, role models.Role) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"exp":  time.Now().Add(accessTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.JWTSecret)
}

func (t *TokenService) signRefreshToken(userID uuid.UUID, role models.Role) (string, error) {
	// jti keeps tokens unique even when two are signed in the same second
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"role": string(role),
		"exp":  time.Now().Add(refreshTTL).Unix(),
		"typ":  "refresh",
		"jti":  uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshSecret)
}

func (t *TokenService) saveRefreshToken(ctx context.Context, token string, userID uuid.UUID) error {
	stored := models.RefreshToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(refreshTTL).Unix(),
	}
	if err := t.DB.WithContext(ctx).Create(&stored).Error; err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (t *TokenService) validateRefresh(ctx context.Context, rawToken string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(rawToken, func(j *jwt.Token) (interface{}, error) {
		if _, ok := j.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", j.Header["alg"])
		}
		return t.RefreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}
	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, errors.New("not a refresh token")
	}

	var stored models.RefreshToken
	if err := t.DB.WithContext(ctx).Where("token = ?", rawToken).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, errors.New("refresh token expired")
	}

	return claims, nil
}

func identityFromClaims(claims jwt.MapClaims) (uuid.UUID, models.Role, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("missing subject claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errors.New("invalid subject claim")
	}

	roleRaw, ok := claims["role"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("missing role claim")
	}
	role, ok := models.ParseRole(roleRaw)
	if !ok {
		return uuid.Nil, "", errors.New("unknown role claim")
	}

	return userID, role, nil
}
