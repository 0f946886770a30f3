package session

import (
	"context"
	"os"
	"strconv"
	"time"

	"bookaroo-server/storage"

	"github.com/go-redis/redis/v8"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessClaims is embedded in access tokens and read back by route
// middleware.
type AccessClaims struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}

// Manager owns token issuance and refresh-token rotation. The clock is
// injected so refresh decisions are testable without real timers; the
// original kept this as a self-refreshing global auth context.
type Manager struct {
	Clock         func() time.Time
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	AccessSecret  []byte
	RefreshSecret []byte
	Redis         *redis.Client
}

// Default is the process-wide manager, set up in main after storage init.
var Default *Manager

// NewManager builds a manager from the environment, matching the TTLs the
// mobile and widget clients expect.
func NewManager(rdb *redis.Client) *Manager {
	return &Manager{
		Clock:         time.Now,
		AccessTTL:     24 * time.Hour,
		RefreshTTL:    365 * 24 * time.Hour,
		AccessSecret:  []byte(os.Getenv("ACCESS_TOKEN_SECRET")),
		RefreshSecret: []byte(os.Getenv("REFRESH_TOKEN_SECRET")),
		Redis:         rdb,
	}
}

// IssuePair signs a fresh access/refresh pair and registers the refresh
// token in Redis so rotation can invalidate it later.
func (m *Manager) IssuePair(ctx context.Context, userID uint, role string) (*jwt.TokenPair, error) {
	accessSigner := jwt.NewSigner(jwt.HS256, m.AccessSecret, m.AccessTTL)
	refreshSigner := jwt.NewSigner(jwt.HS256, m.RefreshSecret, m.RefreshTTL)

	accessToken, err := accessSigner.Sign(AccessClaims{ID: userID, Role: role})
	if err != nil {
		return nil, err
	}

	subject := strconv.FormatUint(uint64(userID), 10)
	refreshToken, err := refreshSigner.Sign(jwt.Claims{Subject: subject})
	if err != nil {
		return nil, err
	}

	if m.Redis != nil {
		// Small grace past the token's own expiry so rotation of a token
		// presented at the last moment still finds its record.
		if err := m.Redis.Set(ctx, string(refreshToken), "true", m.RefreshTTL+5*time.Minute).Err(); err != nil {
			return nil, err
		}
	}

	pair := &jwt.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}
	return pair, nil
}

// Rotate exchanges a verified refresh token for a new pair. The presented
// token is deleted first; a token not present in Redis was already rotated
// or revoked and is refused.
func (m *Manager) Rotate(ctx context.Context, refreshToken string, userID uint, role string) (*jwt.TokenPair, error) {
	valid, err := m.Redis.Get(ctx, refreshToken).Result()
	if err != nil || valid != "true" {
		return nil, ErrUnknownRefreshToken
	}
	m.Redis.Del(ctx, refreshToken)
	return m.IssuePair(ctx, userID, role)
}

// NeedsRefresh reports whether an access token issued at issuedAt should be
// replaced. The margin keeps clients from presenting a token that expires
// mid-request.
func (m *Manager) NeedsRefresh(issuedAt time.Time, margin time.Duration) bool {
	return m.Clock().After(issuedAt.Add(m.AccessTTL - margin))
}

// InitializeDefault wires the global manager; call after storage.InitializeRedis.
func InitializeDefault() {
	Default = NewManager(storage.Redis)
}
