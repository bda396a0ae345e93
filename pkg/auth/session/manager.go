package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/pkg/auth"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/angelmondragon/wandermart-backend/pkg/kv"
	"github.com/google/uuid"
)

const keyPrefix = "session:"

// Principal is the cached profile of the logged-in user.
type Principal struct {
	UserID    string              `json:"id"`
	Username  string              `json:"username"`
	Email     string              `json:"email"`
	Role      enums.UserRole      `json:"role"`
	Status    enums.AccountStatus `json:"status"`
	AvatarURL string              `json:"avatarUrl,omitempty"`
}

// Session is the record stored for every issued token.
type Session struct {
	Token     string    `json:"token"`
	AccessID  string    `json:"accessId"`
	User      Principal `json:"user"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Manager establishes, resolves and destroys sessions. Each token has its
// own record so any number of users can be logged in at once.
type Manager struct {
	store    kv.Store
	cfg      config.JWTConfig
	attempts int
	now      func() time.Time
}

// NewManager constructs a session manager on top of the shared store.
func NewManager(store kv.Store, cfg config.JWTConfig, attempts int) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.SessionTTL() <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{store: store, cfg: cfg, attempts: attempts, now: time.Now}, nil
}

func (m *Manager) slot(accessID string) *kv.Slot[*Session] {
	return kv.NewSlot[*Session](m.store, keyPrefix+accessID, m.attempts)
}

// Establish issues a token for p and persists the session record.
func (m *Manager) Establish(ctx context.Context, p Principal) (*Session, error) {
	now := m.now().UTC()
	token, claims, err := auth.MintSessionToken(m.cfg, now, auth.SessionTokenPayload{
		UserID: p.UserID,
		Role:   p.Role,
		JTI:    NewAccessID(),
	})
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token:     token,
		AccessID:  claims.ID,
		User:      p,
		IssuedAt:  now,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := m.slot(sess.AccessID).Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Current resolves the session for the token carried by ctx. A missing,
// invalid, expired or revoked token yields (nil, nil). The record behind an
// expired token is removed.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	token := TokenFrom(ctx)
	if token == "" {
		return nil, nil
	}
	claims, err := auth.ParseSessionToken(m.cfg, token)
	if err != nil {
		if claims != nil && auth.IsExpired(err) {
			return nil, m.expire(ctx, claims.ID, token)
		}
		return nil, nil
	}
	sess, err := m.slot(claims.ID).Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Token != token || sess.User.UserID != claims.UserID {
		return nil, nil
	}
	return sess, nil
}

func (m *Manager) expire(ctx context.Context, accessID, token string) error {
	slot := m.slot(accessID)
	sess, err := slot.Load(ctx)
	if err != nil || sess == nil || sess.Token != token {
		return err
	}
	return slot.Clear(ctx)
}

// Destroy revokes the session behind the token carried by ctx.
func (m *Manager) Destroy(ctx context.Context) error {
	sess, err := m.Current(ctx)
	if err != nil || sess == nil {
		return err
	}
	return m.slot(sess.AccessID).Clear(ctx)
}

// Refresh rewrites the cached profile of the current session when it
// belongs to p. Sessions of other users are left alone.
func (m *Manager) Refresh(ctx context.Context, p Principal) error {
	sess, err := m.Current(ctx)
	if err != nil || sess == nil || sess.User.UserID != p.UserID {
		return err
	}
	_, err = m.slot(sess.AccessID).Mutate(ctx, func(cur *Session) (*Session, error) {
		if cur == nil {
			return nil, kv.ErrNoChange
		}
		cur.User = p
		return cur, nil
	})
	return err
}

// NewAccessID produces the identifier used as the JWT jti and the store key.
func NewAccessID() string {
	return uuid.NewString()
}

type tokenKey struct{}

// WithToken attaches a bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, strings.TrimSpace(strings.TrimPrefix(token, "Bearer ")))
}

// TokenFrom returns the token attached by WithToken.
func TokenFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
