package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tunr-web/internal/logger"
)

var ErrEmptyToken = errors.New("session: token is empty")

// Accessor is the only code that reads or writes session keys.
// It holds no copy of the state; every call goes to the store.
type Accessor struct {
	store Store
}

func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

// Session derives the current session. It never fails: store errors and
// malformed records resolve to the anonymous session.
func (a *Accessor) Session(ctx context.Context) Session {
	if a == nil || a.store == nil {
		return Anonymous()
	}

	s, _, err := a.read(ctx)
	if err != nil {
		logger.Warn("session read failed, treating as anonymous", map[string]any{
			"error": err.Error(),
		})
		return Anonymous()
	}

	return s
}

func (a *Accessor) read(ctx context.Context) (Session, *User, error) {
	var s Session

	for i, key := range tokenKeys {
		v, ok, err := a.store.Get(ctx, key)
		if err != nil {
			return Anonymous(), nil, fmt.Errorf("session: read %s: %w", key, err)
		}
		if ok && strings.TrimSpace(v) != "" {
			s.Token = v
			s.Legacy = i > 0
			break
		}
	}

	flag, ok, err := a.store.Get(ctx, KeyLoggedIn)
	if err != nil {
		return Anonymous(), nil, fmt.Errorf("session: read %s: %w", KeyLoggedIn, err)
	}
	flagged := ok && truthy(flag)

	var user *User
	raw, ok, err := a.store.Get(ctx, KeyUser)
	if err != nil {
		return Anonymous(), nil, fmt.Errorf("session: read %s: %w", KeyUser, err)
	}
	if ok && strings.TrimSpace(raw) != "" {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return Anonymous(), nil, fmt.Errorf("session: malformed user record: %w", err)
		}
		user = &u
		s.Username = u.Username
		s.UserID = string(u.ID)
	}

	if s.Username == "" {
		name, ok, err := a.store.Get(ctx, KeyUsername)
		if err != nil {
			return Anonymous(), nil, fmt.Errorf("session: read %s: %w", KeyUsername, err)
		}
		if ok {
			s.Username = name
			if user == nil && name != "" {
				s.Legacy = true
			}
		}
	}

	s.IsLoggedIn = s.Token != "" || flagged
	if !s.IsLoggedIn {
		return Anonymous(), nil, nil
	}

	if flagged && s.Token != "" {
		s.Legacy = true
	}

	return s, user, nil
}

// SetSession persists a freshly authenticated session in the canonical
// scheme and drops any legacy keys.
func (a *Accessor) SetSession(ctx context.Context, token string, user User) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: failed to marshal user: %w", err)
	}

	if err := a.store.Set(ctx, KeyToken, token); err != nil {
		return fmt.Errorf("session: write token: %w", err)
	}
	if err := a.store.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("session: write user: %w", err)
	}

	if user.Username != "" {
		if err := a.store.Set(ctx, KeyUsername, user.Username); err != nil {
			return fmt.Errorf("session: write username: %w", err)
		}
	} else if err := a.store.Delete(ctx, KeyUsername); err != nil {
		return fmt.Errorf("session: delete username: %w", err)
	}

	if err := a.store.Delete(ctx, legacyKeyAuthToken, legacyKeyUserToken, KeyLoggedIn); err != nil {
		return fmt.Errorf("session: delete legacy keys: %w", err)
	}

	return nil
}

// ClearSession removes every session key, canonical or legacy.
func (a *Accessor) ClearSession(ctx context.Context) error {
	if err := a.store.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Migrate rewrites a legacy-scheme session into the canonical one.
// It reports whether anything was rewritten. Flag-only sessions carry no
// token to migrate and are left alone.
func (a *Accessor) Migrate(ctx context.Context) (bool, error) {
	s, user, err := a.read(ctx)
	if err != nil {
		return false, err
	}
	if !s.Legacy || s.Token == "" {
		return false, nil
	}

	u := User{ID: ID(s.UserID), Username: s.Username}
	if user != nil {
		u = *user
	}

	if err := a.SetSession(ctx, s.Token, u); err != nil {
		return false, err
	}

	return true, nil
}

func truthy(v string) bool {
	v = strings.TrimSpace(v)
	return strings.EqualFold(v, "true") || v == "1"
}
