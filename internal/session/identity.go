package session

import (
	"context"
	"errors"
)

// Attribute keys mirror the names the frontend and templates already rely on.
const (
	KeyToken    = "token"
	KeyRole     = "rol"
	KeyUserName = "usuarioNombre"
	KeyUserID   = "usuarioId"
)

const RoleAdmin = "ADMIN"

// Identity is the authenticated user bound to a session. The token is opaque
// here; the business API issued it and is the only party that validates it.
type Identity struct {
	Token    string
	Role     string
	UserName string
	UserID   int64
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// SaveIdentity stores each identity attribute under its own session key.
func SaveIdentity(ctx context.Context, store Store, sessionID string, identity Identity) error {
	if err := store.Set(ctx, sessionID, KeyToken, identity.Token); err != nil {
		return err
	}
	if err := store.Set(ctx, sessionID, KeyRole, identity.Role); err != nil {
		return err
	}
	if err := store.Set(ctx, sessionID, KeyUserName, identity.UserName); err != nil {
		return err
	}
	return store.Set(ctx, sessionID, KeyUserID, identity.UserID)
}

// LoadIdentity reads the identity attributes. A session with no token yields a
// zero Identity and no error; the caller decides whether that means redirect.
func LoadIdentity(ctx context.Context, store Store, sessionID string) (Identity, error) {
	var identity Identity

	if err := store.Get(ctx, sessionID, KeyToken, &identity.Token); err != nil {
		if errors.Is(err, ErrNoValue) {
			return Identity{}, nil
		}
		return Identity{}, err
	}

	for key, dest := range map[string]interface{}{
		KeyRole:     &identity.Role,
		KeyUserName: &identity.UserName,
		KeyUserID:   &identity.UserID,
	} {
		if err := store.Get(ctx, sessionID, key, dest); err != nil && !errors.Is(err, ErrNoValue) {
			return Identity{}, err
		}
	}

	return identity, nil
}
