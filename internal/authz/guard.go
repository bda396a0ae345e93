package authz

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/pkg/auth/session"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID     string
	Name   string
	Email  string
	Role   enums.UserRole
	Status enums.AccountStatus
}

// IsAdmin reports whether the actor bypasses ownership checks.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == enums.UserRoleAdmin
}

// Account is the live view of a user that the guard trusts over the
// session snapshot.
type Account struct {
	Name   string
	Email  string
	Status enums.AccountStatus
}

// AccountLookup resolves the live account of a user. Sessions carry a
// snapshot, which goes stale as soon as an admin approves or renames a user.
type AccountLookup interface {
	Account(ctx context.Context, userID string) (Account, bool, error)
}

type sessionSource interface {
	Current(ctx context.Context) (*session.Session, error)
}

// Guard gates operations on the current session.
type Guard struct {
	sessions sessionSource
	accounts AccountLookup
}

func NewGuard(sessions sessionSource, accounts AccountLookup) (*Guard, error) {
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session manager required")
	}
	if accounts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "account lookup required")
	}
	return &Guard{sessions: sessions, accounts: accounts}, nil
}

// Require returns the actor when a session exists, its role is one of roles
// (any role when empty) and the account is active. Admins skip the status
// check.
func (g *Guard) Require(ctx context.Context, roles ...enums.UserRole) (*Actor, error) {
	actor, err := g.Optional(ctx)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "please log in")
	}
	if len(roles) > 0 && !hasRole(actor.Role, roles) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "permission denied")
	}
	if actor.IsAdmin() {
		return actor, nil
	}
	if actor.Status != enums.AccountStatusActive {
		return nil, pkgerrors.Newf(pkgerrors.CodeForbidden, "account is %s", actor.Status)
	}
	return actor, nil
}

// RequireSession only checks that somebody is logged in. Pending and
// rejected merchants pass, so they can still read their inbox and profile.
func (g *Guard) RequireSession(ctx context.Context) (*Actor, error) {
	actor, err := g.Optional(ctx)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "please log in")
	}
	return actor, nil
}

// Optional resolves the actor without requiring one. It returns nil when
// nobody is logged in or the account no longer exists.
func (g *Guard) Optional(ctx context.Context) (*Actor, error) {
	sess, err := g.sessions.Current(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	if sess == nil {
		return nil, nil
	}
	account, ok, err := g.accounts.Account(ctx, sess.User.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &Actor{
		ID:     sess.User.UserID,
		Name:   account.Name,
		Email:  account.Email,
		Role:   sess.User.Role,
		Status: account.Status,
	}, nil
}

func hasRole(role enums.UserRole, allowed []enums.UserRole) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}
