package authz

import (
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
)

// Action names a mutation for policy decisions and error messages.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionManage Action = "manage"
)

// Resource describes what is being acted on and who owns it. Orders list
// every seller in their line items as owners alongside the buyer.
type Resource struct {
	Kind     string
	OwnerIDs []string
}

// Authorize is the single ownership policy applied before every mutating
// repository call: admins may do anything, everyone else must own the
// resource.
func Authorize(actor *Actor, res Resource, action Action) error {
	if actor == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "please log in")
	}
	if actor.IsAdmin() {
		return nil
	}
	for _, owner := range res.OwnerIDs {
		if owner != "" && owner == actor.ID {
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeForbidden, "not allowed to %s this %s", action, res.Kind)
}
