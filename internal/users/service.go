package users

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/wandermart-backend/internal/authz"
	"github.com/angelmondragon/wandermart-backend/internal/notifications"
	"github.com/angelmondragon/wandermart-backend/pkg/auth/session"
	"github.com/angelmondragon/wandermart-backend/pkg/config"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/validate"
	"github.com/google/uuid"
)

const invalidCredentialsMessage = "invalid email or password"

type sessionManager interface {
	Establish(ctx context.Context, p session.Principal) (*session.Session, error)
	Destroy(ctx context.Context) error
	Refresh(ctx context.Context, p session.Principal) error
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

type notifier interface {
	Deliver(ctx context.Context, userID string, msg notifications.Message)
	DeliverAdmins(ctx context.Context, msg notifications.Message)
}

// SellerNameSync rewrites the seller name cached on a merchant's products.
type SellerNameSync interface {
	SyncSellerName(ctx context.Context, sellerID, name string) error
}

// RecipientNameSync rewrites the recipient name on a buyer's open orders.
type RecipientNameSync interface {
	SyncRecipientName(ctx context.Context, buyerID, name string) error
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo       *Repository
	Sessions   sessionManager
	Guard      *authz.Guard
	Hasher     passwordHasher
	Notifier   notifier
	Sellers    SellerNameSync
	Recipients RecipientNameSync
	Catalog    config.CatalogConfig
	Logger     *logger.Logger
}

type Service struct {
	repo       *Repository
	sessions   sessionManager
	guard      *authz.Guard
	hasher     passwordHasher
	notifier   notifier
	sellers    SellerNameSync
	recipients RecipientNameSync
	catalog    config.CatalogConfig
	logg       *logger.Logger
	now        func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	switch {
	case params.Repo == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	case params.Sessions == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session manager required")
	case params.Guard == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "guard required")
	case params.Hasher == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "password hasher required")
	case params.Notifier == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifier required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		repo:       params.Repo,
		sessions:   params.Sessions,
		guard:      params.Guard,
		hasher:     params.Hasher,
		notifier:   params.Notifier,
		sellers:    params.Sellers,
		recipients: params.Recipients,
		catalog:    params.Catalog,
		logg:       logg,
		now:        time.Now,
	}, nil
}

// Register creates an account and logs it in. Merchants start pending and
// their application is announced to every admin.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = validate.Sanitize(req.Username, 80)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = enums.UserRoleTraveler
	}
	switch role {
	case enums.UserRoleTraveler, enums.UserRoleMerchant:
	case enums.UserRoleAdmin:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin accounts cannot be self-registered")
	default:
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "cannot register with role %q", role)
	}

	status := enums.AccountStatusActive
	if role.RequiresApproval() {
		status = enums.AccountStatusPending
	}

	username := req.Username
	if username == "" {
		username = strings.SplitN(req.Email, "@", 2)[0]
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	id := uuid.NewString()
	user := User{
		ID:                id,
		Username:          username,
		Email:             req.Email,
		PasswordHash:      hash,
		Role:              role,
		Status:            status,
		AvatarURL:         s.catalog.DefaultAvatarBase + id,
		QualificationURLs: req.QualificationURLs,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if role == enums.UserRoleMerchant {
		s.notifier.DeliverAdmins(ctx, notifications.Message{
			Title:    "New Merchant Application",
			Body:     "Merchant " + username + " (" + user.Email + ") is waiting for approval.",
			Severity: enums.NotificationSeverityInfo,
		})
	}

	return s.establish(ctx, &user)
}

// Login authenticates by email (case-insensitive) and password. Pending and
// rejected merchants may log in; the guard stops them later.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	ok, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return s.establish(ctx, user)
}

func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "destroy session")
	}
	return nil
}

// Current returns the logged-in user's live record, or nil.
func (s *Service) Current(ctx context.Context) (*UserDTO, error) {
	actor, err := s.guard.Optional(ctx)
	if err != nil || actor == nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

// Get returns a user to themself or to an admin.
func (s *Service) Get(ctx context.Context, id string) (*UserDTO, error) {
	actor, err := s.guard.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.Resource{Kind: "user", OwnerIDs: []string{id}}, authz.ActionRead); err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return FromModel(user), nil
}

// UpdateProfile edits self-service fields. Renaming a merchant re-syncs the
// seller name on their products; renaming the shipping recipient updates
// their open orders.
func (s *Service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (*UserDTO, error) {
	actor, err := s.guard.RequireSession(ctx)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.Resource{Kind: "user", OwnerIDs: []string{id}}, authz.ActionUpdate); err != nil {
		return nil, err
	}
	if req.Username != nil {
		trimmed := validate.Sanitize(*req.Username, 80)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "username cannot be empty")
		}
		req.Username = &trimmed
	}
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	var before User
	updated, err := s.repo.Update(ctx, id, func(u *User) error {
		before = *u
		if req.Username != nil {
			u.Username = *req.Username
		}
		if req.AvatarURL != nil {
			u.AvatarURL = strings.TrimSpace(*req.AvatarURL)
		}
		if req.QualificationURLs != nil {
			u.QualificationURLs = append([]string(nil), req.QualificationURLs...)
		}
		if req.Shipping != nil {
			shipping := *req.Shipping
			u.Shipping = &shipping
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx = s.logg.WithUserID(ctx, id)
	if s.sellers != nil && updated.Role == enums.UserRoleMerchant && before.Username != updated.Username {
		if err := s.sellers.SyncSellerName(ctx, id, updated.Username); err != nil {
			s.logg.Error(ctx, "users.sync_seller_name_failed", err)
		}
	}
	if s.recipients != nil && updated.Shipping != nil &&
		(before.Shipping == nil || before.Shipping.RecipientName != updated.Shipping.RecipientName) {
		if err := s.recipients.SyncRecipientName(ctx, id, updated.Shipping.RecipientName); err != nil {
			s.logg.Error(ctx, "users.sync_recipient_name_failed", err)
		}
	}
	if actor.ID == id {
		if err := s.sessions.Refresh(ctx, updated.Principal()); err != nil {
			s.logg.Error(ctx, "users.refresh_session_failed", err)
		}
	}
	return FromModel(updated), nil
}

// ListPendingMerchants is the admin approval queue.
func (s *Service) ListPendingMerchants(ctx context.Context) ([]UserDTO, error) {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return nil, err
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserDTO, 0)
	for i := range all {
		if all[i].Role == enums.UserRoleMerchant && all[i].Status == enums.AccountStatusPending {
			out = append(out, *FromModel(&all[i]))
		}
	}
	return out, nil
}

// UpdateStatus approves or rejects a merchant and tells them.
func (s *Service) UpdateStatus(ctx context.Context, id string, status enums.AccountStatus) (*UserDTO, error) {
	if _, err := s.guard.Require(ctx, enums.UserRoleAdmin); err != nil {
		return nil, err
	}
	if status != enums.AccountStatusActive && status != enums.AccountStatusRejected {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "status must be active or rejected, got %q", status)
	}
	updated, err := s.repo.Update(ctx, id, func(u *User) error {
		if u.Role != enums.UserRoleMerchant {
			return pkgerrors.New(pkgerrors.CodeValidation, "only merchant accounts can be reviewed")
		}
		u.Status = status
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Deliver(ctx, id, notifications.Message{
		Title:    "Account Status Update",
		Body:     "Your account application has been " + string(status) + ".",
		Severity: enums.SeverityFor(status == enums.AccountStatusActive),
	})
	return FromModel(updated), nil
}

func (s *Service) establish(ctx context.Context, user *User) (*AuthResult, error) {
	sess, err := s.sessions.Establish(ctx, user.Principal())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "establish session")
	}
	return &AuthResult{User: FromModel(user), Token: sess.Token, ExpiresAt: sess.ExpiresAt}, nil
}
