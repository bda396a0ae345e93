package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/internal/users"
	"github.com/angelmondragon/wandermart-backend/pkg/enums"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

func (b *Backend) Register(ctx context.Context, req users.RegisterRequest) types.Envelope[*users.AuthResult] {
	return call(ctx, b, "users.register", func(ctx context.Context) (*users.AuthResult, error) {
		return b.app.Users.Register(ctx, req)
	})
}

func (b *Backend) Login(ctx context.Context, email, password string) types.Envelope[*users.AuthResult] {
	return call(ctx, b, "users.login", func(ctx context.Context) (*users.AuthResult, error) {
		return b.app.Users.Login(ctx, users.LoginRequest{Email: email, Password: password})
	})
}

func (b *Backend) Logout(ctx context.Context) types.Envelope[types.Empty] {
	return exec(ctx, b, "users.logout", b.app.Users.Logout)
}

// CurrentUser returns the logged-in user, or nil data when logged out.
func (b *Backend) CurrentUser(ctx context.Context) types.Envelope[*users.UserDTO] {
	return call(ctx, b, "users.current", b.app.Users.Current)
}

func (b *Backend) GetUser(ctx context.Context, id string) types.Envelope[*users.UserDTO] {
	return call(ctx, b, "users.get", func(ctx context.Context) (*users.UserDTO, error) {
		return b.app.Users.Get(ctx, id)
	})
}

func (b *Backend) UpdateUser(ctx context.Context, id string, req users.UpdateProfileRequest) types.Envelope[*users.UserDTO] {
	return call(ctx, b, "users.update", func(ctx context.Context) (*users.UserDTO, error) {
		return b.app.Users.UpdateProfile(ctx, id, req)
	})
}

func (b *Backend) GetPendingMerchants(ctx context.Context) types.Envelope[[]users.UserDTO] {
	return call(ctx, b, "users.pending_merchants", b.app.Users.ListPendingMerchants)
}

func (b *Backend) UpdateUserStatus(ctx context.Context, id string, status enums.AccountStatus) types.Envelope[*users.UserDTO] {
	return call(ctx, b, "users.update_status", func(ctx context.Context) (*users.UserDTO, error) {
		return b.app.Users.UpdateStatus(ctx, id, status)
	})
}
