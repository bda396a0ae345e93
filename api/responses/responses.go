// Package responses converts service results into facade envelopes.
package responses

import (
	"context"
	"errors"

	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
	"github.com/angelmondragon/wandermart-backend/pkg/logger"
	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

func Success[T any](data T) types.Envelope[T] {
	return types.Ok(data)
}

// Failure maps err to a failed envelope and logs it. Expected failures are
// logged at warn; everything else at error with the full chain.
func Failure[T any](ctx context.Context, logg *logger.Logger, err error) types.Envelope[T] {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeStateConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	env := types.Envelope[T]{
		Success: false,
		Message: msg,
		Code:    string(typed.Code()),
	}
	if meta.DetailsAllowed {
		env.Details = typed.Details()
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, pkgerrors.Dump(err).Fields())
		if meta.Expected {
			logg.Warn(ctx, "operation.rejected")
		} else {
			logg.Error(ctx, "operation.error", err)
		}
	}
	return env
}
