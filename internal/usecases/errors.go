package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/pkg/logger"
)

// repoError maps a repository failure onto the error kinds callers see.
// Unknown failures are logged and hidden behind StorageError.
func repoError(ctx context.Context, op string, err error, notFound string) error {
	if err == nil {
		return nil
	}
	if _, ok := domainerrors.AsAppError(err); ok {
		return err
	}

	var dup *domainerrors.DuplicateKeyError
	switch {
	case errors.As(err, &dup):
		return domainerrors.Conflict(dup.Field, dup.Field+" already exists")
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(notFound)
	case errors.Is(err, domainerrors.ErrConflict):
		return domainerrors.Conflict("status", "seller status changed concurrently, retry the request")
	}

	logger.Error(ctx, "Repository operation failed", zap.String("op", op), zap.Error(err))
	return domainerrors.StorageError(err)
}
