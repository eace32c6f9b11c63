package usecases

import (
	"context"
	"errors"
	"strings"

	"seller-panel.backend/internal/domain/entities"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/internal/domain/repositories"
)

// AccessControl resolves a bearer token to the acting seller.
// Status always comes from the stored seller, never from token claims.
type AccessControl struct {
	sellerRepo repositories.SellerRepository
	tokens     TokenIssuer
}

// NewAccessControl creates a new access control resolver
func NewAccessControl(sellerRepo repositories.SellerRepository, tokens TokenIssuer) *AccessControl {
	return &AccessControl{sellerRepo: sellerRepo, tokens: tokens}
}

// Resolve verifies token and re-reads the seller it names
func (a *AccessControl) Resolve(ctx context.Context, token string) (entities.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Actor{}, domainerrors.Unauthorized("missing bearer token")
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return entities.Actor{}, domainerrors.Unauthorized("invalid or expired token")
	}

	seller, err := a.sellerRepo.GetByID(ctx, claims.SellerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Actor{}, domainerrors.Unauthorized("seller no longer exists")
		}
		return entities.Actor{}, repoError(ctx, "resolve actor", err, "seller not found")
	}

	return entities.Actor{SellerID: seller.ID, Status: seller.Status}, nil
}

func requireActive(actor entities.Actor) error {
	if !actor.IsActive() {
		return domainerrors.Forbidden("seller account must be active to manage the catalog; current status: " + string(actor.Status))
	}
	return nil
}
