package commands

import (
	"context"

	"go-shop/internal/infra"
	"go-shop/internal/pkg/errs"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrProductNotFound = errs.New("product not found")

type CartCommands interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewCartUseCase(uow shared.UnitOfWork) CartCommands {
	return &cartUseCaseImpl{uow: uow}
}

func (uc *cartUseCaseImpl) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().ProductByID(ctx, productID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		current, err := tx.Reads().CartByUser(ctx, userID)
		if err != nil {
			return err
		}

		updated, err := current.AddItem(productID, quantity)
		if err != nil {
			return err
		}

		if err := tx.Carts().Save(ctx, tx.DB(), updated); err != nil {
			return err
		}
		return invalidateCheckoutReplay(ctx, tx, userID)
	})
}

func (uc *cartUseCaseImpl) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := tx.Reads().CartByUser(ctx, userID)
		if err != nil {
			return err
		}

		if err := tx.Carts().Save(ctx, tx.DB(), current.RemoveItem(productID)); err != nil {
			return err
		}
		return invalidateCheckoutReplay(ctx, tx, userID)
	})
}

func (uc *cartUseCaseImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Carts().Clear(ctx, tx.DB(), userID); err != nil {
			return err
		}
		return invalidateCheckoutReplay(ctx, tx, userID)
	})
}

// A cart change after a completed checkout means the next identical
// cart is a new purchase, not a retry of the old one.
func invalidateCheckoutReplay(ctx context.Context, tx shared.Tx, userID uuid.UUID) error {
	return tx.Idempotency().DeleteCompletedForUser(ctx, tx.DB(), userID, checkoutEndpoint)
}
