package commands

import (
	"context"

	"go-shop/internal/domain/product"
	"go-shop/internal/infra"
	"go-shop/internal/pkg/clock"
	"go-shop/internal/pkg/errs"
	"go-shop/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNotProductOwner = errs.New("product belongs to another admin")

type CreateProductRequest struct {
	Title       string
	ImageURL    string
	Description string
	Price       string
}

type UpdateProductRequest struct {
	Title       string
	ImageURL    string
	Description string
	Price       string
}

type ProductCommands interface {
	Create(ctx context.Context, req CreateProductRequest, actorID uuid.UUID) (uuid.UUID, error)
	Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest, actorID uuid.UUID) error
	Delete(ctx context.Context, productID, actorID uuid.UUID) error
}

type productUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewProductUseCase(uow shared.UnitOfWork, clk clock.Clock) ProductCommands {
	return &productUseCaseImpl{uow: uow, clock: clk}
}

func (uc *productUseCaseImpl) Create(ctx context.Context, req CreateProductRequest, actorID uuid.UUID) (uuid.UUID, error) {
	entity, err := product.NewProduct(uuid.Nil, req.Title, req.ImageURL, req.Description, req.Price, actorID, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Products().Create(ctx, tx.DB(), entity)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return createdID, nil
}

// Update rewrites a product's fields. Admins only manage their own
// catalog entries.
func (uc *productUseCaseImpl) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ProductByID(ctx, productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if snap.CreatedBy != actorID {
			return ErrNotProductOwner
		}

		entity, err := product.NewProduct(snap.ID, req.Title, req.ImageURL, req.Description, req.Price, snap.CreatedBy, uc.clock.Now())
		if err != nil {
			return err
		}

		return tx.Products().Update(ctx, tx.DB(), entity)
	})
}

func (uc *productUseCaseImpl) Delete(ctx context.Context, productID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ProductByID(ctx, productID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if snap.CreatedBy != actorID {
			return ErrNotProductOwner
		}

		err = tx.Products().Delete(ctx, tx.DB(), snap.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		return nil
	})
}
