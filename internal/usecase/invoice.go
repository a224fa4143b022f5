package usecase

import (
	"context"
	"errors"

	"go-shop/internal/infra"
	"go-shop/internal/pkg/errs"
	"go-shop/internal/pkg/invoice"
	"go-shop/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrNotOrderOwner       = errors.New("order belongs to another user")
	ErrInvoiceRenderFailed = errors.New("failed to render invoice")
	ErrInvoiceStoreFailed  = errors.New("failed to store invoice")
)

// InvoiceStore persists a rendered invoice outside the response path.
type InvoiceStore interface {
	Save(ctx context.Context, filename string, data []byte) error
}

type RenderedInvoice struct {
	Filename string
	Data     []byte
}

type InvoiceUseCase interface {
	RenderInvoice(ctx context.Context, actorID, orderID uuid.UUID) (*RenderedInvoice, error)
}

type invoiceUseCaseImpl struct {
	orderQueries queries.OrderQueries
	store        InvoiceStore
}

func NewInvoiceUseCase(orderQueries queries.OrderQueries, store InvoiceStore) InvoiceUseCase {
	return &invoiceUseCaseImpl{
		orderQueries: orderQueries,
		store:        store,
	}
}

// RenderInvoice renders the order once and hands the same bytes to the
// store and the caller.
func (uc *invoiceUseCaseImpl) RenderInvoice(ctx context.Context, actorID, orderID uuid.UUID) (*RenderedInvoice, error) {
	view, err := uc.orderQueries.GetByID(ctx, actorID, orderID)
	if err != nil {
		if errors.Is(err, queries.ErrOrderNotOwned) {
			return nil, ErrNotOrderOwner
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	lines := make([]invoice.Line, 0, len(view.Lines))
	for _, l := range view.Lines {
		lines = append(lines, invoice.Line{
			Title:     l.Title,
			Quantity:  int(l.Quantity),
			UnitPrice: l.UnitPrice,
		})
	}

	data, err := invoice.NewDocument(lines).Render()
	if err != nil {
		return nil, errs.Mark(err, ErrInvoiceRenderFailed)
	}

	filename := "invoice-" + orderID.String() + ".pdf"
	if err := uc.store.Save(ctx, filename, data); err != nil {
		return nil, errs.Mark(err, ErrInvoiceStoreFailed)
	}

	return &RenderedInvoice{Filename: filename, Data: data}, nil
}
