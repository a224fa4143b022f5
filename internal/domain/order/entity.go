package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder      = errors.New("order must contain at least one line")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyTitle      = errors.New("line title must not be empty")
	ErrNegativePrice   = errors.New("unit price must not be negative")
)

// Line carries a snapshot of the product at purchase time. Later
// product edits or deletions never change it.
type Line struct {
	productID   uuid.UUID
	title       string
	description string
	unitPrice   decimal.Decimal
	quantity    int
}

func NewLine(productID uuid.UUID, title, description string, unitPrice decimal.Decimal, quantity int) (Line, error) {
	if title == "" {
		return Line{}, ErrEmptyTitle
	}
	if unitPrice.IsNegative() {
		return Line{}, ErrNegativePrice
	}
	if quantity <= 0 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{
		productID:   productID,
		title:       title,
		description: description,
		unitPrice:   unitPrice,
		quantity:    quantity,
	}, nil
}

func (l Line) ProductID() uuid.UUID       { return l.productID }
func (l Line) Title() string              { return l.title }
func (l Line) Description() string        { return l.description }
func (l Line) UnitPrice() decimal.Decimal { return l.unitPrice }
func (l Line) Quantity() int              { return l.quantity }

func (l Line) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

type Order struct {
	id        uuid.UUID
	userID    uuid.UUID
	lines     []Line
	createdAt time.Time
}

func NewOrder(id, userID uuid.UUID, lines []Line, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)

	return &Order{
		id:        id,
		userID:    userID,
		lines:     copied,
		createdAt: now,
	}, nil
}

func (o *Order) ID() uuid.UUID        { return o.id }
func (o *Order) UserID() uuid.UUID    { return o.userID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) Lines() []Line {
	copied := make([]Line, len(o.lines))
	copy(copied, o.lines)
	return copied
}

func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
