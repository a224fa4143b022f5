package cart

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

type Item struct {
	productID uuid.UUID
	quantity  int
}

func NewItem(productID uuid.UUID, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	return Item{productID: productID, quantity: quantity}, nil
}

func (i Item) ProductID() uuid.UUID { return i.productID }
func (i Item) Quantity() int        { return i.quantity }

// Cart is a value type. Mutating operations return a new Cart and
// leave the receiver untouched; persistence is the caller's concern.
type Cart struct {
	userID uuid.UUID
	items  []Item
}

func NewCart(userID uuid.UUID) Cart {
	return Cart{userID: userID}
}

func Reconstruct(userID uuid.UUID, items []Item) Cart {
	copied := make([]Item, len(items))
	copy(copied, items)
	return Cart{userID: userID, items: copied}
}

func (c Cart) UserID() uuid.UUID { return c.userID }

func (c Cart) Items() []Item {
	copied := make([]Item, len(c.items))
	copy(copied, c.items)
	return copied
}

func (c Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c Cart) QuantityOf(productID uuid.UUID) int {
	for _, it := range c.items {
		if it.productID == productID {
			return it.quantity
		}
	}
	return 0
}

// AddItem merges the quantity into an existing line for the same
// product, or appends a new line at the end.
func (c Cart) AddItem(productID uuid.UUID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, ErrInvalidQuantity
	}

	items := c.Items()
	for i, it := range items {
		if it.productID == productID {
			items[i].quantity += quantity
			return Cart{userID: c.userID, items: items}, nil
		}
	}

	items = append(items, Item{productID: productID, quantity: quantity})
	return Cart{userID: c.userID, items: items}, nil
}

// RemoveItem drops the whole line regardless of quantity. Removing a
// product that is not in the cart is a no-op.
func (c Cart) RemoveItem(productID uuid.UUID) Cart {
	items := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.productID != productID {
			items = append(items, it)
		}
	}
	return Cart{userID: c.userID, items: items}
}

func (c Cart) Clear() Cart {
	return Cart{userID: c.userID}
}
