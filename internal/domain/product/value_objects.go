package product

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const MaxTitleLength = 255

var (
	ErrEmptyTitle   = errors.New("title must not be empty")
	ErrTitleTooLong = errors.New("title exceeds maximum length")
	ErrInvalidPrice = errors.New("price must be a positive amount")
)

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(t) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: t}, nil
}

func (t Title) String() string { return t.value }

type Price struct {
	value decimal.Decimal
}

func NewPrice(d decimal.Decimal) (Price, error) {
	if d.IsNegative() || d.IsZero() {
		return Price{}, ErrInvalidPrice
	}
	return Price{value: d.Round(2)}, nil
}

func NewPriceFromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, ErrInvalidPrice
	}
	return NewPrice(d)
}

func (p Price) Decimal() decimal.Decimal { return p.value }
func (p Price) String() string           { return p.value.StringFixed(2) }
