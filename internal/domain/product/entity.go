package product

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	id          uuid.UUID
	title       Title
	imageURL    string
	description string
	price       Price
	createdBy   uuid.UUID
	createdAt   time.Time
	updatedAt   time.Time
}

func NewProduct(id uuid.UUID, titleText, imageURL, description, priceText string, createdBy uuid.UUID, now time.Time) (*Product, error) {
	title, err := NewTitle(titleText)
	if err != nil {
		return nil, err
	}

	price, err := NewPriceFromString(priceText)
	if err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Product{
		id:          id,
		title:       title,
		imageURL:    imageURL,
		description: description,
		price:       price,
		createdBy:   createdBy,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func (p *Product) ID() uuid.UUID        { return p.id }
func (p *Product) Title() Title         { return p.title }
func (p *Product) ImageURL() string     { return p.imageURL }
func (p *Product) Description() string  { return p.description }
func (p *Product) Price() Price         { return p.price }
func (p *Product) CreatedBy() uuid.UUID { return p.createdBy }
func (p *Product) CreatedAt() time.Time { return p.createdAt }
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }

func (p *Product) Update(titleText, imageURL, description, priceText string, now time.Time) error {
	title, err := NewTitle(titleText)
	if err != nil {
		return err
	}

	price, err := NewPriceFromString(priceText)
	if err != nil {
		return err
	}

	p.title = title
	p.imageURL = imageURL
	p.description = description
	p.price = price
	p.updatedAt = now
	return nil
}
