package model

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownProductCode = errors.New("invalid product code")
	ErrOutOfStock         = errors.New("product is out of stock")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInsufficientStock  = errors.New("insufficient stock quantity")
)

type Product struct {
	Code  string          `json:"-"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

func (p *Product) CheckAvailable(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	if quantity > p.Stock {
		return errors.Wrapf(ErrInsufficientStock, "only %d units are available", p.Stock)
	}
	return nil
}

// Take removes quantity units from stock. Stock is left untouched on error.
func (p *Product) Take(quantity int) error {
	if err := p.CheckAvailable(quantity); err != nil {
		return err
	}
	p.Stock -= quantity
	return nil
}

// Catalog maps product code to product.
type Catalog map[string]*Product

func (c Catalog) Find(code string) (*Product, error) {
	product, ok := c[code]
	if !ok {
		return nil, ErrUnknownProductCode
	}
	return product, nil
}

// Codes returns product codes in display order.
func (c Catalog) Codes() []string {
	codes := make([]string, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

type ProductRepository interface {
	Load() (Catalog, error)
	Store(products Catalog) error
}
