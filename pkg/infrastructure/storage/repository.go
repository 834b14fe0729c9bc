package storage

import (
	"github.com/pkg/errors"

	"vendingmachine/pkg/domain/model"
)

// The repositories below never return a nil collection. On a load failure they return an
// empty one together with the error, and the caller decides how to report it.

type ProductRepository struct {
	store *JSONStore
}

func NewProductRepository(store *JSONStore) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Load() (model.Catalog, error) {
	products := make(model.Catalog)
	if err := r.store.Load(Products, &products); err != nil {
		return make(model.Catalog), err
	}
	if products == nil {
		products = make(model.Catalog)
	}
	for code, product := range products {
		if product == nil {
			return make(model.Catalog), errors.Wrapf(ErrCollectionMalformed, "product %s has no details", code)
		}
		if product.Price.IsNegative() || product.Stock < 0 {
			return make(model.Catalog), errors.Wrapf(ErrCollectionMalformed, "product %s has negative price or stock", code)
		}
		product.Code = code
	}
	return products, nil
}

func (r *ProductRepository) Store(products model.Catalog) error {
	return r.store.Save(Products, products)
}

type CouponRepository struct {
	store *JSONStore
}

func NewCouponRepository(store *JSONStore) *CouponRepository {
	return &CouponRepository{store: store}
}

func (r *CouponRepository) Load() (model.CouponTable, error) {
	coupons := make(model.CouponTable)
	if err := r.store.Load(Coupons, &coupons); err != nil {
		return make(model.CouponTable), err
	}
	if coupons == nil {
		coupons = make(model.CouponTable)
	}
	return coupons, nil
}

type CardRepository struct {
	store *JSONStore
}

func NewCardRepository(store *JSONStore) *CardRepository {
	return &CardRepository{store: store}
}

func (r *CardRepository) Load() (model.CardAccounts, error) {
	cards := make(model.CardAccounts)
	if err := r.store.Load(Cards, &cards); err != nil {
		return make(model.CardAccounts), err
	}
	if cards == nil {
		cards = make(model.CardAccounts)
	}
	for number, account := range cards {
		if account == nil {
			return make(model.CardAccounts), errors.Wrapf(ErrCollectionMalformed, "card %s has no details", model.MaskCardNumber(number))
		}
		if account.Balance.IsNegative() {
			return make(model.CardAccounts), errors.Wrapf(ErrCollectionMalformed, "card %s has a negative balance", model.MaskCardNumber(number))
		}
		account.Number = number
	}
	return cards, nil
}

func (r *CardRepository) Store(cards model.CardAccounts) error {
	return r.store.Save(Cards, cards)
}
