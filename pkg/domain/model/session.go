package model

import "github.com/google/uuid"

// Session is the context of one customer visit. Every service operation receives it explicitly.
type Session struct {
	ID       uuid.UUID
	Products Catalog
	Coupons  CouponTable
	Cards    CardAccounts
	Cart     *Cart
}

func NewSession(id uuid.UUID, products Catalog, coupons CouponTable, cards CardAccounts) *Session {
	if products == nil {
		products = make(Catalog)
	}
	if coupons == nil {
		coupons = make(CouponTable)
	}
	if cards == nil {
		cards = make(CardAccounts)
	}
	return &Session{
		ID:       id,
		Products: products,
		Coupons:  coupons,
		Cards:    cards,
		Cart:     NewCart(),
	}
}
