package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SessionStarted struct {
	SessionID uuid.UUID
}

func (e SessionStarted) Type() string { return "SessionStarted" }

type SessionEnded struct {
	SessionID uuid.UUID
	Settled   bool
}

func (e SessionEnded) Type() string { return "SessionEnded" }

type ProductStockReserved struct {
	SessionID   uuid.UUID
	ProductCode string
	Quantity    int
	NewStock    int
}

func (e ProductStockReserved) Type() string { return "ProductStockReserved" }

type CouponApplied struct {
	SessionID uuid.UUID
	Code      string
	Percent   decimal.Decimal
	Discount  decimal.Decimal
	Total     decimal.Decimal
}

func (e CouponApplied) Type() string { return "CouponApplied" }

type CashPaymentAccepted struct {
	SessionID uuid.UUID
	Total     decimal.Decimal
	Cash      decimal.Decimal
	Change    decimal.Decimal
}

func (e CashPaymentAccepted) Type() string { return "CashPaymentAccepted" }

type CardCharged struct {
	SessionID  uuid.UUID
	ChargeID   uuid.UUID
	CardNumber string // masked
	Amount     decimal.Decimal
	NewBalance decimal.Decimal
}

func (e CardCharged) Type() string { return "CardCharged" }

type PaymentFailed struct {
	SessionID uuid.UUID
	Method    string
	Reason    string
}

func (e PaymentFailed) Type() string { return "PaymentFailed" }
