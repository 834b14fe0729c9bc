package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"vendingmachine/pkg/domain/model"
)

// Coupon inputs that mean "no coupon".
var skipCouponCodes = []string{"n", "none"}

type LineItem struct {
	ProductCode string
	Name        string
	Quantity    int
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

type Bill struct {
	Lines    []LineItem
	Subtotal decimal.Decimal
}

// ComputeSubtotal prices the cart against the catalog. Entries for products missing from the catalog are skipped.
func ComputeSubtotal(cart *model.Cart, products model.Catalog) Bill {
	bill := Bill{Subtotal: decimal.Zero}
	for _, code := range cart.Codes() {
		product, ok := products[code]
		if !ok {
			continue
		}
		quantity := cart.Quantity(code)
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		bill.Lines = append(bill.Lines, LineItem{
			ProductCode: code,
			Name:        product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
			Total:       lineTotal,
		})
		bill.Subtotal = bill.Subtotal.Add(lineTotal)
	}
	return bill
}

func IsSkipCoupon(code string) bool {
	code = strings.TrimSpace(code)
	for _, skip := range skipCouponCodes {
		if strings.EqualFold(code, skip) {
			return true
		}
	}
	return false
}

// ApplyCoupon returns subtotal * (1 - percent/100) for a known coupon and subtotal itself for the skip sentinel.
func ApplyCoupon(subtotal decimal.Decimal, code string, coupons model.CouponTable) (decimal.Decimal, error) {
	if IsSkipCoupon(code) {
		return subtotal, nil
	}
	percent, err := coupons.Percent(strings.TrimSpace(code))
	if err != nil {
		return subtotal, err
	}
	discount := subtotal.Mul(percent.Shift(-2))
	return subtotal.Sub(discount), nil
}

type PricingService interface {
	// PresentBill computes the cart breakdown and shows it to the customer.
	PresentBill(session *model.Session) Bill
	// ChooseCoupon asks for an optional coupon and returns the discounted total.
	// Running out of attempts falls back to subtotal. An error means input was closed.
	ChooseCoupon(session *model.Session, subtotal decimal.Decimal) (decimal.Decimal, error)
}

func NewPricingService(terminal Terminal, retrier *Retrier, dispatcher EventDispatcher) PricingService {
	return &pricingService{terminal: terminal, retrier: retrier, dispatcher: dispatcher}
}

type pricingService struct {
	terminal   Terminal
	retrier    *Retrier
	dispatcher EventDispatcher
}

func (s *pricingService) PresentBill(session *model.Session) Bill {
	bill := ComputeSubtotal(session.Cart, session.Products)

	rows := make([][]string, 0, len(bill.Lines))
	for _, line := range bill.Lines {
		rows = append(rows, []string{
			line.Name,
			strconv.Itoa(line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.Total.StringFixed(2),
		})
	}
	s.terminal.RenderTable("Your Cart", []string{"Name", "Quantity", "Price", "Total"}, rows)
	s.terminal.RenderMessage(SeverityInfo, fmt.Sprintf("Total: %s", bill.Subtotal.StringFixed(2)))
	return bill
}

func (s *pricingService) ChooseCoupon(session *model.Session, subtotal decimal.Decimal) (decimal.Decimal, error) {
	result := AttemptWithRetry(s.retrier, func() StepResult[decimal.Decimal] {
		return s.couponStep(session, subtotal)
	})
	switch result.Status {
	case StatusDone:
		return result.Value, nil
	case StatusAborted:
		return subtotal, result.Err
	}
	return subtotal, nil
}

func (s *pricingService) couponStep(session *model.Session, subtotal decimal.Decimal) StepResult[decimal.Decimal] {
	code, err := prompt(s.terminal, "Enter coupon code (if any, type 'n' if none)")
	if err != nil {
		return AbortWith[decimal.Decimal](err)
	}
	if IsSkipCoupon(code) {
		s.terminal.RenderMessage(SeverityWarning, "No coupon applied.")
		return Succeed(subtotal)
	}

	total, err := ApplyCoupon(subtotal, code, session.Coupons)
	if err != nil {
		return RetryWith[decimal.Decimal](err)
	}

	discount := subtotal.Sub(total)
	s.terminal.RenderMessage(SeveritySuccess, fmt.Sprintf("Coupon applied! Discount: %s", discount.StringFixed(2)))
	_ = s.dispatcher.Dispatch(model.CouponApplied{
		SessionID: session.ID,
		Code:      code,
		Percent:   session.Coupons[code],
		Discount:  discount,
		Total:     total,
	})
	return Succeed(total)
}
