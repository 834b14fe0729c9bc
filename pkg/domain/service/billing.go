package service

import (
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"vendingmachine/pkg/domain/model"
)

type Receipt struct {
	Lines    []LineItem
	Subtotal decimal.Decimal
	Total    decimal.Decimal
	Settlement
}

type BillingService interface {
	// Billing runs ComputeSubtotal -> ApplyCoupon -> ChoosePaymentMethod -> payment exactly once.
	Billing(session *model.Session) Receipt
}

func NewBillingService(pricing PricingService, payment PaymentService, logger log.FieldLogger) BillingService {
	return &billingService{pricing: pricing, payment: payment, logger: logger}
}

type billingService struct {
	pricing PricingService
	payment PaymentService
	logger  log.FieldLogger
}

func (s *billingService) Billing(session *model.Session) Receipt {
	bill := s.pricing.PresentBill(session)
	receipt := Receipt{Lines: bill.Lines, Subtotal: bill.Subtotal, Total: bill.Subtotal}

	total, err := s.pricing.ChooseCoupon(session, bill.Subtotal)
	if err != nil {
		s.logger.WithError(err).Warn("billing stopped while choosing a coupon")
		return receipt
	}
	receipt.Total = total

	result := s.payment.ChoosePaymentMethod(session, total)
	if result.Status == StatusDone {
		receipt.Settlement = result.Value
	}

	s.logger.WithFields(log.Fields{
		"session": session.ID,
		"status":  result.Status.String(),
		"method":  receipt.Method.String(),
		"settled": receipt.Settled,
		"total":   receipt.Total.StringFixed(2),
	}).Info("billing finished")
	return receipt
}
