package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"vendingmachine/pkg/domain/model"
)

var (
	ErrInvalidPaymentOption = errors.New("invalid payment option")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInsufficientAmount   = errors.New("insufficient amount")
)

type PaymentMethod int

const (
	NoPayment PaymentMethod = iota
	Cash
	Card
)

func (m PaymentMethod) String() string {
	switch m {
	case Cash:
		return "cash"
	case Card:
		return "card"
	}
	return "none"
}

// Settlement describes how a chosen payment method ended.
type Settlement struct {
	Method     PaymentMethod
	Settled    bool
	Change     decimal.Decimal
	ChargeID   uuid.UUID
	NewBalance decimal.Decimal
}

type CardCharge struct {
	ChargeID   uuid.UUID
	NewBalance decimal.Decimal
}

// Inserted cash is bounded in scale so that comparing it with the total stays cheap.
const (
	minAmountExponent = -8
	maxAmountExponent = 12
)

// ParseAmount accepts any non-negative decimal whose exponent lies within the cash bounds.
func ParseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q is not a number", input)
	}
	if amount.Exponent() < minAmountExponent || amount.Exponent() > maxAmountExponent {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q is out of range", input)
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q is negative", input)
	}
	return amount, nil
}

// SettleCash returns the change owed for cash against total.
func SettleCash(total, cash decimal.Decimal) (decimal.Decimal, error) {
	if cash.LessThan(total) {
		return decimal.Zero, ErrInsufficientAmount
	}
	return cash.Sub(total), nil
}

type PaymentService interface {
	// ChoosePaymentMethod asks for cash or card and runs the chosen payment.
	// The choice succeeds once a method is picked, whatever the payment outcome.
	ChoosePaymentMethod(session *model.Session, total decimal.Decimal) Result[Settlement]
	PayWithCash(session *model.Session, total decimal.Decimal) Result[decimal.Decimal]
	PayWithCard(session *model.Session, total decimal.Decimal) Result[CardCharge]
	// ChargeCard checks existence, then PIN, then balance, and debits the card in full or not at all.
	ChargeCard(session *model.Session, number, pin string, total decimal.Decimal) (CardCharge, error)
}

func NewPaymentService(
	cards model.CardRepository,
	terminal Terminal,
	retrier *Retrier,
	dispatcher EventDispatcher,
	logger log.FieldLogger,
) PaymentService {
	return &paymentService{
		cards:      cards,
		terminal:   terminal,
		retrier:    retrier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type paymentService struct {
	cards      model.CardRepository
	terminal   Terminal
	retrier    *Retrier
	dispatcher EventDispatcher
	logger     log.FieldLogger
}

func (s *paymentService) ChoosePaymentMethod(session *model.Session, total decimal.Decimal) Result[Settlement] {
	s.terminal.RenderMessage(SeverityInfo, "Payment Options:")
	s.terminal.RenderMessage(SeverityInfo, "1. Cash")
	s.terminal.RenderMessage(SeverityInfo, "2. Card")

	return AttemptWithRetry(s.retrier, func() StepResult[Settlement] {
		return s.choiceStep(session, total)
	})
}

func (s *paymentService) choiceStep(session *model.Session, total decimal.Decimal) StepResult[Settlement] {
	option, err := prompt(s.terminal, "Choose payment option (1/2)")
	if err != nil {
		return AbortWith[Settlement](err)
	}

	switch option {
	case "1":
		result := s.PayWithCash(session, total)
		if result.Status == StatusAborted {
			return AbortWith[Settlement](result.Err)
		}
		return Succeed(Settlement{
			Method:  Cash,
			Settled: result.Status == StatusDone,
			Change:  result.Value,
		})
	case "2":
		result := s.PayWithCard(session, total)
		if result.Status == StatusAborted {
			return AbortWith[Settlement](result.Err)
		}
		return Succeed(Settlement{
			Method:     Card,
			Settled:    result.Status == StatusDone,
			ChargeID:   result.Value.ChargeID,
			NewBalance: result.Value.NewBalance,
		})
	}
	return RetryWith[Settlement](ErrInvalidPaymentOption)
}

func (s *paymentService) PayWithCash(session *model.Session, total decimal.Decimal) Result[decimal.Decimal] {
	return AttemptWithRetry(s.retrier, func() StepResult[decimal.Decimal] {
		return s.cashStep(session, total)
	})
}

func (s *paymentService) cashStep(session *model.Session, total decimal.Decimal) StepResult[decimal.Decimal] {
	input, err := prompt(s.terminal, fmt.Sprintf("Total amount: %s. Insert cash", total.StringFixed(2)))
	if err != nil {
		return AbortWith[decimal.Decimal](err)
	}

	cash, err := ParseAmount(input)
	if err != nil {
		s.paymentFailed(session, Cash, err)
		return RetryWith[decimal.Decimal](err)
	}
	change, err := SettleCash(total, cash)
	if err != nil {
		s.paymentFailed(session, Cash, err)
		return RetryWith[decimal.Decimal](err)
	}

	if change.IsPositive() {
		s.terminal.RenderMessage(SeveritySuccess, fmt.Sprintf("Transaction successful! Change returned: %s", change.StringFixed(2)))
	} else {
		s.terminal.RenderMessage(SeveritySuccess, "Transaction successful! Thank you.")
	}

	_ = s.dispatcher.Dispatch(model.CashPaymentAccepted{
		SessionID: session.ID,
		Total:     total,
		Cash:      cash,
		Change:    change,
	})
	return Succeed(change)
}

func (s *paymentService) PayWithCard(session *model.Session, total decimal.Decimal) Result[CardCharge] {
	return AttemptWithRetry(s.retrier, func() StepResult[CardCharge] {
		return s.cardStep(session, total)
	})
}

func (s *paymentService) cardStep(session *model.Session, total decimal.Decimal) StepResult[CardCharge] {
	number, err := prompt(s.terminal, "Enter card number")
	if err != nil {
		return AbortWith[CardCharge](err)
	}
	// The PIN is only asked for once the card is known.
	if _, err := session.Cards.Find(number); err != nil {
		s.paymentFailed(session, Card, err)
		return RetryWith[CardCharge](err)
	}

	pin, err := prompt(s.terminal, "Enter PIN")
	if err != nil {
		return AbortWith[CardCharge](err)
	}

	charge, err := s.ChargeCard(session, number, pin, total)
	if err != nil {
		s.paymentFailed(session, Card, err)
		return RetryWith[CardCharge](err)
	}

	s.terminal.RenderMessage(SeveritySuccess, "Transaction successful! Thank you.")
	return Succeed(charge)
}

func (s *paymentService) ChargeCard(session *model.Session, number, pin string, total decimal.Decimal) (CardCharge, error) {
	account, err := session.Cards.Find(number)
	if err != nil {
		return CardCharge{}, err
	}
	if account.PIN != pin {
		return CardCharge{}, model.ErrInvalidPIN
	}
	if err := account.Withdraw(total); err != nil {
		return CardCharge{}, err
	}

	if err := s.cards.Store(session.Cards); err != nil {
		account.Balance = account.Balance.Add(total)
		s.logger.WithError(err).WithField("card", model.MaskCardNumber(number)).Error("failed to persist card charge")
		return CardCharge{}, errors.Wrap(err, "failed to save cards")
	}

	charge := CardCharge{ChargeID: uuid.New(), NewBalance: account.Balance}
	_ = s.dispatcher.Dispatch(model.CardCharged{
		SessionID:  session.ID,
		ChargeID:   charge.ChargeID,
		CardNumber: model.MaskCardNumber(number),
		Amount:     total,
		NewBalance: account.Balance,
	})
	return charge, nil
}

func (s *paymentService) paymentFailed(session *model.Session, method PaymentMethod, reason error) {
	_ = s.dispatcher.Dispatch(model.PaymentFailed{
		SessionID: session.ID,
		Method:    method.String(),
		Reason:    reason.Error(),
	})
}
