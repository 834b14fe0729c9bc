package service

import (
	log "github.com/sirupsen/logrus"

	"vendingmachine/pkg/domain/model"
)

type sessionState int

const (
	stateShopping sessionState = iota
	stateBilling
	stateDone
)

type SessionService interface {
	// Run drives one session from the first prompt to the goodbye message.
	// The receipt is zero when the session ended before billing.
	Run(session *model.Session) Receipt
}

func NewSessionService(cart CartService, billing BillingService, terminal Terminal, dispatcher EventDispatcher, logger log.FieldLogger) SessionService {
	return &sessionService{
		cart:       cart,
		billing:    billing,
		terminal:   terminal,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type sessionService struct {
	cart       CartService
	billing    BillingService
	terminal   Terminal
	dispatcher EventDispatcher
	logger     log.FieldLogger
}

func (s *sessionService) Run(session *model.Session) Receipt {
	_ = s.dispatcher.Dispatch(model.SessionStarted{SessionID: session.ID})
	s.terminal.RenderBanner("Vending Machine")

	var receipt Receipt
	state := stateShopping
	for state != stateDone {
		switch state {
		case stateShopping:
			state = s.shop(session)
		case stateBilling:
			receipt = s.billing.Billing(session)
			state = stateDone
		}
	}

	s.terminal.RenderMessage(SeveritySuccess, "Thank you for using the vending machine! Goodbye.")
	_ = s.dispatcher.Dispatch(model.SessionEnded{SessionID: session.ID, Settled: receipt.Settled})
	return receipt
}

func (s *sessionService) shop(session *model.Session) sessionState {
	s.terminal.RenderMessage(SeverityInfo, "Welcome to the Ultimate Vending Machine!")

	if err := s.cart.Shop(session); err != nil {
		s.logger.WithError(err).WithField("session", session.ID).Warn("input closed, ending session")
		return stateDone
	}
	if session.Cart.IsEmpty() {
		s.terminal.RenderMessage(SeverityError, "Cart is empty. Starting over.")
		return stateShopping
	}
	return stateBilling
}
