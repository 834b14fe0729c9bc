package model

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCardNumber   = errors.New("invalid card number")
	ErrInvalidPIN          = errors.New("invalid PIN")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

type CardAccount struct {
	Number  string          `json:"-"`
	PIN     string          `json:"pin"`
	Balance decimal.Decimal `json:"balance"`
}

// Withdraw debits amount in full or not at all.
func (a *CardAccount) Withdraw(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// CardAccounts maps card number to account.
type CardAccounts map[string]*CardAccount

func (c CardAccounts) Find(number string) (*CardAccount, error) {
	account, ok := c[number]
	if !ok {
		return nil, ErrInvalidCardNumber
	}
	return account, nil
}

type CardRepository interface {
	Load() (CardAccounts, error)
	Store(cards CardAccounts) error
}

func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
