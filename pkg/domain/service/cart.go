package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"vendingmachine/pkg/domain/model"
)

type Reservation struct {
	ProductCode string
	Quantity    int
}

type CartService interface {
	// AddToCart runs one retry-bounded add-to-cart interaction.
	AddToCart(session *model.Session) Result[Reservation]
	// Reserve moves quantity units of a product into the cart and persists the catalog.
	Reserve(session *model.Session, code string, quantity int) error
	// Shop keeps adding products until the customer stops. It fails only when input is closed.
	Shop(session *model.Session) error
}

func NewCartService(
	repo model.ProductRepository,
	terminal Terminal,
	retrier *Retrier,
	dispatcher EventDispatcher,
	logger log.FieldLogger,
) CartService {
	return &cartService{
		repo:       repo,
		terminal:   terminal,
		retrier:    retrier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type cartService struct {
	repo       model.ProductRepository
	terminal   Terminal
	retrier    *Retrier
	dispatcher EventDispatcher
	logger     log.FieldLogger
}

func (s *cartService) Shop(session *model.Session) error {
	for {
		result := s.AddToCart(session)
		switch result.Status {
		case StatusAborted:
			return result.Err
		case StatusCancelled:
			return nil
		}

		answer, err := prompt(s.terminal, "Do you want to add more products? (y/n)")
		if err != nil {
			return err
		}
		if !confirmed(answer) {
			return nil
		}
	}
}

func (s *cartService) AddToCart(session *model.Session) Result[Reservation] {
	return AttemptWithRetry(s.retrier, func() StepResult[Reservation] {
		return s.addToCartStep(session)
	})
}

func (s *cartService) addToCartStep(session *model.Session) StepResult[Reservation] {
	s.renderCatalog(session.Products)

	input, err := prompt(s.terminal, "Enter the product code to purchase")
	if err != nil {
		return AbortWith[Reservation](err)
	}
	code := strings.ToUpper(input)

	product, err := session.Products.Find(code)
	if err != nil {
		return RetryWith[Reservation](err)
	}
	if product.Stock <= 0 {
		return RetryWith[Reservation](model.ErrOutOfStock)
	}

	input, err = prompt(s.terminal, fmt.Sprintf("Enter quantity for %s", product.Name))
	if err != nil {
		return AbortWith[Reservation](err)
	}
	quantity, err := parseQuantity(input)
	if err != nil {
		return RetryWith[Reservation](err)
	}
	if err := product.CheckAvailable(quantity); err != nil {
		return RetryWith[Reservation](err)
	}

	answer, err := prompt(s.terminal, fmt.Sprintf("Confirm adding %d x %s to cart? (y/n)", quantity, product.Name))
	if err != nil {
		return AbortWith[Reservation](err)
	}
	if !confirmed(answer) {
		s.terminal.RenderMessage(SeverityWarning, "Action cancelled.")
		return Decline[Reservation]()
	}

	if err := s.Reserve(session, code, quantity); err != nil {
		return RetryWith[Reservation](err)
	}

	s.terminal.RenderMessage(SeveritySuccess, fmt.Sprintf("%d x %s added to cart.", quantity, product.Name))
	return Succeed(Reservation{ProductCode: code, Quantity: quantity})
}

func (s *cartService) Reserve(session *model.Session, code string, quantity int) error {
	product, err := session.Products.Find(code)
	if err != nil {
		return err
	}
	if err := product.Take(quantity); err != nil {
		return err
	}
	session.Cart.Add(code, quantity)

	if err := s.repo.Store(session.Products); err != nil {
		// Memory must not run ahead of the stored catalog.
		product.Stock += quantity
		session.Cart.Remove(code, quantity)
		s.logger.WithError(err).WithField("product", code).Error("failed to persist stock reservation")
		return errors.Wrap(err, "failed to save products")
	}

	_ = s.dispatcher.Dispatch(model.ProductStockReserved{
		SessionID:   session.ID,
		ProductCode: code,
		Quantity:    quantity,
		NewStock:    product.Stock,
	})
	return nil
}

func (s *cartService) renderCatalog(products model.Catalog) {
	rows := make([][]string, 0, len(products))
	for _, code := range products.Codes() {
		product := products[code]
		rows = append(rows, []string{
			code,
			product.Name,
			product.Price.StringFixed(2),
			strconv.Itoa(product.Stock),
		})
	}
	s.terminal.RenderTable("Available Products", []string{"Code", "Name", "Price", "Stock"}, rows)
}

func parseQuantity(input string) (int, error) {
	quantity, err := strconv.Atoi(input)
	if err != nil || quantity <= 0 {
		return 0, errors.Wrapf(model.ErrInvalidQuantity, "%q is not a positive whole number", input)
	}
	return quantity, nil
}
