package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"vendingmachine/pkg/domain/model"
	"vendingmachine/pkg/domain/service"
	"vendingmachine/pkg/infrastructure/config"
	"vendingmachine/pkg/infrastructure/eventlog"
	"vendingmachine/pkg/infrastructure/storage"
	"vendingmachine/pkg/infrastructure/terminal"
)

func main() {
	app := &cli.App{
		Name:      "vendingmachine",
		Usage:     "run one interactive vending machine session",
		ArgsUsage: " ",
		Action:    runSession,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runSession(_ *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	console := terminal.NewConsole(os.Stdin, os.Stdout, !cfg.NoColor)
	store := storage.NewJSONStore(cfg.DataDir, map[storage.Collection]string{
		storage.Products: cfg.ProductsFile,
		storage.Coupons:  cfg.CouponsFile,
		storage.Cards:    cfg.CardsFile,
	})
	productRepo := storage.NewProductRepository(store)
	cardRepo := storage.NewCardRepository(store)

	session := loadSession(console, productRepo, storage.NewCouponRepository(store), cardRepo)
	logger := log.WithField("session", session.ID)
	dispatcher := eventlog.NewDispatcher(logger)
	retrier := service.NewRetrier(cfg.MaxAttempts, console, logger)

	cartService := service.NewCartService(productRepo, console, retrier, dispatcher, logger)
	pricingService := service.NewPricingService(console, retrier, dispatcher)
	paymentService := service.NewPaymentService(cardRepo, console, retrier, dispatcher, logger)
	billingService := service.NewBillingService(pricingService, paymentService, logger)
	sessionService := service.NewSessionService(cartService, billingService, console, dispatcher, logger)

	receipt := sessionService.Run(session)
	logger.WithFields(log.Fields{
		"method":  receipt.Method.String(),
		"settled": receipt.Settled,
	}).Info("session ended")
	return nil
}

func setupLogging(cfg *config.Config) (io.Closer, error) {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(cfg.Level())

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", cfg.LogFile)
	}
	log.SetOutput(file)
	return file, nil
}

// loadSession reads all collections. A collection that fails to load is reported and replaced by an empty one.
func loadSession(
	console service.Terminal,
	products model.ProductRepository,
	coupons model.CouponRepository,
	cards model.CardRepository,
) *model.Session {
	catalog, err := products.Load()
	reportLoadFailure(console, "products", err)
	couponTable, err := coupons.Load()
	reportLoadFailure(console, "coupons", err)
	accounts, err := cards.Load()
	reportLoadFailure(console, "cards", err)

	return model.NewSession(uuid.New(), catalog, couponTable, accounts)
}

func reportLoadFailure(console service.Terminal, collection string, err error) {
	if err == nil {
		return
	}
	log.WithError(err).WithField("collection", collection).Warn("collection loaded as empty")
	console.RenderMessage(service.SeverityError, fmt.Sprintf("Error: %v", err))
}
