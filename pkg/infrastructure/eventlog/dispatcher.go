package eventlog

import (
	log "github.com/sirupsen/logrus"

	"vendingmachine/pkg/domain/service"
)

// Dispatcher writes domain events to the structured log. Nothing reads them back.
type Dispatcher struct {
	logger log.FieldLogger
}

func NewDispatcher(logger log.FieldLogger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

func (d *Dispatcher) Dispatch(event service.Event) error {
	d.logger.WithFields(log.Fields{
		"event":   event.Type(),
		"payload": event,
	}).Info("domain event")
	return nil
}
