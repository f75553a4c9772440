package main

import (
	log "github.com/sirupsen/logrus"
	"gobot.io/x/gobot/v2/platforms/raspi"

	"github.com/mastercactapus/crosswalk/crosswalk"
)

type dryRunPins struct{}

func (dryRunPins) DigitalWrite(pin string, val byte) error {
	log.WithFields(log.Fields{
		"Pin":   pin,
		"Value": val,
	}).Infoln("dry-run write")
	return nil
}

// openPins returns the GPIO writer and a func releasing it.
func openPins(dryRun bool) (crosswalk.PinWriter, func() error, error) {
	if dryRun {
		return dryRunPins{}, func() error { return nil }, nil
	}

	adapter := raspi.NewAdaptor()
	err := adapter.Connect()
	if err != nil {
		return nil, nil, err
	}
	return adapter, adapter.Finalize, nil
}
