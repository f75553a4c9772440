package crosswalk

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

const (
	LOW  = 0
	HIGH = 1
)

// PinWriter drives a digital output by physical pin number. The raspi
// adaptor from gobot satisfies it.
type PinWriter interface {
	DigitalWrite(pin string, val byte) error
}

// Line is one output of the signal.
type Line struct {
	Name   string
	Pin    int
	Invert bool
}

// Lines owns the walk and don't-walk outputs.
type Lines struct {
	w        PinWriter
	walk     Line
	dontWalk Line
	log      logrus.FieldLogger
}

func NewLines(w PinWriter, walk, dontWalk Line, log logrus.FieldLogger) *Lines {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Lines{w: w, walk: walk, dontWalk: dontWalk, log: log}
}

// Set drives both lines to show s. The line being turned off is always
// written before the line being turned on, so both are never high together.
func (l *Lines) Set(s State) error {
	switch s {
	case Off:
		if err := l.write(l.dontWalk, false); err != nil {
			return err
		}
		return l.write(l.walk, false)
	case Walk:
		if err := l.write(l.dontWalk, false); err != nil {
			return err
		}
		return l.write(l.walk, true)
	case DontWalk:
		if err := l.write(l.walk, false); err != nil {
			return err
		}
		return l.write(l.dontWalk, true)
	}
	return fmt.Errorf("unknown state %d", s)
}

func (l *Lines) write(line Line, on bool) error {
	var val byte
	if line.Invert != on {
		val = HIGH
	} else {
		val = LOW
	}
	l.log.WithFields(logrus.Fields{
		"ID":    line.Name,
		"Pin":   line.Pin,
		"State": on,
	}).Debugln("write line")

	err := l.w.DigitalWrite(strconv.Itoa(line.Pin), val)
	if err != nil {
		return fmt.Errorf("set %s line (pin %d): %w", line.Name, line.Pin, err)
	}
	return nil
}
