package crosswalk

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultInitialDelay = 2000 * time.Millisecond
	DefaultBlinkDelay   = 500 * time.Millisecond
	DefaultCount        = 5
)

// ErrQueueClosed is returned by Run when the command queue is closed while a
// countdown is waiting between steps.
var ErrQueueClosed = errors.New("command queue closed during countdown")

type Options struct {
	// InitialDelay is how long the solid walk phase lasts.
	InitialDelay time.Duration
	// BlinkDelay is the length of each half of a blink step.
	BlinkDelay time.Duration
	// Count is the starting number of blink steps.
	Count uint
	// SafeInterrupt turns the lines off before running a command that
	// interrupted a countdown.
	SafeInterrupt bool

	Log     logrus.FieldLogger
	Metrics *Metrics
}

// Controller runs the signal from a stream of commands. It must be driven by
// a single goroutine calling Run.
type Controller struct {
	lines *Lines
	cmds  <-chan Command

	initial       time.Duration
	blink         time.Duration
	safeInterrupt bool

	count   uint
	pending *Command
	state   atomic.Int32

	log     logrus.FieldLogger
	metrics *Metrics
}

// New creates a Controller reading from cmds. Zero delays fall back to
// DefaultInitialDelay and DefaultBlinkDelay; Count is used as given.
func New(lines *Lines, cmds <-chan Command, opts Options) *Controller {
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = DefaultInitialDelay
	}
	if opts.BlinkDelay <= 0 {
		opts.BlinkDelay = DefaultBlinkDelay
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Controller{
		lines:         lines,
		cmds:          cmds,
		initial:       opts.InitialDelay,
		blink:         opts.BlinkDelay,
		safeInterrupt: opts.SafeInterrupt,
		count:         opts.Count,
		log:           opts.Log,
		metrics:       opts.Metrics,
	}
}

// State returns the last state applied to the lines. It is safe to call from
// any goroutine.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Run turns the signal off and executes commands until the queue is closed.
// A closed queue while idle is a clean shutdown and returns nil. Line errors
// and a queue closed mid-countdown are returned immediately.
func (c *Controller) Run() error {
	err := c.set(Off)
	if err != nil {
		return err
	}
	c.pending = nil

	for {
		var cmd Command
		if c.pending != nil {
			cmd = *c.pending
			c.pending = nil
			if c.safeInterrupt {
				err = c.set(Off)
				if err != nil {
					return err
				}
			}
		} else {
			var ok bool
			cmd, ok = <-c.cmds
			if !ok {
				c.log.Warnln("command queue closed, stopping controller")
				return nil
			}
		}

		err = c.execute(cmd)
		if err != nil {
			return err
		}
	}
}

func (c *Controller) set(s State) error {
	c.log.WithField("State", s).Debugln("set state")
	err := c.lines.Set(s)
	if err != nil {
		return err
	}
	c.state.Store(int32(s))
	c.metrics.state(s)
	return nil
}

func (c *Controller) execute(cmd Command) error {
	c.metrics.command(cmd)
	switch cmd.Kind {
	case SetOff:
		return c.set(Off)
	case SetWalk:
		return c.set(Walk)
	case SetDontWalk:
		return c.set(DontWalk)
	case SetCount:
		c.log.WithField("Count", cmd.Count).Infoln("set count")
		c.count = cmd.Count
		return nil
	case StartCountdown:
		return c.countdown()
	}
	c.log.WithField("Command", cmd).Warnln("unknown command")
	return nil
}

// countdown shows walk, then blinks don't-walk count times and holds it.
// Any command arriving during a delay aborts the sequence and is left in
// the pending slot; the lines stay as they were last set.
func (c *Controller) countdown() error {
	c.log.WithField("Count", c.count).Infoln("counting down")

	err := c.set(Walk)
	if err != nil {
		return err
	}
	if stop, err := c.hold(c.initial); stop || err != nil {
		return err
	}
	err = c.set(Off)
	if err != nil {
		return err
	}

	for i := uint(0); i < c.count; i++ {
		c.log.WithFields(logrus.Fields{"Step": i + 1, "Count": c.count}).Debugln("countdown step")

		err = c.set(DontWalk)
		if err != nil {
			return err
		}
		if stop, err := c.hold(c.blink); stop || err != nil {
			return err
		}
		err = c.set(Off)
		if err != nil {
			return err
		}
		if stop, err := c.hold(c.blink); stop || err != nil {
			return err
		}
	}

	err = c.set(DontWalk)
	if err != nil {
		return err
	}
	c.metrics.countdown("completed")
	return nil
}

// hold waits out one countdown step and reports whether the countdown has
// to stop.
func (c *Controller) hold(d time.Duration) (bool, error) {
	switch c.delay(d) {
	case delayInterrupted:
		c.log.WithField("Command", *c.pending).Infoln("countdown interrupted")
		c.metrics.countdown("interrupted")
		return true, nil
	case delayClosed:
		return true, ErrQueueClosed
	}
	return false, nil
}

type delayResult int

const (
	delayElapsed delayResult = iota
	delayInterrupted
	delayClosed
)

// delay blocks for up to d waiting for a command. A received command is
// stored in the pending slot.
func (c *Controller) delay(d time.Duration) delayResult {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case cmd, ok := <-c.cmds:
		if !ok {
			return delayClosed
		}
		c.pending = &cmd
		return delayInterrupted
	case <-t.C:
		return delayElapsed
	}
}
