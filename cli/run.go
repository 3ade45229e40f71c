package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/8/serialportecho/options"
	"github.com/8/serialportecho/transfer"
	"github.com/8/serialportecho/ui"
	"github.com/sirupsen/logrus"
)

// How long an interrupted run waits for the transfer to return once the port
// is closed.
const defaultCloseGrace = time.Second

type runner struct {
	deps   Deps
	out    io.Writer
	errOut io.Writer
}

func (r *runner) run(ctx context.Context, cfg options.Config) error {
	log := r.deps.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	log.WithField("action", cfg.Action).Debug("Dispatching")

	switch cfg.Action {
	case options.ShowHelp:
		_, err := fmt.Fprint(r.out, options.Usage())
		return err
	case options.ListPorts:
		return r.listPorts(cfg.Details)
	}

	switch cfg.Action {
	case options.Listen, options.SendAscii, options.SendText, options.SendFile:
	default:
		return newUserInputError(fmt.Errorf("unknown action %v", cfg.Action))
	}

	ui.PrintStatusf(r.errOut, "Opening port: '%s'...", cfg.PortName)
	port, err := r.deps.OpenPort(cfg.PortName, cfg.BaudRate)
	if err != nil {
		return err
	}
	var closeOnce sync.Once
	closePort := func() {
		closeOnce.Do(func() {
			if err := port.Close(); err != nil {
				log.WithError(err).Debug("Closing port")
			}
		})
	}
	defer closePort()
	ui.PrintSuccess(r.errOut, "Opened port successfully!")
	log.WithFields(logrus.Fields{"port": cfg.PortName, "baud": cfg.BaudRate}).Info("Port open")

	e := transfer.NewEngine(port, cfg.PortName, r.out, log)
	done := make(chan error, 1)
	go func() {
		done <- r.transfer(ctx, e, cfg)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		// Closing the port unblocks a pending read on drivers that support it.
		// Others keep the read blocked, so the transfer is abandoned after a grace period.
		closePort()
		grace := r.deps.CloseGrace
		if grace <= 0 {
			grace = defaultCloseGrace
		}
		select {
		case err = <-done:
		case <-time.After(grace):
			log.WithField("port", cfg.PortName).Warn("Port did not return from read after close, abandoning it")
			ui.PrintStatus(r.errOut, "Interrupted.")
			return nil
		}
	}

	stats := e.Stats()
	log.WithFields(logrus.Fields{
		"received": stats.Received,
		"echoed":   stats.Echoed,
		"dumped":   stats.Dumped,
		"sent":     stats.Sent,
	}).Info("Transfer finished")

	if errors.Is(err, context.Canceled) {
		ui.PrintStatus(r.errOut, "Interrupted.")
		return nil
	}
	if err != nil {
		return err
	}
	if stats.Sent > 0 {
		ui.PrintStatusf(r.errOut, "Sent %d bytes.", stats.Sent)
	}
	return nil
}

func (r *runner) transfer(ctx context.Context, e *transfer.Engine, cfg options.Config) error {
	switch cfg.Action {
	case options.Listen:
		return e.Receive(ctx, transfer.ReceiveOptions{
			NoEcho:   cfg.NoEcho,
			DumpPath: cfg.DumpPath,
			Count:    cfg.Count,
		})
	case options.SendAscii:
		return e.SendAscii(ctx, cfg.AsciiValue, cfg.Count)
	case options.SendText:
		return e.SendText(ctx, cfg.Text, cfg.Count)
	case options.SendFile:
		return e.SendFile(ctx, cfg.SendPath, cfg.Count)
	}
	return fmt.Errorf("unknown action %v", cfg.Action)
}

func (r *runner) listPorts(details bool) error {
	if details {
		ports, err := r.deps.ListPortDetails()
		if err != nil {
			return err
		}
		return ui.PrintPortTable(r.out, ports)
	}
	names, err := r.deps.ListPorts()
	if err != nil {
		return err
	}
	return ui.PrintPortNames(r.out, names)
}
