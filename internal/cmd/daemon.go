// Package cmd holds the kong command implementations.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/g502-hero/g502d/device"
	"github.com/g502-hero/g502d/input"
	"github.com/g502-hero/g502d/internal/log"
	"github.com/g502-hero/g502d/internal/server/ctrl"
	"github.com/g502-hero/g502d/profile"
	"github.com/g502-hero/g502d/transport"
)

// Daemon runs the driver: transport, device context, correlator, control
// surface.
type Daemon struct {
	Ctrl         ctrl.Config `embed:"" prefix:"ctrl."`
	ProfileSeeds string      `help:"Path to a YAML profile seed file" type:"path" env:"G502D_PROFILE_SEEDS"`
	InputName    string      `help:"Name of the created input event device" default:"G502 Hero (g502d)" env:"G502D_INPUT_NAME"`
}

// Run is called by kong when the daemon command is executed.
func (c *Daemon) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.run(ctx, logger, rawLogger)
}

func (c *Daemon) run(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	seeds := profile.DefaultSeeds()
	if c.ProfileSeeds != "" {
		var err error
		if seeds, err = profile.LoadSeeds(c.ProfileSeeds); err != nil {
			return err
		}
		logger.Info("loaded profile seeds", "path", c.ProfileSeeds, "profiles", len(seeds))
	}
	store, err := profile.NewStore(seeds)
	if err != nil {
		return err
	}

	tr, err := transport.Open(logger, rawLogger)
	if err != nil {
		return err
	}
	defer tr.Close()

	sink, err := input.New(c.InputName, transport.VendorID, transport.ProductID)
	if err != nil {
		// The control surface and protocol still work without an event
		// device; tilt events are simply dropped.
		logger.Warn("no input event device, events will be discarded", "error", err)
		sink = input.Nop{}
	}
	defer sink.Close()

	dev := device.New(tr, sink, store, logger)
	if err := dev.Attach(); err != nil {
		return err
	}
	defer dev.Close()

	go dev.Run(ctx)

	readErr := make(chan error, 1)
	go func() {
		readErr <- tr.Run(func(frame []byte) { dev.OnInbound(frame) })
	}()

	srv := ctrl.New(c.Ctrl, logger)
	r := srv.Router()
	r.Register("attr/{name}/show", ctrl.AttrShow(dev))
	r.Register("attr/{name}/store", ctrl.AttrStore(dev))
	r.Register("profile/list", ctrl.ProfileList(dev))
	r.Register("profile/switch", ctrl.ProfileSwitch(dev))
	r.Register("fw/show", ctrl.FirmwareShow(dev))
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Close()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Info("running interactively; try: printf 'attr/report_rate/show\\0' | nc " + srv.Addr())
	}

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-readErr:
		// A failed read usually means the device went away.
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
}
