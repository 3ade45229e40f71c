package cli

import (
	"context"
	"time"

	"github.com/8/serialportecho/comwrapper"
	"github.com/8/serialportecho/options"
	"github.com/8/serialportecho/transfer"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Port is an open serial port owned by one run.
type Port interface {
	transfer.Port
	Close() error
}

// Deps are the system facilities a run uses.
type Deps struct {
	LoadDefaults    func() (options.Config, error)
	ListPorts       func() ([]string, error)
	ListPortDetails func() ([]comwrapper.PortInfo, error)
	OpenPort        func(name string, baudRate int) (Port, error)
	Log             logrus.FieldLogger

	// CloseGrace bounds the wait for an interrupted transfer. Zero means one second.
	CloseGrace time.Duration
}

// DefaultDeps wires a run to the real serial ports of the system.
func DefaultDeps(log logrus.FieldLogger) Deps {
	return Deps{
		LoadDefaults:    options.LoadDefaults,
		ListPorts:       comwrapper.ListPorts,
		ListPortDetails: comwrapper.ListPortDetails,
		OpenPort: func(name string, baudRate int) (Port, error) {
			p, err := comwrapper.OpenPort(name, baudRate)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		Log: log,
	}
}

func newRootCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serialportecho [options]",
		Short: "Echo, dump and send bytes on a serial port",
		Long: `serialportecho lists the serial ports of this machine, echoes bytes received
on a port back to the sender (optionally appending them to a file), or sends
a byte value, a text or a file over a port.

Examples:
  serialportecho --listports
  serialportecho -p COM3 -b 115200 -c 0
  serialportecho -p /dev/ttyUSB0 -r -n -d rx.bin -c 0
  serialportecho -p COM3 -a 65 -c 3
  serialportecho -p COM3 -f firmware.hex`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := deps.LoadDefaults()
			if err != nil {
				return newUserInputError(err)
			}
			cfg, err := options.Parse(args, defaults)
			if err != nil {
				return newUserInputError(err)
			}
			r := &runner{
				deps:   deps,
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
			}
			return r.run(cmd.Context(), cfg)
		},
	}
	return cmd
}

// Execute runs the root command with the process arguments.
func Execute(ctx context.Context, deps Deps) error {
	return newRootCommand(deps).ExecuteContext(ctx)
}
