package options

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

const (
	DefaultBaudRate = 9600
	DefaultCount    = 1
)

// Action is what a run does once its options are parsed.
type Action int

const (
	ShowHelp Action = iota
	ListPorts
	Listen
	SendAscii
	SendFile
	SendText
)

// String names the action for logs and messages.
func (a Action) String() string {
	switch a {
	case ShowHelp:
		return "help"
	case ListPorts:
		return "list ports"
	case Listen:
		return "listen"
	case SendAscii:
		return "send ascii"
	case SendFile:
		return "send file"
	case SendText:
		return "send text"
	}
	return "Action(" + strconv.Itoa(int(a)) + ")"
}

// Config is the parsed command line of one run.
type Config struct {
	Action   Action
	PortName string
	BaudRate int
	NoEcho   bool
	// Count is how many times a send repeats, or how many bytes a receive
	// processes. 0 means no limit.
	Count      int
	AsciiValue byte
	Text       string
	SendPath   string
	DumpPath   string
	Details    bool
}

// Default returns the configuration used when neither config.json nor the
// command line say otherwise.
func Default() Config {
	return Config{
		Action:   ShowHelp,
		BaudRate: DefaultBaudRate,
		Count:    DefaultCount,
	}
}

// Parse builds a Config from command line arguments on top of defaults.
//
// Every flag that selects an action overwrites the action chosen by the flags
// before it, so the last one on the command line wins. Numeric values that do
// not parse fall back to their defaults instead of failing.
func Parse(args []string, defaults Config) (Config, error) {
	cfg := defaults
	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return cfg, nil
}

// Usage returns the help text listing every flag.
func Usage() string {
	cfg := Default()
	var b strings.Builder
	b.WriteString("Usage: serialportecho [options]\n\nOptions:\n")
	b.WriteString(newFlagSet(&cfg).FlagUsages())
	return b.String()
}

func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("serialportecho", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	actionFlag(fs, cfg, ShowHelp, "help", "h", "shows this help")
	actionFlag(fs, cfg, ListPorts, "listports", "l", "lists the name of all available COM ports")
	fs.BoolVar(&cfg.Details, "details", cfg.Details, "with --listports, show USB details of each port")
	fs.VarP(&funcValue{
		typ: "string",
		get: func() string { return cfg.PortName },
		set: func(s string) error {
			cfg.PortName = s
			cfg.Action = Listen
			return nil
		},
	}, "port", "p", "sets the name of the serialport (COM1, /dev/ttyUSB0, etc) and listens on it")
	fs.VarP(&funcValue{
		typ: "int",
		get: func() string { return strconv.Itoa(cfg.BaudRate) },
		set: func(s string) error {
			cfg.BaudRate = lenientInt(s, DefaultBaudRate, func(n int) bool { return n > 0 })
			return nil
		},
	}, "baudrate", "b", "sets the baud rate")
	fs.BoolVarP(&cfg.NoEcho, "no-echo", "n", cfg.NoEcho, "does not echo the received byte back")
	fs.VarP(&funcValue{
		typ: "int",
		get: func() string { return strconv.Itoa(int(cfg.AsciiValue)) },
		set: func(s string) error {
			v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
			if err != nil {
				v = 0
			}
			cfg.AsciiValue = byte(v)
			cfg.Action = SendAscii
			return nil
		},
	}, "send-ascii", "a", "sends the byte with this value")
	fs.VarP(&funcValue{
		typ: "string",
		get: func() string { return cfg.Text },
		set: func(s string) error {
			cfg.Text = s
			cfg.Action = SendText
			return nil
		},
	}, "text", "t", "sends this text")
	fs.VarP(&funcValue{
		typ: "string",
		get: func() string { return cfg.SendPath },
		set: func(s string) error {
			cfg.SendPath = s
			cfg.Action = SendFile
			return nil
		},
	}, "send-file", "f", "sends the contents of this file")
	fs.VarP(&funcValue{
		typ: "int",
		get: func() string { return strconv.Itoa(cfg.Count) },
		set: func(s string) error {
			cfg.Count = lenientInt(s, DefaultCount, func(n int) bool { return n >= 0 })
			return nil
		},
	}, "count", "c", "how often to send, or how many bytes to receive (0 = forever)")
	actionFlag(fs, cfg, Listen, "receive", "r", "receives bytes and echoes them back")
	fs.StringVarP(&cfg.DumpPath, "dump-to-file", "d", cfg.DumpPath, "appends every received byte to this file")

	return fs
}

func lenientInt(s string, fallback int, valid func(int) bool) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !valid(n) {
		return fallback
	}
	return n
}

func actionFlag(fs *pflag.FlagSet, cfg *Config, action Action, name, shorthand, usage string) {
	selected := false
	f := fs.VarPF(&boolFuncValue{funcValue{
		typ: "bool",
		get: func() string { return strconv.FormatBool(selected) },
		set: func(s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			if b {
				selected = true
				cfg.Action = action
			}
			return nil
		},
	}}, name, shorthand, usage)
	f.NoOptDefVal = "true"
}

// pflag.Value backed by closures over the Config being built.
type funcValue struct {
	typ string
	get func() string
	set func(string) error
}

func (v *funcValue) String() string     { return v.get() }
func (v *funcValue) Set(s string) error { return v.set(s) }
func (v *funcValue) Type() string       { return v.typ }

type boolFuncValue struct {
	funcValue
}

func (v *boolFuncValue) IsBoolFlag() bool { return true }
