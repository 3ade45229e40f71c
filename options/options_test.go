package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoArgsShowsHelp(t *testing.T) {
	cfg, err := Parse(nil, Default())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ShowHelp, cfg.Action)
	assert.Equal(t, 9600, cfg.BaudRate)
	assert.Equal(t, 1, cfg.Count)
}

func TestParseActions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Config
	}{
		{
			name: "listen on port",
			args: []string{"-p", "COM3", "-b", "115200", "-n"},
			want: Config{Action: Listen, PortName: "COM3", BaudRate: 115200, NoEcho: true, Count: 1},
		},
		{
			name: "receive with dump",
			args: []string{"--port=/dev/ttyUSB0", "--receive", "--dump-to-file", "rx.bin", "--count=0"},
			want: Config{Action: Listen, PortName: "/dev/ttyUSB0", BaudRate: 9600, Count: 0, DumpPath: "rx.bin"},
		},
		{
			name: "send ascii",
			args: []string{"-p", "COM1", "-a", "65", "-c", "3"},
			want: Config{Action: SendAscii, PortName: "COM1", BaudRate: 9600, AsciiValue: 65, Count: 3},
		},
		{
			name: "send text",
			args: []string{"-p", "COM1", "--text", "hello world"},
			want: Config{Action: SendText, PortName: "COM1", BaudRate: 9600, Text: "hello world", Count: 1},
		},
		{
			name: "send file",
			args: []string{"-pCOM1", "-f", "firmware.bin", "-c2"},
			want: Config{Action: SendFile, PortName: "COM1", BaudRate: 9600, SendPath: "firmware.bin", Count: 2},
		},
		{
			name: "list ports",
			args: []string{"-l", "--details"},
			want: Config{Action: ListPorts, BaudRate: 9600, Count: 1, Details: true},
		},
		{
			name: "help",
			args: []string{"--help"},
			want: Config{Action: ShowHelp, BaudRate: 9600, Count: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.args, Default())
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestParseLastActionWins(t *testing.T) {
	cfg, err := Parse([]string{"-t", "abc", "-p", "COM1"}, Default())
	require.NoError(t, err)
	assert.Equal(t, Listen, cfg.Action)
	assert.Equal(t, "abc", cfg.Text)

	cfg, err = Parse([]string{"-p", "COM1", "-f", "data.bin"}, Default())
	require.NoError(t, err)
	assert.Equal(t, SendFile, cfg.Action)

	cfg, err = Parse([]string{"-l", "-h"}, Default())
	require.NoError(t, err)
	assert.Equal(t, ShowHelp, cfg.Action)

	cfg, err = Parse([]string{"-h", "-l"}, Default())
	require.NoError(t, err)
	assert.Equal(t, ListPorts, cfg.Action)
}

func TestParseLenientNumbers(t *testing.T) {
	for _, v := range []string{"fast", "", "9600baud", "-300", "0", "1e5"} {
		cfg, err := Parse([]string{"-b", v}, Default())
		require.NoError(t, err, v)
		assert.Equal(t, 9600, cfg.BaudRate, "baud %q", v)
	}

	for _, v := range []string{"many", "", "-1", "2.5"} {
		cfg, err := Parse([]string{"--count", v}, Default())
		require.NoError(t, err, v)
		assert.Equal(t, 1, cfg.Count, "count %q", v)
	}

	cfg, err := Parse([]string{"-c", "0"}, Default())
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Count)

	for _, v := range []string{"A", "256", "-1", ""} {
		cfg, err := Parse([]string{"-a", v}, Default())
		require.NoError(t, err, v)
		assert.Equal(t, SendAscii, cfg.Action)
		assert.Zero(t, cfg.AsciiValue, "ascii %q", v)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	defaults := Default()
	defaults.PortName = "COM7"
	defaults.BaudRate = 57600

	cfg, err := Parse([]string{"-r"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, Listen, cfg.Action)
	assert.Equal(t, "COM7", cfg.PortName)
	assert.Equal(t, 57600, cfg.BaudRate)

	cfg, err = Parse([]string{"-r", "-b", "bogus"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaudRate, cfg.BaudRate)
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"--bogus"},
		{"-x"},
		{"-p"},
		{"-l", "extra"},
		{"--receive=maybe"},
	} {
		_, err := Parse(args, Default())
		assert.Error(t, err, "%v", args)
	}
}

func TestUsage(t *testing.T) {
	u := Usage()
	for _, flag := range []string{
		"-h, --help", "-l, --listports", "-p, --port", "-b, --baudrate", "-n, --no-echo",
		"-a, --send-ascii", "-t, --text", "-f, --send-file", "-c, --count", "-r, --receive",
		"-d, --dump-to-file", "--details",
	} {
		assert.Contains(t, u, flag)
	}
}

func TestLoadDefaultsFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"comport name": "COM4", "baud rate": 115200, "no echo": true}`), 0o644))

	cfg, err := loadDefaultsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "COM4", cfg.PortName)
	assert.Equal(t, 115200, cfg.BaudRate)
	assert.True(t, cfg.NoEcho)
	assert.Equal(t, ShowHelp, cfg.Action)
	assert.Equal(t, DefaultCount, cfg.Count)
}

func TestLoadDefaultsFromMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"baud rate": "fast"`), 0o644))

	_, err := loadDefaultsFrom(path)
	assert.ErrorContains(t, err, path)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := LoadDefaults()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
