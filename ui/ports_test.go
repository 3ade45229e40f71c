package ui

import (
	"bytes"
	"testing"

	"github.com/8/serialportecho/comwrapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPortNames(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, PrintPortNames(&out, []string{"COM1", "COM3"}))
	assert.Equal(t, "Available Ports (2):\nCOM1\nCOM3\n", out.String())

	out.Reset()
	require.NoError(t, PrintPortNames(&out, nil))
	assert.Equal(t, "Available Ports (0):\n", out.String())
}

func TestPortTableView(t *testing.T) {
	view := PortTableView([]comwrapper.PortInfo{
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "2341", PID: "0043", SerialNumber: "85734323", Product: "Arduino Uno"},
		{Name: "/dev/ttyS0"},
	})

	assert.Contains(t, view, "Available Ports (2)")
	assert.Contains(t, view, "/dev/ttyACM0")
	assert.Contains(t, view, "2341")
	assert.Contains(t, view, "Arduino Uno")
	assert.Contains(t, view, "/dev/ttyS0")
}

func TestPrintError(t *testing.T) {
	var out bytes.Buffer
	PrintError(&out, "open 'COM9' failed")
	assert.Contains(t, out.String(), "open 'COM9' failed")
	assert.Contains(t, out.String(), IconError)
}
