// RS-232/Virtual-Serial over USB port lifecycle:
// opening a port for a transfer and enumerating the ports on the system.

package comwrapper

import (
	"errors"

	"github.com/8/serialportecho/transfer"
	"github.com/tarm/serial"
	bugst "go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

var errNoPortName = errors.New("no port name given")

// Open the named COM port on the system at the given baud rate.
// The returned port is ready to read and write.
func OpenPort(portName string, baudRate int) (*serial.Port, error) {
	if portName == "" {
		return nil, transfer.NewError(transfer.ErrPortOpen, "open", portName, errNoPortName)
	}
	p, err := serial.OpenPort(&serial.Config{Name: portName, Baud: baudRate})
	if err != nil {
		return nil, transfer.NewError(transfer.ErrPortOpen, "open", portName, err)
	}
	return p, nil
}

// ListPorts returns the names of all serial ports available on the system.
func ListPorts() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, transfer.NewError(transfer.ErrPortEnumeration, "list ports", "", err)
	}
	return ports, nil
}

// PortInfo describes an available serial port.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// ListPortDetails is ListPorts with USB identification where the OS exposes it.
func ListPortDetails() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, transfer.NewError(transfer.ErrPortEnumeration, "list port details", "", err)
	}
	ports := make([]PortInfo, 0, len(details))
	for _, d := range details {
		ports = append(ports, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	return ports, nil
}
