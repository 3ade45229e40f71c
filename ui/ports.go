package ui

import (
	"fmt"
	"io"

	"github.com/8/serialportecho/comwrapper"
	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintPortNames writes the port count header followed by one name per line.
func PrintPortNames(w io.Writer, names []string) error {
	if _, err := fmt.Fprintf(w, "Available Ports (%d):\n", len(names)); err != nil {
		return err
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// PortTableView renders the detailed port listing.
func PortTableView(ports []comwrapper.PortInfo) string {
	t := table.NewWriter()
	t.SetTitle("Available Ports (%d)", len(ports))
	t.AppendHeader(table.Row{"#", "Name", "USB", "VID", "PID", "Serial", "Product"})
	for i, p := range ports {
		usb := "no"
		if p.IsUSB {
			usb = "yes"
		}
		t.AppendRow(table.Row{i + 1, p.Name, usb, p.VID, p.PID, p.SerialNumber, p.Product})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func PrintPortTable(w io.Writer, ports []comwrapper.PortInfo) error {
	_, err := fmt.Fprintln(w, PortTableView(ports))
	return err
}
