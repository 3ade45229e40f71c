package transfer

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Serial connection a transfer runs over.
// Typically, a RS-232 Port or UART would implement this interface.
type Port interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
}

// Size of the chunks a file is streamed to the port in.
const fileChunkSize = 8

// Stats counts the bytes an Engine moved.
type Stats struct {
	Received uint64
	Echoed   uint64
	Dumped   uint64
	Sent     uint64
}

// Engine runs one transfer operation at a time over a single port.
// It is not safe for concurrent use.
type Engine struct {
	port     Port
	portName string
	console  io.Writer
	log      logrus.FieldLogger
	stats    Stats
}

// NewEngine binds an engine to an open port. Received bytes are mirrored to
// console.
func NewEngine(port Port, portName string, console io.Writer, log logrus.FieldLogger) *Engine {
	if console == nil {
		console = io.Discard
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Engine{
		port:     port,
		portName: portName,
		console:  console,
		log:      log.WithField("port", portName),
	}
}

// Stats returns the byte counts of the operations run so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// ReceiveOptions selects what Receive does with each byte.
type ReceiveOptions struct {
	NoEcho   bool
	DumpPath string
	// Count is the number of bytes to process. 0 means no limit.
	Count int
}

// Receive reads from the port one byte at a time. Each byte is written to the
// console, appended to the dump file if one is set, and echoed back to the
// port unless NoEcho is set.
func (e *Engine) Receive(ctx context.Context, opts ReceiveOptions) error {
	var dump *os.File
	if opts.DumpPath != "" {
		f, err := os.OpenFile(opts.DumpPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return NewError(ErrFileTransfer, "create dump file", opts.DumpPath, err)
		}
		defer f.Close()
		dump = f
		e.log.WithField("file", opts.DumpPath).Info("Dumping received bytes")
	}

	rx := make([]byte, 1)
	for n := 0; opts.Count == 0 || n < opts.Count; {
		if err := ctx.Err(); err != nil {
			return err
		}

		nRx, err := e.port.Read(rx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if errors.Is(err, io.EOF) {
				if opts.Count == 0 {
					e.log.Debug("Port reached end of data")
					return nil
				}
				return NewError(ErrTransfer, "receive on", e.portName, io.ErrUnexpectedEOF)
			}
			return NewError(ErrTransfer, "receive on", e.portName, err)
		}
		if nRx == 0 {
			continue
		}
		e.stats.Received++

		if _, err := e.console.Write(rx); err != nil {
			return NewError(ErrTransfer, "write to console from", e.portName, err)
		}

		// Unbuffered, so every byte reaches the OS before the next read.
		if dump != nil {
			if _, err := dump.Write(rx); err != nil {
				return NewError(ErrTransfer, "append to dump file", opts.DumpPath, err)
			}
			e.stats.Dumped++
		}

		if !opts.NoEcho {
			if err := e.write(rx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return NewError(ErrTransfer, "echo on", e.portName, err)
			}
			e.stats.Echoed++
		}
		n++
	}
	return nil
}

// SendAscii writes the single byte value count times. 0 means no limit.
func (e *Engine) SendAscii(ctx context.Context, value byte, count int) error {
	e.log.WithField("value", value).Debug("Sending ascii value")
	return e.sendRepeated(ctx, []byte{value}, count)
}

// SendText writes text count times with nothing between repetitions.
// 0 means no limit.
func (e *Engine) SendText(ctx context.Context, text string, count int) error {
	if text == "" {
		e.log.Warn("Text payload is empty, nothing will be sent")
	}
	return e.sendRepeated(ctx, []byte(text), count)
}

func (e *Engine) sendRepeated(ctx context.Context, payload []byte, count int) error {
	if len(payload) == 0 {
		return nil
	}
	for i := 0; count == 0 || i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.write(payload); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return NewError(ErrTransfer, "send on", e.portName, err)
		}
		e.stats.Sent += uint64(len(payload))
	}
	return nil
}

// SendFile streams the file at path to the port count times. The file is
// reopened for every pass. 0 means no limit.
func (e *Engine) SendFile(ctx context.Context, path string, count int) error {
	for pass := 1; count == 0 || pass <= count; pass++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.log.WithFields(logrus.Fields{"file": path, "pass": pass}).Debug("Sending file")
		sent, err := e.sendFileOnce(ctx, path)
		if err != nil {
			return err
		}
		if sent == 0 && count == 0 {
			// Nothing to repeat forever.
			e.log.WithField("file", path).Warn("File is empty, stopping")
			return nil
		}
	}
	return nil
}

func (e *Engine) sendFileOnce(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, NewError(ErrFileTransfer, "open", path, err)
	}
	defer f.Close()

	chunk := make([]byte, fileChunkSize)
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		nRead, rErr := f.Read(chunk)
		if nRead > 0 {
			if err := e.write(chunk[:nRead]); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return total, ctxErr
				}
				return total, NewError(ErrTransfer, "send file on", e.portName, err)
			}
			total += nRead
			e.stats.Sent += uint64(nRead)
		}
		if rErr == io.EOF {
			return total, nil
		}
		if rErr != nil {
			return total, NewError(ErrFileTransfer, "read", path, rErr)
		}
	}
}

func (e *Engine) write(p []byte) error {
	nTx, err := e.port.Write(p)
	if err != nil {
		return err
	}
	if nTx != len(p) {
		e.log.Warnf("TX mismatch. Want to send %v bytes. Sent: %v bytes.", len(p), nTx)
		return io.ErrShortWrite
	}
	return nil
}
