package executor

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/beka-birhanu/vinom-nav/config"
	"github.com/beka-birhanu/vinom-nav/nav"
	"go.bug.st/serial"
)

// Serial drives a motor controller over a serial line. Each velocity is sent
// as one text line: "twist <linear> <angular>\n".
type Serial struct {
	port   io.WriteCloser
	logger *log.Logger
	sync.Mutex
}

// OpenSerial opens portName at baud with 8N1 framing.
func OpenSerial(portName string, baud int, logger *log.Logger) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}
	return NewSerial(port, logger), nil
}

// NewSerial wraps an already open port.
func NewSerial(port io.WriteCloser, logger *log.Logger) *Serial {
	return &Serial{port: port, logger: logger}
}

// Execute sends the command's twist, waits its duration and sends a zero
// twist. The zero twist is sent even when ctx ends early.
func (s *Serial) Execute(ctx context.Context, cmd nav.MotionCommand) error {
	linear, angular := nav.Twist(cmd)
	if err := s.writeTwist(linear, angular); err != nil {
		return err
	}

	waitErr := hold(ctx, cmd.Duration)
	if err := s.writeTwist(0, 0); err != nil {
		return err
	}
	return waitErr
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) writeTwist(linear, angular float64) error {
	s.Lock()
	defer s.Unlock()
	if _, err := fmt.Fprintf(s.port, "twist %.4f %.4f\n", linear, angular); err != nil {
		s.logger.Printf("%s[ERROR]%s writing to serial port: %s", config.LogErrorColor, config.LogColorReset, err)
		return err
	}
	return nil
}
