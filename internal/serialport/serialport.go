package serialport

import (
	"errors"
	"fmt"
	"strings"

	"go.bug.st/serial"
)

var (
	ErrPortUnavailable = errors.New("serialport: port not available")
	ErrInvalidSettings = errors.New("serialport: invalid settings")
)

// Settings mirrors the controller line configuration.
type Settings struct {
	Port     string
	Baud     int
	DataBits int
	Parity   string
	StopBits int
}

// Mode converts s to the driver mode.
func Mode(s Settings) (*serial.Mode, error) {
	m := &serial.Mode{BaudRate: s.Baud, DataBits: s.DataBits}
	switch strings.ToLower(strings.TrimSpace(s.Parity)) {
	case "", "none":
		m.Parity = serial.NoParity
	case "odd":
		m.Parity = serial.OddParity
	case "even":
		m.Parity = serial.EvenParity
	default:
		return nil, fmt.Errorf("%w: parity %q", ErrInvalidSettings, s.Parity)
	}
	switch s.StopBits {
	case 1:
		m.StopBits = serial.OneStopBit
	case 2:
		m.StopBits = serial.TwoStopBits
	default:
		return nil, fmt.Errorf("%w: stop bits %d", ErrInvalidSettings, s.StopBits)
	}
	return m, nil
}

// Available reports whether name is among the ports the OS lists,
// compared case-insensitively.
func Available(name string, list func() ([]string, error)) (bool, error) {
	if list == nil {
		list = serial.GetPortsList
	}
	ports, err := list()
	if err != nil {
		return false, err
	}
	for _, p := range ports {
		if strings.EqualFold(p, name) {
			return true, nil
		}
	}
	return false, nil
}

// Open checks the port exists and opens it with blocking reads.
func Open(s Settings) (serial.Port, error) {
	mode, err := Mode(s)
	if err != nil {
		return nil, err
	}
	ok, err := Available(s.Port, nil)
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPortUnavailable, s.Port)
	}
	port, err := serial.Open(s.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Port, err)
	}
	return port, nil
}
