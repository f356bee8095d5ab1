package cli

import (
	"errors"
	"fmt"
)

// ErrUnknownCommand is returned for a command name not in the command table.
var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports malformed input caught before the store is touched:
// unknown options, missing arguments and non-integer numbers.
type UsageError struct {
	Command string
	Msg     string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s (run `deposito %s -h` for usage)", e.Command, e.Msg, e.Command)
}

func usageErrorf(command, format string, args ...any) error {
	return &UsageError{Command: command, Msg: fmt.Sprintf(format, args...)}
}
