package app

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// recoverPanic turns a panic inside step into an error, logs the stack and
// puts the message on the panel if the bus still works.
func (s *system) recoverPanic(err *error) {
	v := recover()
	if v == nil {
		return
	}
	*err = fmt.Errorf("panic: %v", v)

	s.log.WriteLineString(fmt.Sprintf("app: panic: %v", v))
	for _, line := range strings.Split(string(debug.Stack()), "\n") {
		if line == "" {
			continue
		}
		s.log.WriteLineString(line)
	}

	s.dev.Fill(false)
	s.dev.SetInvertText(true)
	fmt.Fprintf(s.dev, "PANIC\n")
	s.dev.SetInvertText(false)
	fmt.Fprintf(s.dev, "%v", v)
	_ = s.dev.Display()
}
