package console

import (
	"io"
	"time"
)

// Runtime settings the console may change
type Controls interface {
	RequestJump()
	SetInterval(interval time.Duration) (err error)
	Interval() (interval time.Duration)
}

type Console struct {
	input       io.Reader
	output      io.Writer // help text
	controls    Controls
	interactive bool
	Exit        func(code int) // called on quit, os.Exit unless replaced
}
