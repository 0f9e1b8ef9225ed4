// Package machine implements the frame/stack architecture and the
// fetch-dispatch executor that runs a decoded IPPcode23 program. Its
// overall shape is a single mutable execution state struct driven by a
// fetch/dispatch loop, with Stdin/Stdout/Stderr supplied as plain io
// interfaces.
package machine

import (
	"github.com/dolthub/swiss"

	"github.com/ippcode23/ippvm/lang/ipperr"
	"github.com/ippcode23/ippvm/lang/values"
)

// Frame is a named slot container keyed by variable name. It is backed
// by a swiss-table map: a frame is a small flat string-keyed table with
// no ordering requirement.
type Frame struct {
	slots *swiss.Map[string, values.Value]
}

// NewFrame returns an empty frame.
func NewFrame() *Frame {
	return &Frame{slots: swiss.NewMap[string, values.Value](8)}
}

// Declare creates an uninitialised slot named name. It is an error
// (exit 52) if the slot already exists.
func (f *Frame) Declare(name string) error {
	if _, ok := f.slots.Get(name); ok {
		return ipperr.Semantic("variable %q is already defined in this frame", name)
	}
	f.slots.Put(name, values.Uninit)
	return nil
}

// Has reports whether name is declared in this frame.
func (f *Frame) Has(name string) bool {
	_, ok := f.slots.Get(name)
	return ok
}

// Get returns the current value of slot name, which must already exist
// (exit 54 otherwise).
func (f *Frame) Get(name string) (values.Value, error) {
	v, ok := f.slots.Get(name)
	if !ok {
		return nil, ipperr.UndefinedVar("variable %q does not exist", name)
	}
	return v, nil
}

// Set overwrites the value of slot name, which must already exist (exit
// 54 otherwise).
func (f *Frame) Set(name string, v values.Value) error {
	if !f.Has(name) {
		return ipperr.UndefinedVar("variable %q does not exist", name)
	}
	f.slots.Put(name, v)
	return nil
}

// Frames is the frame store: one permanent global frame, at most one
// temporary frame, and a stack of local frames.
type Frames struct {
	GF      *Frame
	TF      *Frame
	lfStack []*Frame
}

// NewFrames returns a Frames with a fresh, empty global frame and no
// temporary or local frames.
func NewFrames() *Frames {
	return &Frames{GF: NewFrame()}
}

// Resolve returns the frame named by tag ("GF", "TF" or "LF"), or an
// exit-55 error if it does not currently exist.
func (fs *Frames) Resolve(tag string) (*Frame, error) {
	switch tag {
	case "GF":
		return fs.GF, nil
	case "TF":
		if fs.TF == nil {
			return nil, ipperr.UndefinedFrame("temporary frame does not exist")
		}
		return fs.TF, nil
	case "LF":
		if len(fs.lfStack) == 0 {
			return nil, ipperr.UndefinedFrame("no local frame is active")
		}
		return fs.lfStack[len(fs.lfStack)-1], nil
	default:
		return nil, ipperr.UndefinedFrame("unknown frame %q", tag)
	}
}

// CreateFrame replaces any existing temporary frame with a new, empty
// one.
func (fs *Frames) CreateFrame() {
	fs.TF = NewFrame()
}

// PushFrame moves the temporary frame onto the top of the local frame
// stack, clearing TF.
func (fs *Frames) PushFrame() error {
	if fs.TF == nil {
		return ipperr.UndefinedFrame("no temporary frame to push")
	}
	fs.lfStack = append(fs.lfStack, fs.TF)
	fs.TF = nil
	return nil
}

// PopFrame moves the top local frame to TF, replacing any frame already
// there.
func (fs *Frames) PopFrame() error {
	if len(fs.lfStack) == 0 {
		return ipperr.UndefinedFrame("no local frame to pop")
	}
	n := len(fs.lfStack) - 1
	fs.TF = fs.lfStack[n]
	fs.lfStack = fs.lfStack[:n]
	return nil
}
