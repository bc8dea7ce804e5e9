package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/evanesce/buffer"
)

// InputEvent reports the buffer text after a user edit.
type InputEvent struct {
	Text string
}

// KeyEvent is delivered before a key is applied. Insert is true when the key
// would insert text (runes, enter or tab).
type KeyEvent struct {
	Msg    tea.KeyMsg
	Insert bool

	prevented bool
}

func (e *KeyEvent) PreventDefault()        { e.prevented = true }
func (e *KeyEvent) DefaultPrevented() bool { return e.prevented }

// PasteEvent carries the text about to be inserted at the caret.
type PasteEvent struct {
	Text string

	prevented bool
}

func (e *PasteEvent) PreventDefault()        { e.prevented = true }
func (e *PasteEvent) DefaultPrevented() bool { return e.prevented }

// CopyEvent carries the selected text about to be written to the clipboard.
//
// A handler may replace the payload with SetData. PreventDefault without
// SetData writes nothing.
type CopyEvent struct {
	Selection string
	Cut       bool

	prevented bool
	data      string
	hasData   bool
}

func (e *CopyEvent) PreventDefault()        { e.prevented = true }
func (e *CopyEvent) DefaultPrevented() bool { return e.prevented }

// SetData overrides the clipboard payload. It implies PreventDefault.
func (e *CopyEvent) SetData(s string) {
	e.prevented = true
	e.data = s
	e.hasData = true
}

// Data returns the payload override, if one was set.
func (e *CopyEvent) Data() (string, bool) { return e.data, e.hasData }

// ContextMenuEvent reports a context-menu request at Pos.
type ContextMenuEvent struct {
	Pos buffer.Pos

	prevented bool
}

func (e *ContextMenuEvent) PreventDefault()        { e.prevented = true }
func (e *ContextMenuEvent) DefaultPrevented() bool { return e.prevented }
