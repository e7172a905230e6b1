// Package dialog implements the reusable modal state container. It is
// independent of any rendering technology: Content and Actions are opaque
// renderables that a front end interprets.
package dialog

import (
	"reflect"
	"sync"
)

// ScrollMode mirrors the dialog scroll behavior options.
type ScrollMode string

const (
	ScrollPaper ScrollMode = "paper"
	ScrollBody  ScrollMode = "body"
)

// Null clears Content or Actions through a Patch, since a nil field means
// "leave untouched".
var Null = &struct{ null bool }{true}

// State is the full dialog state. The dialog is visually absent whenever
// Open is false, regardless of the other fields.
type State struct {
	Title        string
	Content      interface{}
	Actions      interface{}
	Open         bool
	Scroll       ScrollMode
	OnClose      func()
	ConfirmLabel string
}

// Patch is a partial state update. Nil fields are left alone; a present
// field only takes effect when its value differs from the stored one, so
// no-op patches never bump the version.
type Patch struct {
	Open         *bool
	Title        *string
	Scroll       *ScrollMode
	Content      interface{}
	Actions      interface{}
	OnClose      func()
	ConfirmLabel *string
}

// Options configures a new dialog. The zero value gives a closed dialog with
// paper scrolling and the default confirm label.
type Options struct {
	Title        string
	Content      interface{}
	Actions      interface{}
	Scroll       ScrollMode
	OnClose      func()
	ConfirmLabel string
	OpenDefault  bool
}

// DefaultConfirmLabel labels the confirm button when none is configured.
const DefaultConfirmLabel = "Bien"

// Dialog is a long-lived modal state machine, reused across open/close
// cycles for the lifetime of its owning view.
type Dialog struct {
	mu      sync.Mutex
	state   State
	version uint64
}

// New builds a dialog. It starts closed unless OpenDefault is set.
func New(opts Options) *Dialog {
	if opts.Scroll == "" {
		opts.Scroll = ScrollPaper
	}
	if opts.ConfirmLabel == "" {
		opts.ConfirmLabel = DefaultConfirmLabel
	}
	if opts.OnClose == nil {
		opts.OnClose = func() {}
	}
	return &Dialog{state: State{
		Title:        opts.Title,
		Content:      opts.Content,
		Actions:      opts.Actions,
		Open:         opts.OpenDefault,
		Scroll:       opts.Scroll,
		OnClose:      opts.OnClose,
		ConfirmLabel: opts.ConfirmLabel,
	}}
}

// State returns a snapshot of the current state.
func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Version counts effective state changes. A Patch that changes nothing
// leaves it alone, which is the re-render-avoidance contract.
func (d *Dialog) Version() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.version
}

// Set applies a partial update, key by key, skipping values equal to what is
// already stored.
func (d *Dialog) Set(p Patch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	changed := false

	if p.Open != nil && *p.Open != d.state.Open {
		d.state.Open = *p.Open
		changed = true
	}
	if p.Title != nil && *p.Title != d.state.Title {
		d.state.Title = *p.Title
		changed = true
	}
	if p.Scroll != nil && *p.Scroll != d.state.Scroll {
		d.state.Scroll = *p.Scroll
		changed = true
	}
	if p.ConfirmLabel != nil && *p.ConfirmLabel != d.state.ConfirmLabel {
		d.state.ConfirmLabel = *p.ConfirmLabel
		changed = true
	}
	if p.Content != nil {
		content := p.Content
		if content == Null {
			content = nil
		}
		if !reflect.DeepEqual(content, d.state.Content) {
			d.state.Content = content
			changed = true
		}
	}
	if p.Actions != nil {
		actions := p.Actions
		if actions == Null {
			actions = nil
		}
		if !reflect.DeepEqual(actions, d.state.Actions) {
			d.state.Actions = actions
			changed = true
		}
	}
	if p.OnClose != nil {
		// Functions are not comparable; replacing the callback always counts.
		d.state.OnClose = p.OnClose
		changed = true
	}

	if changed {
		d.version++
	}
}

// HandleClose marks the dialog closed and then fires the stored close
// callback, in that order, so a callback that re-opens the dialog or
// navigates away behaves predictably. The callback fires once per close
// transition: closing an already-closed dialog does nothing.
func (d *Dialog) HandleClose() {
	d.mu.Lock()
	wasOpen := d.state.Open
	d.state.Open = false
	if wasOpen {
		d.version++
	}
	onClose := d.state.OnClose
	d.mu.Unlock()

	if wasOpen && onClose != nil {
		onClose()
	}
}

// SetOpen patches just the open flag.
func (d *Dialog) SetOpen(open bool) { d.Set(Patch{Open: &open}) }

// SetTitle patches just the title.
func (d *Dialog) SetTitle(title string) { d.Set(Patch{Title: &title}) }

// SetContent patches just the content.
func (d *Dialog) SetContent(content interface{}) { d.Set(Patch{Content: content}) }

// SetActions patches just the action list.
func (d *Dialog) SetActions(actions interface{}) { d.Set(Patch{Actions: actions}) }

// SetOnClose patches just the close callback.
func (d *Dialog) SetOnClose(onClose func()) { d.Set(Patch{OnClose: onClose}) }
