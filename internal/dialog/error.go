package dialog

import (
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/J053Fabi0/evidencia-final-base-de-datos-frontend/pkg/errors"
)

// Clipboard is the copy affordance the error dialog offers.
type Clipboard interface {
	WriteText(text string) error
}

// NopClipboard discards copies; useful where no clipboard exists.
type NopClipboard struct{}

func (NopClipboard) WriteText(string) error { return nil }

// CodeBlock is the renderable the error dialog shows its serialized failure
// in.
type CodeBlock struct {
	Text string
}

const (
	defaultErrorTitle        = "Hubo un error desconocido :("
	defaultErrorConfirmLabel = "Ok"
)

// ErrorDialog displays a serialized representation of an unknown failure and
// offers a copy-to-clipboard affordance.
type ErrorDialog struct {
	*Dialog

	mu        sync.Mutex
	err       error
	errString string
	copied    bool
	clipboard Clipboard
	logger    *zap.Logger
}

// NewError builds an error dialog. A nil clipboard falls back to the no-op
// one.
func NewError(clipboard Clipboard, logger *zap.Logger) *ErrorDialog {
	if clipboard == nil {
		clipboard = NopClipboard{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorDialog{
		Dialog: New(Options{
			Title:        defaultErrorTitle,
			ConfirmLabel: defaultErrorConfirmLabel,
		}),
		clipboard: clipboard,
		logger:    logger,
	}
}

// ShowError stores the failure, resets the copied flag and opens the dialog.
// The failure is logged here so it is never silently swallowed.
func (e *ErrorDialog) ShowError(err error) {
	e.mu.Lock()
	e.err = err
	e.errString = apperrors.Stringify(err)
	e.copied = false
	errString := e.errString
	e.mu.Unlock()

	e.logger.Error("unknown_error", zap.String("detail", errString))

	open := true
	e.Dialog.Set(Patch{Open: &open, Content: CodeBlock{Text: errString}})
}

// SetOpen opens or closes the dialog, resetting the copied flag either way.
func (e *ErrorDialog) SetOpen(open bool) {
	e.mu.Lock()
	e.copied = false
	e.mu.Unlock()
	e.Dialog.SetOpen(open)
}

// Copy writes the serialized failure to the clipboard.
func (e *ErrorDialog) Copy() error {
	e.mu.Lock()
	errString := e.errString
	e.mu.Unlock()

	if err := e.clipboard.WriteText(errString); err != nil {
		return err
	}

	e.mu.Lock()
	e.copied = true
	e.mu.Unlock()
	return nil
}

// Copied reports whether the current failure has been copied since it was
// shown.
func (e *ErrorDialog) Copied() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.copied
}

// ErrorString returns the serialized failure currently held.
func (e *ErrorDialog) ErrorString() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errString
}

// Err returns the failure currently held.
func (e *ErrorDialog) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}
