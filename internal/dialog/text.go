package dialog

// Paragraph is the renderable the text dialog wraps its content in.
type Paragraph struct {
	Text string
}

// TextOptions configures a text dialog. A nil Content means no content at
// all, not an empty paragraph.
type TextOptions struct {
	Title        string
	Content      *string
	Actions      interface{}
	OnClose      func()
	ConfirmLabel string
	OpenDefault  bool
}

// TextDialog is the specialization that always wraps its content in a plain
// paragraph renderable.
type TextDialog struct {
	*Dialog
}

// NewText builds a text dialog.
func NewText(opts TextOptions) *TextDialog {
	var content interface{}
	if opts.Content != nil {
		content = Paragraph{Text: *opts.Content}
	}
	return &TextDialog{Dialog: New(Options{
		Title:        opts.Title,
		Content:      content,
		Actions:      opts.Actions,
		OnClose:      opts.OnClose,
		ConfirmLabel: opts.ConfirmLabel,
		OpenDefault:  opts.OpenDefault,
	})}
}

// TextPatch is a partial update routed through the paragraph wrapper. Unlike
// the generic Patch, a nil Open defaults to opening the dialog, since showing
// a message is the common call.
type TextPatch struct {
	Open         *bool
	Title        *string
	Content      *string
	Actions      interface{}
	OnClose      func()
	ConfirmLabel *string
}

// Set applies the patch, wrapping content in a Paragraph.
func (t *TextDialog) Set(p TextPatch) {
	open := true
	if p.Open != nil {
		open = *p.Open
	}
	patch := Patch{
		Open:         &open,
		Title:        p.Title,
		Actions:      p.Actions,
		OnClose:      p.OnClose,
		ConfirmLabel: p.ConfirmLabel,
	}
	if p.Content != nil {
		patch.Content = Paragraph{Text: *p.Content}
	}
	t.Dialog.Set(patch)
}

// SetText patches just the content, through the wrapper.
func (t *TextDialog) SetText(text string) {
	t.Dialog.Set(Patch{Content: Paragraph{Text: text}})
}
