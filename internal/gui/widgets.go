package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/libretranslator/internal/notify"
)

// MessageBanner shows the transient session message
type MessageBanner struct {
	widget.BaseWidget

	container *fyne.Container
	label     *widget.Label
}

// NewMessageBanner creates an empty banner
func NewMessageBanner() *MessageBanner {
	b := &MessageBanner{}

	b.label = widget.NewLabel("")
	b.label.Alignment = fyne.TextAlignCenter
	b.label.TextStyle = fyne.TextStyle{Bold: true}

	b.container = container.NewStack(b.label)
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *MessageBanner) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.container)
}

// Show displays msg, or clears the banner when ok is false
func (b *MessageBanner) Show(msg notify.Message, ok bool) {
	if !ok {
		b.label.SetText("")
		return
	}
	b.label.Importance = bannerImportance(msg)
	b.label.SetText(msg.Text)
}

func bannerImportance(msg notify.Message) widget.Importance {
	if msg.IsError {
		return widget.DangerImportance
	}
	return widget.SuccessImportance
}
