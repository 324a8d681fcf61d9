package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/engine"
	"github.com/tartampluch/go-fortune/internal/share"
)

// Modal is an overlay shown above a window's content.
// The dismiss callback fires once each time a visible modal is hidden.
type Modal interface {
	Show()
	Hide()
	OnDismiss(func())
}

// overlay implements Modal on top of a modal pop-up.
type overlay struct {
	popup     *widget.PopUp
	onDismiss func()
	shown     bool
}

func newOverlay(body fyne.CanvasObject, c fyne.Canvas) *overlay {
	return &overlay{popup: widget.NewModalPopUp(body, c)}
}

func (o *overlay) Show() {
	o.popup.Show()
	o.shown = true
}

func (o *overlay) Hide() {
	if !o.shown {
		return
	}
	o.shown = false
	o.popup.Hide()
	if o.onDismiss != nil {
		o.onDismiss()
	}
}

func (o *overlay) OnDismiss(fn func()) { o.onDismiss = fn }

// newLoadingModal shows an infinite progress bar with a message. It has no close button.
func newLoadingModal(c fyne.Canvas, message string) *overlay {
	label := widget.NewLabel(message)
	label.Alignment = fyne.TextAlignCenter
	return newOverlay(container.NewVBox(label, widget.NewProgressBarInfinite()), c)
}

// newMessageModal shows a title, a message and a close button.
func (app *FortuneApp) newMessageModal(c fyne.Canvas, title, message string) *overlay {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	body := widget.NewLabel(message)
	body.Wrapping = fyne.TextWrapWord

	m := &overlay{}
	closeBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClose), theme.CancelIcon(), func() { m.Hide() })
	m.popup = widget.NewModalPopUp(container.NewVBox(heading, body, closeBtn), c)
	return m
}

// shareModal displays a share link with a copy button and its QR code.
type shareModal struct {
	*overlay

	URL     *widget.Entry
	CopyBtn *widget.Button
	QR      *canvas.Image // nil when the QR code could not be rendered
}

// newShareModal builds the share modal for link. The URL entry is read-only.
func (app *FortuneApp) newShareModal(c fyne.Canvas, link engine.ShareLink) *shareModal {
	m := &shareModal{overlay: &overlay{}}

	m.URL = widget.NewEntry()
	m.URL.SetText(link.ShareURL)
	m.URL.Disable()

	m.CopyBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCopy), theme.ContentCopyIcon(), func() {
		app.App.Clipboard().SetContent(link.ShareURL)
		m.CopyBtn.SetText(app.GetMsg(config.TKeyBtnCopied))
	})
	closeBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnClose), theme.CancelIcon(), func() { m.Hide() })

	items := []fyne.CanvasObject{
		widget.NewLabelWithStyle(app.GetMsg(config.TKeyShareTitle), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		m.URL,
	}

	opts := share.DefaultOptions()
	opts.Size = config.QRDisplaySize
	if img, err := share.RenderQR(link.ShareURL, opts); err != nil {
		slog.Warn(config.ErrQREncode,
			config.LogKeyComponent, config.CompUIResult,
			config.LogKeyError, err)
	} else {
		m.QR = canvas.NewImageFromImage(img)
		m.QR.FillMode = canvas.ImageFillOriginal
		m.QR.SetMinSize(fyne.NewSquareSize(config.QRDisplaySize))
		items = append(items, container.NewCenter(m.QR))
	}

	items = append(items, container.NewGridWithColumns(config.LayoutColumnsDouble, m.CopyBtn, closeBtn))

	body := container.NewVBox(items...)
	m.popup = widget.NewModalPopUp(container.New(&minWidth{width: config.ShareModalWidth}, body), c)
	return m
}

// minWidth stretches its single child to at least width.
type minWidth struct {
	width float32
}

func (l *minWidth) MinSize(objects []fyne.CanvasObject) fyne.Size {
	s := fyne.NewSize(l.width, 0)
	for _, o := range objects {
		s = s.Max(o.MinSize())
	}
	return s
}

func (l *minWidth) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, o := range objects {
		o.Resize(size)
		o.Move(fyne.NewPos(0, 0))
	}
}
