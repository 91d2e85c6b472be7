package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/totpvault/internal"
	"codeberg.org/snonux/totpvault/internal/qr"
)

// Item is one QR code to display: a human-readable label and the
// provisioning URI encoded in the code.
type Item struct {
	Label string
	URI   string
}

// Viewer is the QR code display window
type Viewer struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	qrImage    *canvas.Image
	itemLabel  *widget.Label
	countLabel *widget.Label
	prevBtn    *ttwidget.Button
	nextBtn    *ttwidget.Button
	saveBtn    *ttwidget.Button

	// State
	items   []Item
	current int
}

// Show opens a window displaying the QR code for each item, with
// previous/next navigation when there is more than one. It blocks until
// the window is closed.
func Show(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("no QR codes to display")
	}

	v := &Viewer{items: items}
	if err := v.setupUI(); err != nil {
		return err
	}

	v.window.ShowAndRun()
	return nil
}

func (v *Viewer) setupUI() error {
	v.app = app.New()
	v.window = v.app.NewWindow(fmt.Sprintf("totpvault v%s", internal.Version))

	v.qrImage = canvas.NewImageFromResource(nil)
	v.qrImage.FillMode = canvas.ImageFillContain
	v.qrImage.SetMinSize(fyne.NewSize(400, 400))

	v.itemLabel = widget.NewLabel("")
	v.itemLabel.Alignment = fyne.TextAlignCenter

	v.countLabel = widget.NewLabel("")
	v.countLabel.Alignment = fyne.TextAlignCenter

	// Navigation buttons (tooltips are set after the tooltip layer exists)
	v.prevBtn = ttwidget.NewButton("", v.onPrev)
	v.prevBtn.Icon = theme.NavigateBackIcon()

	v.nextBtn = ttwidget.NewButton("", v.onNext)
	v.nextBtn.Icon = theme.NavigateNextIcon()

	v.saveBtn = ttwidget.NewButton("Save PNG", v.onSave)
	v.saveBtn.Icon = theme.DocumentSaveIcon()

	nav := container.NewHBox(v.prevBtn, v.countLabel, v.nextBtn, v.saveBtn)

	content := container.NewBorder(
		nil,
		container.NewVBox(v.itemLabel, container.NewCenter(nav)),
		nil, nil,
		v.qrImage,
	)

	v.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, v.window.Canvas()))

	v.prevBtn.SetToolTip("Previous record")
	v.nextBtn.SetToolTip("Next record")
	v.saveBtn.SetToolTip("Save this QR code to a PNG file")

	v.window.Resize(fyne.NewSize(480, 560))

	return v.showCurrent()
}

// showCurrent renders the QR code for the current item
func (v *Viewer) showCurrent() error {
	item := v.items[v.current]

	png, err := qr.PNG(item.URI, qr.DefaultPNGSize)
	if err != nil {
		return err
	}

	v.qrImage.Resource = fyne.NewStaticResource(fmt.Sprintf("qr-%d.png", v.current), png)
	v.qrImage.Refresh()

	v.itemLabel.SetText(item.Label)
	v.countLabel.SetText(fmt.Sprintf("%d / %d", v.current+1, len(v.items)))

	v.updateNavButtons()
	return nil
}

func (v *Viewer) updateNavButtons() {
	if v.current == 0 {
		v.prevBtn.Disable()
	} else {
		v.prevBtn.Enable()
	}
	if v.current == len(v.items)-1 {
		v.nextBtn.Disable()
	} else {
		v.nextBtn.Enable()
	}
}

func (v *Viewer) onPrev() {
	if v.current > 0 {
		v.current--
		v.refreshCurrent()
	}
}

func (v *Viewer) onNext() {
	if v.current < len(v.items)-1 {
		v.current++
		v.refreshCurrent()
	}
}

func (v *Viewer) refreshCurrent() {
	if err := v.showCurrent(); err != nil {
		dialog.ShowError(err, v.window)
	}
}

func (v *Viewer) onSave() {
	item := v.items[v.current]

	png, err := qr.PNG(item.URI, qr.DefaultPNGSize)
	if err != nil {
		dialog.ShowError(err, v.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if writer == nil {
			// Cancelled
			return
		}
		defer writer.Close()

		if _, err := writer.Write(png); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save QR code: %w", err), v.window)
		}
	}, v.window)
	d.SetFileName("totp-qr.png")
	d.Show()
}
