// Package viewer shows a rendered report in a desktop window.
package viewer

import (
	"image"
	"image/png"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"github.com/rs/zerolog/log"
)

const (
	appID          = "com.tclemos.bench-report"
	exportFileName = "benchmark_report.png"
)

// Show opens a window holding img and blocks until it is closed.
func Show(title string, img image.Image, width, height int) error {
	a := app.NewWithID(appID)
	w := a.NewWindow(title)

	chart := canvas.NewImageFromImage(img)
	chart.FillMode = canvas.ImageFillContain
	// keep the grid readable when the window shrinks
	chart.SetMinSize(fyne.NewSize(float32(width)/2, float32(height)/2))

	w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Export PNG…", func() { exportPNG(w, img) }),
		),
	))
	w.SetContent(chart)
	w.Resize(fyne.NewSize(float32(width), float32(height)))
	w.CenterOnScreen()
	w.ShowAndRun()
	return nil
}

func exportPNG(w fyne.Window, img image.Image) {
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			log.Error().Err(err).Str("uri", wc.URI().String()).Msg("Export failed")
			dialog.ShowError(err, w)
			return
		}
		log.Info().Str("uri", wc.URI().String()).Msg("Report exported")
	}, w)
	fs.SetFileName(exportFileName)
	fs.Show()
}
