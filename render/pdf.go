package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/carbocation/pfx"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
)

// pdfDotsPerMM places each figure pixel at the figure's nominal dpi, so an
// 8-inch-wide figure is 8 inches wide on the page.
const pdfDotsPerMM = dpi / 25.4

// encode writes a raster figure as png (the default) or as a single-page pdf.
// Nothing is written if encoding fails.
func encode(w io.Writer, img image.Image, format string) error {
	buffer := bytes.NewBuffer([]byte{})

	switch format {
	case "", "png":
		if err := png.Encode(buffer, img); err != nil {
			return pfx.Err(err)
		}
	case "pdf":
		if err := writePDF(buffer, img); err != nil {
			return err
		}
	default:
		return fmt.Errorf("format %q is not supported for this figure. Use png or pdf", format)
	}

	_, err := buffer.WriteTo(w)
	return err
}

// writePDF lays img onto a page of the same physical size.
func writePDF(w io.Writer, img image.Image) error {
	bounds := img.Bounds()

	c := canvas.New(float64(bounds.Dx())/pdfDotsPerMM, float64(bounds.Dy())/pdfDotsPerMM)
	ctx := canvas.NewContext(c)
	ctx.DrawImage(0, 0, img, pdfDotsPerMM)

	if err := pdf.Writer(w, c); err != nil {
		return pfx.Err(err)
	}

	return nil
}
