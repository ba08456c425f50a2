// Package export encodes a composited canvas to its delivery formats:
// png, jpg, svg, and pdf, with resolution presets, quality control, and an
// optional corner watermark. webp is recognized but not encodable and
// reports ErrUnsupportedFormat.
package export

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/studio/raster"
)

// Format is an export file format.
type Format string

// Export formats.
const (
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
	FormatWebP Format = "webp"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
)

// Resolution is an output sizing preset.
type Resolution string

// Resolution presets.
const (
	ResolutionOriginal Resolution = "original"
	Resolution1080p    Resolution = "1080p" // fits 1920x1080
	Resolution4K       Resolution = "4k"    // fits 3840x2160
	ResolutionPrint    Resolution = "print" // fits US letter at 300 DPI
	ResolutionWeb      Resolution = "web"   // fits 1280px wide
)

// ErrUnsupportedFormat is returned for formats the encoder cannot produce.
var ErrUnsupportedFormat = errors.New("export: unsupported format")

// Options is the export contract.
type Options struct {
	Format          Format
	Quality         int // [10, 100]; clamps
	Resolution      Resolution
	IncludeMetadata bool
	Watermark       bool

	// Title labels the document in formats that carry metadata.
	Title string
}

// DefaultOptions mirrors the export dialog's initial state.
func DefaultOptions() Options {
	return Options{
		Format:          FormatPNG,
		Quality:         95,
		Resolution:      ResolutionOriginal,
		IncludeMetadata: true,
		Watermark:       false,
	}
}

// Export encodes the canvas to w per the options.
func Export(w io.Writer, canvas *raster.Pixmap, opts Options) error {
	if canvas == nil || canvas.Width() < 1 || canvas.Height() < 1 {
		return errors.New("export: empty canvas")
	}
	opts.Quality = clampQuality(opts.Quality)

	img := resize(canvas, opts.Resolution)
	if opts.Watermark {
		stampWatermark(img)
	}

	switch opts.Format {
	case FormatPNG:
		return encodePNG(w, img)
	case FormatJPG:
		return encodeJPEG(w, img, opts.Quality)
	case FormatSVG:
		return encodeSVG(w, img, opts)
	case FormatPDF:
		return encodePDF(w, img, opts)
	case FormatWebP:
		return fmt.Errorf("%w: webp encoding is not available", ErrUnsupportedFormat)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
}

func clampQuality(q int) int {
	if q < 10 {
		return 10
	}
	if q > 100 {
		return 100
	}
	return q
}

// targetBox returns the bounding box a preset fits the canvas into.
func targetBox(r Resolution) (int, int, bool) {
	switch r {
	case Resolution1080p:
		return 1920, 1080, true
	case Resolution4K:
		return 3840, 2160, true
	case ResolutionPrint:
		// US letter at 300 DPI.
		return 2550, 3300, true
	case ResolutionWeb:
		return 1280, 1280, true
	default:
		return 0, 0, false
	}
}

// resize fits the canvas into the preset's box, preserving aspect ratio.
// The original preset (and any unknown preset) returns the canvas as is.
func resize(canvas *raster.Pixmap, r Resolution) *image.NRGBA {
	src := canvas.ToImage()
	boxW, boxH, ok := targetBox(r)
	if !ok {
		return src
	}

	sw := canvas.Width()
	sh := canvas.Height()
	scale := float64(boxW) / float64(sw)
	if s := float64(boxH) / float64(sh); s < scale {
		scale = s
	}
	dw := int(float64(sw)*scale + 0.5)
	dh := int(float64(sh)*scale + 0.5)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	if dw == sw && dh == sh {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// stampWatermark draws a translucent bar in the bottom-right corner.
func stampWatermark(img *image.NRGBA) {
	b := img.Bounds()
	barW := b.Dx() / 5
	barH := b.Dy() / 40
	if barH < 4 {
		barH = 4
	}
	if barW < 16 {
		barW = 16
	}
	x0 := b.Max.X - barW - barH
	y0 := b.Max.Y - 2*barH
	for y := y0; y < y0+barH && y < b.Max.Y; y++ {
		for x := x0; x < x0+barW && x < b.Max.X; x++ {
			if x < b.Min.X || y < b.Min.Y {
				continue
			}
			i := img.PixOffset(x, y)
			// 40% white over the existing pixel.
			for c := 0; c < 3; c++ {
				img.Pix[i+c] = uint8((uint16(img.Pix[i+c])*153 + 255*102) / 255)
			}
			if img.Pix[i+3] < 255 {
				img.Pix[i+3] = 255 - uint8(uint16(255-img.Pix[i+3])*153/255)
			}
		}
	}
}

func metadataTitle(opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	return "Untitled design"
}

func metadataDate() time.Time {
	return time.Now().UTC()
}
