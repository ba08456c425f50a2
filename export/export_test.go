package export

import (
	"bytes"
	"errors"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/gogpu/studio/raster"
)

func solidCanvas(w, h int, r, g, b, a uint8) *raster.Pixmap {
	p := raster.NewPixmap(w, h)
	p.Fill(r, g, b, a)
	return p
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	if o.Format != FormatPNG {
		t.Errorf("format = %q, want png", o.Format)
	}
	if o.Quality != 95 {
		t.Errorf("quality = %d, want 95", o.Quality)
	}
	if o.Resolution != ResolutionOriginal {
		t.Errorf("resolution = %q, want original", o.Resolution)
	}
	if o.Watermark {
		t.Error("watermark should default off")
	}
}

func TestClampQuality(t *testing.T) {
	for _, tt := range []struct{ in, want int }{
		{5, 10}, {10, 10}, {50, 50}, {100, 100}, {250, 100},
	} {
		if got := clampQuality(tt.in); got != tt.want {
			t.Errorf("clampQuality(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestExportPNGRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	canvas := solidCanvas(8, 6, 200, 10, 10, 255)
	if err := Export(&buf, canvas, DefaultOptions()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("bounds = %v, want 8x6", img.Bounds())
	}
	r, _, _, a := img.At(3, 3).RGBA()
	if r>>8 != 200 || a>>8 != 255 {
		t.Errorf("pixel = r %d a %d, want 200 255", r>>8, a>>8)
	}
}

func TestExportJPEGFlattensOntoWhite(t *testing.T) {
	var buf bytes.Buffer
	canvas := solidCanvas(8, 8, 0, 0, 0, 0) // fully transparent
	opts := DefaultOptions()
	opts.Format = FormatJPG
	if err := Export(&buf, canvas, opts); err != nil {
		t.Fatalf("Export: %v", err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	r, g, b, _ := img.At(4, 4).RGBA()
	if r>>8 < 250 || g>>8 < 250 || b>>8 < 250 {
		t.Errorf("transparent canvas should flatten to white, got %d %d %d", r>>8, g>>8, b>>8)
	}
}

func TestExportWebPUnsupported(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatWebP
	err := Export(&buf, solidCanvas(4, 4, 0, 0, 0, 255), opts)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = Format("tiff")
	if err := Export(&buf, solidCanvas(4, 4, 0, 0, 0, 255), opts); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestExportEmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, nil, DefaultOptions()); err == nil {
		t.Error("nil canvas should error")
	}
}

func TestResizePresets(t *testing.T) {
	canvas := solidCanvas(200, 100, 10, 20, 30, 255)
	tests := []struct {
		res   Resolution
		wantW int
		wantH int
	}{
		{ResolutionOriginal, 200, 100},
		{Resolution1080p, 1920, 960},
		{Resolution4K, 3840, 1920},
		{ResolutionWeb, 1280, 640},
		{ResolutionPrint, 2550, 1275},
	}
	for _, tt := range tests {
		t.Run(string(tt.res), func(t *testing.T) {
			img := resize(canvas, tt.res)
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Errorf("resize(%s) = %dx%d, want %dx%d",
					tt.res, img.Bounds().Dx(), img.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeTallCanvasFitsHeight(t *testing.T) {
	canvas := solidCanvas(100, 400, 0, 0, 0, 255)
	img := resize(canvas, Resolution1080p)
	if img.Bounds().Dy() != 1080 {
		t.Errorf("height = %d, want 1080", img.Bounds().Dy())
	}
	if img.Bounds().Dx() != 270 {
		t.Errorf("width = %d, want 270", img.Bounds().Dx())
	}
}

func TestWatermarkChangesCorner(t *testing.T) {
	var plain, marked bytes.Buffer
	canvas := solidCanvas(200, 200, 0, 0, 0, 255)
	opts := DefaultOptions()
	if err := Export(&plain, canvas, opts); err != nil {
		t.Fatalf("Export: %v", err)
	}
	opts.Watermark = true
	if err := Export(&marked, canvas, opts); err != nil {
		t.Fatalf("Export watermark: %v", err)
	}
	if bytes.Equal(plain.Bytes(), marked.Bytes()) {
		t.Error("watermark should alter the output")
	}

	img, err := png.Decode(&marked)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	// Bottom-right bar lightens the black canvas.
	r, _, _, _ := img.At(190, 193).RGBA()
	if r == 0 {
		t.Error("watermark bar should lighten the corner")
	}
	// Top-left stays untouched.
	r, _, _, _ = img.At(5, 5).RGBA()
	if r != 0 {
		t.Errorf("corner outside the bar changed: r = %d", r>>8)
	}
}

func TestExportSVGStructure(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatSVG
	opts.Title = "poster <draft>"
	if err := Export(&buf, solidCanvas(10, 5, 1, 2, 3, 255), opts); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="10" height="5"`,
		`data:image/png;base64,`,
		`<title>poster &lt;draft&gt;</title>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}

	buf.Reset()
	opts.IncludeMetadata = false
	if err := Export(&buf, solidCanvas(10, 5, 1, 2, 3, 255), opts); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if strings.Contains(buf.String(), "<title>") {
		t.Error("metadata disabled should drop the title")
	}
}

func TestExportPDFSignature(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatPDF
	if err := Export(&buf, solidCanvas(96, 96, 50, 60, 70, 255), opts); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output should start with a pdf signature")
	}
}
