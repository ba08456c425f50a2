package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/signintech/gopdf"
)

func encodePNG(w io.Writer, img *image.NRGBA) error {
	return png.Encode(w, img)
}

// encodeJPEG flattens transparency onto white; jpeg has no alpha channel.
func encodeJPEG(w io.Writer, img *image.NRGBA, quality int) error {
	b := img.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.White, image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)
	return jpeg.Encode(w, flat, &jpeg.Options{Quality: quality})
}

// encodeSVG wraps the raster as a base64 png payload inside an svg document.
// Vector layers are already flattened by the compositor, so the svg is a
// container, not a retrace.
func encodeSVG(w io.Writer, img *image.NRGBA, opts Options) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	b := img.Bounds()

	if _, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		b.Dx(), b.Dy(), b.Dx(), b.Dy()); err != nil {
		return err
	}
	if opts.IncludeMetadata {
		if _, err := fmt.Fprintf(w, "  <title>%s</title>\n  <metadata>exported %s</metadata>\n",
			xmlEscape(metadataTitle(opts)), metadataDate().Format("2006-01-02")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, `  <image width="%d" height="%d" href="data:image/png;base64,%s"/>`+"\n</svg>\n",
		b.Dx(), b.Dy(), base64.StdEncoding.EncodeToString(buf.Bytes())); err != nil {
		return err
	}
	return nil
}

// encodePDF lays the raster on a single page sized to the image at 300 DPI
// for the print preset and 96 DPI otherwise.
func encodePDF(w io.Writer, img *image.NRGBA, opts Options) error {
	dpi := 96.0
	if opts.Resolution == ResolutionPrint {
		dpi = 300.0
	}
	b := img.Bounds()
	widthPt := float64(b.Dx()) * 72.0 / dpi
	heightPt := float64(b.Dy()) * 72.0 / dpi

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: gopdf.Rect{W: widthPt, H: heightPt}})
	if opts.IncludeMetadata {
		pdf.SetInfo(gopdf.PdfInfo{
			Title:        metadataTitle(opts),
			Creator:      "studio",
			CreationDate: metadataDate(),
		})
	}
	pdf.AddPage()

	holder, err := gopdf.ImageHolderByBytes(buf.Bytes())
	if err != nil {
		return err
	}
	if err := pdf.ImageByHolder(holder, 0, 0, &gopdf.Rect{W: widthPt, H: heightPt}); err != nil {
		return err
	}

	out := pdf.GetBytesPdf()
	_, err = w.Write(out)
	return err
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
