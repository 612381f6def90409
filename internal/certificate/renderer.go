package certificate

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vytor/bardspeak/internal/logger"
)

// A4 portrait at 150 DPI. One centimetre is about 59 pixels.
const (
	pageWidth  = 1240
	pageHeight = 1754
	cm         = 59
)

// Renderer draws completion certificates as PNG images.
type Renderer struct {
	title   font.Face
	heading font.Face
	body    font.Face
	footer  font.Face
	log     *logger.Logger
}

// NewRenderer builds a certificate renderer. fontPath names a TTF file; when
// empty the renderer falls back to a built-in bitmap face, which keeps
// certificates available on hosts without fonts installed.
func NewRenderer(fontPath string) (*Renderer, error) {
	r := &Renderer{log: logger.Default().WithPrefix("certificate")}

	if fontPath == "" {
		r.title = basicfont.Face7x13
		r.heading = basicfont.Face7x13
		r.body = basicfont.Face7x13
		r.footer = basicfont.Face7x13
		r.log.Warn("no certificate font configured, using built-in bitmap face")
		return r, nil
	}

	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read certificate font: %w", err)
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse certificate font: %w", err)
	}

	r.title = newFace(parsed, 50)
	r.heading = newFace(parsed, 36)
	r.body = newFace(parsed, 26)
	r.footer = newFace(parsed, 20)
	return r, nil
}

func newFace(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Render produces the certificate PNG for one user. The layout follows the
// printed certificate: title block at the top, the student's name and
// department in the middle, issue date and signature line at the bottom.
func (r *Renderer) Render(username, department, date string) ([]byte, error) {
	dc := gg.NewContext(pageWidth, pageHeight)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Double border in the program's purple.
	dc.SetRGB(0.42, 0.27, 0.76)
	dc.SetLineWidth(6)
	dc.DrawRectangle(0.5*cm, 0.5*cm, pageWidth-cm, pageHeight-cm)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(0.75*cm, 0.75*cm, pageWidth-1.5*cm, pageHeight-1.5*cm)
	dc.Stroke()

	cx := float64(pageWidth) / 2

	dc.SetRGB(0.42, 0.27, 0.76)
	dc.SetFontFace(r.title)
	dc.DrawStringAnchored("Certificate of Completion", cx, 3*cm, 0.5, 0.5)

	dc.SetRGB(0.2, 0.2, 0.25)
	dc.SetFontFace(r.body)
	dc.DrawStringAnchored("Shakespeare Club - Communication Skills Program", cx, 4*cm, 0.5, 0.5)

	dc.SetFontFace(r.heading)
	dc.DrawStringAnchored(fmt.Sprintf("This certifies that %s", username), cx, 7*cm, 0.5, 0.5)

	dc.SetFontFace(r.body)
	dc.DrawStringAnchored(fmt.Sprintf("Department: %s", department), cx, 8*cm, 0.5, 0.5)
	dc.DrawStringAnchored("has successfully completed all practice modules:", cx, 10*cm, 0.5, 0.5)
	dc.DrawStringAnchored("Speaking, Listening, Writing, and Observation", cx, 11*cm, 0.5, 0.5)

	dc.DrawStringAnchored(fmt.Sprintf("Date: %s", date), cx, pageHeight-3*cm, 0.5, 0.5)

	dc.SetFontFace(r.footer)
	dc.DrawStringAnchored("Shakespeare Club", pageWidth-2*cm, pageHeight-2*cm, 1, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode certificate png: %w", err)
	}
	return buf.Bytes(), nil
}
