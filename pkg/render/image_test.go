package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/matzehuels/penpath/pkg/hpgl"
)

const square = "SP1;PU1000,1000;PD1000,6000,6000,6000,6000,1000,1000,1000;PU;SP2;PU0,0;PD10300,7650;PU;SP0;"

func TestPDF(t *testing.T) {
	data, err := PDF(hpgl.MustParse(square))
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("PDF() output does not start with a PDF header: %q", data[:min(len(data), 16)])
	}

	if _, err := PDF(nil, WithPDFSheet(hpgl.Bounds{Min: hpgl.Pt(1, 1)})); err == nil {
		t.Error("PDF(empty sheet) should fail")
	}
}

func TestPNG(t *testing.T) {
	data, err := PNG(hpgl.MustParse(square), WithWidth(153), WithPNGStrokeWidth(100))
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}

	b := img.Bounds()
	if b.Dx() != 153 || b.Dy() != 206 {
		t.Errorf("PNG size = %dx%d, want 153x206", b.Dx(), b.Dy())
	}

	// Corner pixel is background, a point on the black square edge is inked.
	if r, g, bl, _ := img.At(0, b.Dy()-1).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Errorf("background pixel = %v, want white", img.At(0, b.Dy()-1))
	}
	// plot (1000, 3500) -> image (3500, 1000) * 0.02 = (70, 20)
	if r, _, _, _ := img.At(70, 20).RGBA(); r > 0x8000 {
		t.Errorf("stroke pixel = %v, want dark", img.At(70, 20))
	}
}

func TestPNGInvalidWidth(t *testing.T) {
	if _, err := PNG(nil, WithWidth(0)); err == nil {
		t.Error("PNG(width 0) should fail")
	}
}
