package render

import (
	"bytes"
	"context"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="#2E8B57"/></svg>`

func TestConvert(t *testing.T) {
	if !CanConvert() {
		t.Skip("rsvg-convert not installed")
	}
	ctx := context.Background()

	pdf, err := ToPDF(ctx, []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF output does not start with %%PDF")
	}

	png, err := ToPNG(ctx, []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("ToPNG output is not a PNG")
	}
}

func TestConvertMissingTool(t *testing.T) {
	if CanConvert() {
		t.Skip("rsvg-convert installed")
	}
	if _, err := ToPDF(context.Background(), []byte(tinySVG)); err == nil {
		t.Fatal("expected error without rsvg-convert")
	}
}
