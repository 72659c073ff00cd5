package encoding

import (
	"errors"
	"testing"
)

func TestDecodeBytesUnsupported(t *testing.T) {
	_, err := decodeBytes([]byte("x"), &Encoding{Name: "bogus"})
	if !errors.Is(err, ErrUnsupportedEncoding) {
		t.Fatalf("expected ErrUnsupportedEncoding, got %v", err)
	}
}

func TestResolveMetaDeclaredLabel(t *testing.T) {
	enc := resolveMetaDeclaredLabel([]byte("utf-16"))
	if enc == nil || enc.Name != "UTF-8" {
		t.Fatalf("expected UTF-8, got %#v", enc)
	}

	enc = resolveMetaDeclaredLabel([]byte("utf-32"))
	if enc != nil {
		t.Fatalf("expected nil for unsupported utf-32, got %#v", enc)
	}

	enc = resolveMetaDeclaredLabel([]byte("iso-8859-2"))
	if enc == nil || enc.Name != "iso-8859-2" {
		t.Fatalf("expected iso-8859-2, got %#v", enc)
	}
}

func TestScanMetaCharset(t *testing.T) {
	data := []byte("<!-- comment --><meta charset=\"utf-8\">")
	enc := scanMetaCharset(data)
	if enc == nil || enc.Name != "UTF-8" {
		t.Fatalf("expected UTF-8, got %#v", enc)
	}

	data = []byte("<meta http-equiv=\"content-type\" content=\"text/html; charset=ascii\">")
	enc = scanMetaCharset(data)
	if enc == nil || enc.Name != "windows-1252" {
		t.Fatalf("expected windows-1252, got %#v", enc)
	}
}

func TestASCIIHelpers(t *testing.T) {
	if !isHTMLSpace('\t') {
		t.Fatal("expected tab to be HTML space")
	}
	if isHTMLSpace('A') {
		t.Fatal("expected 'A' to not be HTML space")
	}
	if !isASCIIAlpha('Z') {
		t.Fatal("expected 'Z' to be ASCII alpha")
	}
	if isASCIIAlpha('1') {
		t.Fatal("expected '1' to not be ASCII alpha")
	}
	if toASCIILower('Z') != 'z' {
		t.Fatalf("expected toASCIILower('Z') to be 'z', got %q", toASCIILower('Z'))
	}
	if toASCIILower('!') != '!' {
		t.Fatalf("expected toASCIILower('!') to be '!', got %q", toASCIILower('!'))
	}
}
