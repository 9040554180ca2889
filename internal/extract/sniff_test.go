package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/praveena-03/docinsight/internal/document"
)

func TestIsEncrypted(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain.pdf")
	os.WriteFile(plain, []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\n"), 0o644)
	if isEncrypted(plain) {
		t.Fatalf("plain file flagged as encrypted")
	}

	locked := filepath.Join(dir, "locked.pdf")
	os.WriteFile(locked, []byte("%PDF-1.4\ntrailer\n<< /Encrypt 5 0 R >>\n"), 0o644)
	if !isEncrypted(locked) {
		t.Fatalf("encrypted file not detected")
	}

	if isEncrypted(filepath.Join(dir, "missing.pdf")) {
		t.Fatalf("missing file should not be flagged")
	}
}

func TestSniffPageCount(t *testing.T) {
	data := []byte("<< /Type /Pages /Count 2 >>\n<< /Type /Page >>\n<< /Type /Page >>\n")
	if got := sniffPageCount(data); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
	if got := sniffPageCount([]byte("no markers at all")); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
}

func TestLooksLikePDF(t *testing.T) {
	if !looksLikePDF([]byte("%PDF-1.7\n")) {
		t.Fatalf("valid header rejected")
	}
	if looksLikePDF([]byte("PK\x03\x04")) {
		t.Fatalf("zip header accepted")
	}
}

func TestBasicBackendPlaceholder(t *testing.T) {
	path := writeTestPDF(t, "%PDF-1.4\n<< /Type /Page >>\n<< /Type /Page >>\n<< /Type /Pages >>\n")

	b := &BasicBackend{}
	res, err := b.Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != document.MethodBasic {
		t.Fatalf("expected method=basic, got %q", res.Method)
	}
	if res.Metadata.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d", res.Metadata.Pages)
	}
	if len(res.Structure.Sections) != 1 || res.Structure.Sections[0].Title != "Document Content" {
		t.Fatalf("unexpected sections: %+v", res.Structure.Sections)
	}
	if res.Content.TextContent[0].Text != "PDF content could not be extracted" {
		t.Fatalf("unexpected placeholder text: %q", res.Content.TextContent[0].Text)
	}
	if res.Warning != "Limited content extraction" {
		t.Fatalf("unexpected warning: %q", res.Warning)
	}
}
