package digest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSumKnownValue(t *testing.T) {
	// sha256("hello world")
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := Sum([]byte("hello world")); got != want {
		t.Errorf("Sum = %q, want %q", got, want)
	}
}

func TestSumEmpty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != want {
		t.Errorf("Sum(nil) = %q, want %q", got, want)
	}
}

func TestFileMatchesSum(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.js")
	content := []byte("customElements.define('demo-card', DemoCard)\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := File(path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got != Sum(content) {
		t.Errorf("File = %q, want %q", got, Sum(content))
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "nope.js"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
