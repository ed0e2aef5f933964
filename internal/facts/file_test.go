package facts

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromFile_Text(t *testing.T) {
	path := writeTemp(t, "facts.txt", "Global EV sales rose 35% in 2025.\n\nshort\nBattery costs fell below $80/kWh last year.\n")
	got, err := FromFile(path, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Global EV sales rose 35% in 2025.",
		"Battery costs fell below $80/kWh last year.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFromFile_TextLimit(t *testing.T) {
	path := writeTemp(t, "facts.txt", "First fact about the market.\nSecond fact about the market.\nThird fact about the market.\n")
	got, err := FromFile(path, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 facts, got %v", got)
	}
}

func TestFromFile_CSV(t *testing.T) {
	path := writeTemp(t, "facts.csv", "Region,Sales\nNA,1200\nEU,950\n")
	got, err := FromFile(path, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"Region: NA, Sales: 1200",
		"Region: EU, Sales: 950",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFromFile_CSVRaggedRow(t *testing.T) {
	path := writeTemp(t, "facts.csv", "Region,Sales\nNA,1200,extra\n")
	got, err := FromFile(path, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Region: NA, Sales: 1200, extra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFromFile_UnsupportedExtension(t *testing.T) {
	if _, err := FromFile("facts.docx", 10); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
