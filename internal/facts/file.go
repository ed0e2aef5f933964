package facts

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// Lines shorter than this are treated as layout noise, not facts.
const minFactLen = 12

// FromFile loads fact lines from a local file, dispatching on extension.
func FromFile(path string, limit int) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return fromPDF(path, limit)
	case ".csv":
		return fromCSV(path, limit)
	case ".txt":
		return fromText(path, limit)
	default:
		return nil, fmt.Errorf("unsupported facts file extension: %s", ext)
	}
}

// fromPDF extracts text lines, trying the Go library first and falling
// back to pdftotext if available.
func fromPDF(path string, limit int) ([]string, error) {
	text, err := extractPDFText(path)
	if err != nil {
		text, err = extractPdftotext(path)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	return factLines(strings.NewReader(text), limit)
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

// fromCSV renders each data row as a "header: cell" line.
func fromCSV(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facts file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := records[0]
	var facts []string
	for _, row := range records[1:] {
		if limit > 0 && len(facts) >= limit {
			break
		}
		var parts []string
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if j < len(headers) && strings.TrimSpace(headers[j]) != "" {
				parts = append(parts, strings.TrimSpace(headers[j])+": "+cell)
			} else {
				parts = append(parts, cell)
			}
		}
		if len(parts) > 0 {
			facts = append(facts, strings.Join(parts, ", "))
		}
	}
	return facts, nil
}

func fromText(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facts file: %w", err)
	}
	defer f.Close()
	return factLines(f, limit)
}

// factLines keeps non-trivial lines up to limit.
func factLines(r io.Reader, limit int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var facts []string
	for scanner.Scan() {
		if limit > 0 && len(facts) >= limit {
			break
		}
		line := strings.Join(strings.Fields(scanner.Text()), " ")
		if len(line) < minFactLen {
			continue
		}
		facts = append(facts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return facts, nil
}
