// Package resume checks a local file before it is uploaded as a resume.
package resume

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	ErrNotPDF   = errors.New("resume must be a PDF file")
	ErrTooLarge = errors.New("resume file is too large")
	ErrEmpty    = errors.New("resume has no pages")
)

// Info describes a file that passed the checks.
type Info struct {
	Path  string
	Name  string
	Size  int64
	Pages int
}

// Inspect validates path as an uploadable resume. maxBytes <= 0 disables the
// size check.
func Inspect(path string, maxBytes int64) (Info, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("open resume: %w", err)
	}
	if stat.IsDir() {
		return Info{}, fmt.Errorf("%s is a directory", path)
	}
	if maxBytes > 0 && stat.Size() > maxBytes {
		return Info{}, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, stat.Size(), maxBytes)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return Info{}, ErrNotPDF
	}

	pages, err := countPages(path)
	if err != nil {
		return Info{}, err
	}
	return Info{Path: path, Name: filepath.Base(path), Size: stat.Size(), Pages: pages}, nil
}

func countPages(path string) (pages int, err error) {
	// the pdf reader panics on some truncated files
	defer func() {
		if r := recover(); r != nil {
			pages, err = 0, fmt.Errorf("%w: unreadable (%v)", ErrNotPDF, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	defer f.Close()

	if n := r.NumPage(); n > 0 {
		return n, nil
	}
	return 0, ErrEmpty
}
