package services

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"campus-portal-backend/internal/models"
)

const DefaultUploadMaxBytes = 10 << 20

// Upload is a file received with a note. Body must stay readable until
// Inspect returns.
type Upload struct {
	Name string
	Size int64
	Body io.ReaderAt
}

// UploadInspector checks an attachment's type and size and reads the
// metadata returned with the note. The content itself is discarded.
type UploadInspector struct {
	maxBytes int64
}

func NewUploadInspector(maxBytes int64) *UploadInspector {
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	return &UploadInspector{maxBytes: maxBytes}
}

func (s *UploadInspector) Inspect(u Upload) (*models.NoteFile, error) {
	name := baseName(u.Name)
	if name == "" {
		return nil, fileError("File name is required")
	}
	if u.Size <= 0 {
		return nil, fileError("File is empty")
	}
	if u.Size > s.maxBytes {
		return nil, fileError(fmt.Sprintf("File must be at most %d MB", s.maxBytes>>20))
	}

	file := &models.NoteFile{Name: name, Size: u.Size}

	switch strings.ToLower(path.Ext(name)) {
	case ".pdf":
		pages, err := s.pdfPages(u)
		if err != nil {
			return nil, fileError("File is not a readable PDF")
		}
		file.Kind = "pdf"
		file.Pages = pages
	case ".docx":
		if !s.isDOCX(u) {
			return nil, fileError("File is not a valid DOCX document")
		}
		file.Kind = "docx"
	case ".txt":
		if !s.isText(u) {
			return nil, fileError("Text file must be UTF-8")
		}
		file.Kind = "txt"
	default:
		return nil, fileError("Only .pdf, .txt and .docx files are allowed")
	}

	return file, nil
}

func (s *UploadInspector) pdfPages(u Upload) (pages int, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(u.Body, u.Size)
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}

func (s *UploadInspector) isDOCX(u Upload) bool {
	r, err := zip.NewReader(u.Body, u.Size)
	if err != nil {
		return false
	}
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			return true
		}
	}
	return false
}

func (s *UploadInspector) isText(u Upload) bool {
	b, err := io.ReadAll(io.NewSectionReader(u.Body, 0, u.Size))
	if err != nil {
		return false
	}
	return utf8.Valid(b)
}

// baseName drops any client-side directory, including Windows separators.
func baseName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func fileError(msg string) error {
	return &ValidationError{Message: msg, Fields: map[string]string{"file": msg}}
}
