package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF writes a minimal PDF with the given number of blank pages and a
// correct cross-reference table.
func buildPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	kids := ""
	for i := 0; i < pages; i++ {
		kids += fmt.Sprintf("%d 0 R ", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, pages))
	for i := 0; i < pages; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>")
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

func buildDOCX(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document><w:body><w:p><w:r><w:t>Notes</w:t></w:r></w:p></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func upload(name string, data []byte) Upload {
	return Upload{Name: name, Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func TestUploadInspector_AcceptsAllowedKinds(t *testing.T) {
	inspector := NewUploadInspector(0)

	file, err := inspector.Inspect(upload("lab-manual.pdf", buildPDF(3)))
	require.NoError(t, err)
	assert.Equal(t, "pdf", file.Kind)
	assert.Equal(t, 3, file.Pages)

	file, err = inspector.Inspect(upload("notes.DOCX", buildDOCX(t)))
	require.NoError(t, err)
	assert.Equal(t, "docx", file.Kind)

	file, err = inspector.Inspect(upload("summary.txt", []byte("Integration by parts: ∫u dv = uv − ∫v du")))
	require.NoError(t, err)
	assert.Equal(t, "txt", file.Kind)
	assert.Equal(t, "summary.txt", file.Name)
}

func TestUploadInspector_Rejects(t *testing.T) {
	inspector := NewUploadInspector(64)

	tests := []struct {
		name   string
		upload Upload
	}{
		{"wrong extension", upload("virus.exe", []byte("MZ"))},
		{"no extension", upload("README", []byte("hello"))},
		{"too large", upload("big.txt", bytes.Repeat([]byte("a"), 65))},
		{"empty", upload("empty.txt", nil)},
		{"fake pdf", upload("fake.pdf", []byte("this is not a pdf at all"))},
		{"fake docx", upload("fake.docx", []byte("not a zip"))},
		{"binary txt", upload("bin.txt", []byte{0xff, 0xfe, 0xfd})},
		{"no name", upload("", []byte("x"))},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inspector.Inspect(tc.upload)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "file")
		})
	}
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "notes.pdf", baseName("notes.pdf"))
	assert.Equal(t, "notes.pdf", baseName("../../etc/notes.pdf"))
	assert.Equal(t, "notes.pdf", baseName(`C:\Users\rahul\notes.pdf`))
	assert.Equal(t, "", baseName("  "))
	assert.Equal(t, "", baseName("/"))
}
