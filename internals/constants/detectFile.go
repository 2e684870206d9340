package constants

import (
	"path/filepath"
	"strings"
)

// Kategori file upload dokumen.
const (
	FileKindPDF   = "pdf"
	FileKindImage = "image"
	FileKindOther = "other"
)

// DetectFileKindFromExt: penentu jalur upload — image di-recompress ke webp,
// pdf/other diupload apa adanya.
func DetectFileKindFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return FileKindPDF
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileKindImage
	default:
		return FileKindOther
	}
}
