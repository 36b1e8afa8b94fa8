// Package ingestion turns uploaded résumé files into plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/rs/zerolog"
)

// MaxUploadBytes is the largest accepted résumé upload.
const MaxUploadBytes = 10 << 20

// Accepted résumé file extensions.
const (
	ExtPDF  = ".pdf"
	ExtDOC  = ".doc"
	ExtDOCX = ".docx"
	ExtTXT  = ".txt"
)

// AllowedExtensions lists the accepted extensions in display order.
var AllowedExtensions = []string{ExtPDF, ExtDOC, ExtDOCX, ExtTXT}

// Ext returns the lower-cased extension of fileName.
func Ext(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// CheckUpload rejects files with an unsupported extension or above the size
// limit.
func CheckUpload(fileName string, size int64) error {
	ext := Ext(fileName)
	if !isAllowed(ext) {
		return &UnsupportedFormatError{Ext: ext}
	}
	if size > MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size)
	}
	return nil
}

func isAllowed(ext string) bool {
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Extractor pulls text out of résumé files.
type Extractor struct {
	logger zerolog.Logger
}

// NewExtractor returns an Extractor that logs degraded reads to logger.
func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// ExtractResumeText is Extractor.Extract without logging.
func ExtractResumeText(fileName string, data []byte) (string, error) {
	return NewExtractor(zerolog.Nop()).Extract(fileName, data)
}

// Extract returns the text of a résumé file chosen by its extension. A PDF
// that cannot be read yields empty text rather than an error.
func (e *Extractor) Extract(fileName string, data []byte) (string, error) {
	switch ext := Ext(fileName); ext {
	case ExtTXT:
		return strings.TrimPrefix(strings.ToValidUTF8(string(data), ""), "\ufeff"), nil
	case ExtPDF:
		text, err := pdfText(data)
		if err != nil {
			e.logger.Warn().Err(err).Str("file", fileName).Msg("pdf text extraction failed")
			return "", nil
		}
		return CleanText(text), nil
	case ExtDOCX:
		text, err := docxText(data)
		if err != nil {
			return "", err
		}
		return CleanText(text), nil
	case ExtDOC:
		return printableFallback(data), nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

func pdfText(data []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = &DocumentError{Format: "pdf", Cause: fmt.Errorf("%v", r)}
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentError{Format: "pdf", Cause: err}
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", &DocumentError{Format: "pdf", Cause: err}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", &DocumentError{Format: "pdf", Cause: err}
	}
	return buf.String(), nil
}

var (
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>`)
	tabTag       = regexp.MustCompile(`<w:tab[^>]*/>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &DocumentError{Format: "docx", Cause: err}
	}
	defer doc.Close()
	return documentXMLText(doc.Editable().GetContent()), nil
}

// documentXMLText flattens WordprocessingML body XML to text, one line per
// paragraph.
func documentXMLText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = tabTag.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
