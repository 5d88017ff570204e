package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/logger"
)

const (
	// BinarySampleSize is the number of bytes to sample for binary detection
	BinarySampleSize = 1000
	// BinaryThreshold is the proportion of non-printable characters that indicates binary data
	BinaryThreshold = 0.3
)

// ErrUnsupportedType is returned for files that are not resumes we can read
var ErrUnsupportedType = errors.New("unsupported file type")

// ExtractText extracts text from PDF, DOCX, DOC, or TXT files
func ExtractText(filePath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".txt":
		content, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read text file: %w", err)
		}
		if IsBinaryData(string(content)) {
			return "", fmt.Errorf("text file %s contains binary data", filepath.Base(filePath))
		}
		return string(content), nil
	case ".pdf", ".docx", ".doc":
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		return res.Body, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

// TextExtractor reads resume text for the scoring and question flows.
// Failures are logged and produce an empty string.
type TextExtractor struct {
	log *zap.Logger
}

// NewTextExtractor creates a new text extractor
func NewTextExtractor(log *zap.Logger) *TextExtractor {
	return &TextExtractor{log: logger.OrNop(log).Named("ingestion")}
}

// Text returns the resume text at path, or "" when it cannot be read
func (e *TextExtractor) Text(path string) string {
	if path == "" {
		return ""
	}
	text, err := ExtractText(path)
	if err != nil {
		e.log.Warn("resume text extraction failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return text
}

// IsBinaryData checks if content appears to be binary (PDF/ZIP markers)
func IsBinaryData(content string) bool {
	if len(content) == 0 {
		return false
	}

	// Check for PDF magic number
	if strings.HasPrefix(content, "%PDF-") {
		return true
	}

	// Check for ZIP magic number (DOCX files)
	if len(content) >= 2 && content[:2] == "PK" {
		return true
	}

	sampleSize := min(BinarySampleSize, len(content))
	nonPrintable := 0
	for i := 0; i < sampleSize; i++ {
		ch := content[i]
		if ch < 32 && ch != '\n' && ch != '\r' && ch != '\t' {
			nonPrintable++
		}
	}

	return float64(nonPrintable)/float64(sampleSize) > BinaryThreshold
}
