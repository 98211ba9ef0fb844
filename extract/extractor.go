// Copyright 2025 Veldt Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor produces the full text of a source document.
type Extractor interface {
	// Extract reads the document at path and returns its plain text.
	// Failures wrap ErrExtraction.
	Extract(path string) (string, error)
}

// FileExtractor extracts text from local files, dispatching on extension.
// PDF documents are parsed page-less via the pdf library; plain-text
// formats are read as-is.
type FileExtractor struct {
	logger *slog.Logger
}

var _ Extractor = (*FileExtractor)(nil)

// NewFileExtractor creates a file-based extractor.
func NewFileExtractor() *FileExtractor {
	return &FileExtractor{
		logger: slog.Default().With("component", "extractor"),
	}
}

// Extract reads the document at path and returns its plain text.
func (e *FileExtractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return e.extractPDF(path)
	case ".txt", ".md":
		return e.extractPlain(path)
	default:
		return "", fmt.Errorf("%w: unsupported format %q", ErrExtraction, ext)
	}
}

func (e *FileExtractor) extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrExtraction, path, err)
	}
	defer f.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrExtraction, path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrExtraction, path, err)
	}

	e.logger.Debug("extracted pdf text", "path", path, "bytes", buf.Len())
	return buf.String(), nil
}

func (e *FileExtractor) extractPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrExtraction, path, err)
	}
	return string(data), nil
}
