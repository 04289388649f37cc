// Package ingest normalizes submitted content into plain text ready for
// claim extraction. Text passes through; URLs are fetched and stripped to
// their visible text.
package ingest

import (
	"context"
	"errors"
	"strings"
)

// ErrNoText is returned when a submission carries no readable text.
var ErrNoText = errors.New("no readable text in submission")

// Ingestor turns one content type into plain text
type Ingestor interface {
	Ingest(ctx context.Context, content string) (string, error)
}

// TextIngestor handles direct text submissions
type TextIngestor struct{}

// Ingest trims the submission and rejects empty content
func (TextIngestor) Ingest(ctx context.Context, content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrNoText
	}
	return trimmed, nil
}
