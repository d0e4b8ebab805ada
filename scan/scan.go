// Package scan defines the boundary to the serial-number scan
// capability. Recognition itself (camera OCR on mobile) is an external
// collaborator; this package only carries its contract and a plain
// line-based source used by the CLI.
package scan

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// Scanner yields one recognized serial-number string.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// LineScanner reads the next non-empty line from an input stream,
// typically stdin.
type LineScanner struct {
	r *bufio.Reader
}

func NewLineScanner(r io.Reader) *LineScanner {
	return &LineScanner{r: bufio.NewReader(r)}
}

func (s *LineScanner) Scan(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := s.r.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed, nil
		}
		if err != nil {
			return "", err
		}
	}
}
