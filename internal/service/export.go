package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/fieldops/internal/logging"
)

// ErrUnknownFormat is returned for export formats other than csv and pdf.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Formats lists the formats offered in the export popup.
func Formats() []Format { return []Format{FormatCSV, FormatPDF} }

// ParseFormat accepts "csv" or "pdf" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Receipt acknowledges an export request.
type Receipt struct {
	ID          string
	Format      Format
	Scope       string
	RequestedAt time.Time
}

// ExportService records export requests. No file is written.
type ExportService struct {
	Logger *slog.Logger
	Now    func() time.Time
}

func (s *ExportService) Export(ctx context.Context, format Format, scope string) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	format, err := ParseFormat(string(format))
	if err != nil {
		return Receipt{}, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	r := Receipt{
		ID:          uuid.NewString(),
		Format:      format,
		Scope:       scope,
		RequestedAt: now().UTC(),
	}
	logging.OrDefault(s.Logger).Info("export requested", "receipt", r.ID, "format", string(format), "scope", scope)
	return r, nil
}
