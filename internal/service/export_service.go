package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
	"github.com/noah-isme/enrollplus-admin/pkg/export"
)

// DatasetProvider renders a table's matching rows for export.
type DatasetProvider interface {
	Table() string
	Dataset(ctx context.Context, params listing.Params) (export.Dataset, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
	Rows        int
}

// ExportService renders the current filtered and sorted list of a table.
type ExportService struct {
	providers map[string]DatasetProvider
	csv       export.Renderer
	pdf       export.Renderer
	clock     clock.Clock
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(providers []DatasetProvider, cfg ExportConfig, c clock.Clock, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = clock.Real()
	}
	byTable := make(map[string]DatasetProvider, len(providers))
	for _, p := range providers {
		if p != nil {
			byTable[p.Table()] = p
		}
	}
	return &ExportService{
		providers: byTable,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		clock:     c,
		logger:    logger,
		cfg:       cfg,
	}
}

// Export renders every row of table matching params, across all pages.
func (s *ExportService) Export(ctx context.Context, table string, params listing.Params, rawFormat string) (*ExportFile, error) {
	if !s.cfg.Enabled {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "exports are disabled")
	}
	provider, ok := s.providers[table]
	if !ok {
		return nil, appErrors.ErrUnknownTable
	}
	format, err := export.ParseFormat(strings.ToLower(strings.TrimSpace(rawFormat)))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnknownFormat.Code, appErrors.ErrUnknownFormat.Status, appErrors.ErrUnknownFormat.Message)
	}

	data, err := provider.Dataset(ctx, params)
	if err != nil {
		return nil, err
	}
	renderer := s.csv
	if format == export.FormatPDF {
		renderer = s.pdf
	}
	body, err := renderer.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s-%s.%s", table, s.clock.Now().Format("20060102-150405"), renderer.Extension())
	s.logger.Info("export rendered",
		zap.String("table", table),
		zap.String("format", string(format)),
		zap.Int("rows", len(data.Rows)))
	return &ExportFile{Filename: filename, ContentType: renderer.ContentType(), Body: body, Rows: len(data.Rows)}, nil
}
