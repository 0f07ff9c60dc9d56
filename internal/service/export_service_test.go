package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/listing"
	appErrors "github.com/noah-isme/enrollplus-admin/pkg/errors"
)

func newExports(f *fixture, enabled bool) *ExportService {
	return NewExportService(
		[]DatasetProvider{f.users, f.courses, f.products, f.transactions},
		ExportConfig{Enabled: enabled}, f.clock, zap.NewNop())
}

func TestExportCSVHonoursFilters(t *testing.T) {
	f := newFixture(t)
	file, err := newExports(f, true).Export(context.Background(), TableUsers, listing.Params{
		Filters: map[string]string{"status": "active"},
		Page:    1,
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "users-20260301-090000.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")
	assert.Equal(t, 17, file.Rows)

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 18)
	assert.Equal(t, "ID,Name,Email,Role,Status,Created", strings.TrimSpace(lines[0]))
	for _, line := range lines[1:] {
		assert.Contains(t, line, ",active,")
	}
}

func TestExportPDF(t *testing.T) {
	f := newFixture(t)
	file, err := newExports(f, true).Export(context.Background(), TableCourses, listing.Params{}, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "courses-20260301-090000.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF"))
	assert.Equal(t, 8, file.Rows)
}

func TestExportErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := newExports(f, false).Export(ctx, TableUsers, listing.Params{}, "csv")
	assert.Equal(t, appErrors.ErrUnavailable.Code, appErrors.FromError(err).Code)

	svc := newExports(f, true)
	_, err = svc.Export(ctx, "grades", listing.Params{}, "csv")
	assert.Equal(t, appErrors.ErrUnknownTable.Code, appErrors.FromError(err).Code)

	_, err = svc.Export(ctx, TableUsers, listing.Params{}, "xlsx")
	assert.Equal(t, appErrors.ErrUnknownFormat.Code, appErrors.FromError(err).Code)

	_, err = svc.Export(ctx, TableProducts, listing.Params{Sort: listing.Sort{Key: "colour"}}, "csv")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
