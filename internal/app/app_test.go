package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/enrollplus-admin/internal/dto"
	"github.com/noah-isme/enrollplus-admin/internal/listing"
	"github.com/noah-isme/enrollplus-admin/internal/models"
	"github.com/noah-isme/enrollplus-admin/internal/service"
	"github.com/noah-isme/enrollplus-admin/pkg/clock"
	"github.com/noah-isme/enrollplus-admin/pkg/config"
)

func TestNewWiresEveryTable(t *testing.T) {
	cfg := config.Defaults()
	cfg.Mutations.SubmitDelay = 0
	a, err := New(cfg, zap.NewNop(), WithClock(clock.NewFake(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, err)

	assert.Len(t, a.Users.Snapshot(), 50)
	assert.Len(t, a.Products.Snapshot(), 50)
	assert.Len(t, a.Courses.Snapshot(), 8)
	assert.Len(t, a.Transactions.Snapshot(), 8)
	assert.NotNil(t, a.Metrics)

	assert.ElementsMatch(t, []models.ConfirmationKind{
		models.ConfirmDeleteUser,
		models.ConfirmDeleteCourse,
		models.ConfirmDeleteProduct,
		models.ConfirmCloseEnrollment,
		models.ConfirmSignOut,
	}, a.Confirmations.Kinds())

	ctx := context.Background()
	session, err := a.Sessions.Init(ctx, dto.CreateSessionRequest{})
	require.NoError(t, err)
	for _, table := range service.Tables {
		view, err := a.Sessions.View(ctx, session.ID, table)
		require.NoError(t, err, table)
		assert.Equal(t, table, view.Table)
	}
}

func TestNewWithoutMetrics(t *testing.T) {
	cfg := config.Defaults()
	cfg.Metrics.Enabled = false
	a, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Metrics)

	_, err = a.Users.List(context.Background(), listing.Params{Page: 1})
	assert.NoError(t, err)
}
