package measurementController

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"coutupro/config"
	"coutupro/internal/database"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *MeasurementController {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "measurements.db"),
	})
	require.NoError(t, err)
	_, err = db.Migrate()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(repositories.NewMeasurement(db))
}

func TestCreateMeasurement_DefaultsDate(t *testing.T) {
	controller := newController(t)
	now := time.Date(2025, time.April, 2, 14, 30, 0, 0, time.UTC)
	controller.now = func() time.Time { return now }

	req := CreateMeasurementRequest{ClientID: "client-1"}
	req.Bust = 92
	req.Waist = 70

	measurement, err := controller.CreateMeasurement(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, measurement.Date.Equal(now))
	assert.Equal(t, 92.0, measurement.Bust)
	assert.Zero(t, measurement.Hips)
}

func TestCreateMeasurement_Validation(t *testing.T) {
	controller := newController(t)

	tests := []struct {
		name string
		req  func() CreateMeasurementRequest
	}{
		{
			name: "missing client",
			req:  func() CreateMeasurementRequest { return CreateMeasurementRequest{} },
		},
		{
			name: "negative value",
			req: func() CreateMeasurementRequest {
				req := CreateMeasurementRequest{ClientID: "client-1"}
				req.Knee = -1
				return req
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.CreateMeasurement(context.Background(), tt.req())
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestGetLatestMeasurement(t *testing.T) {
	controller := newController(t)
	ctx := context.Background()

	latest, err := controller.GetLatestMeasurement(ctx, "client-1")
	require.NoError(t, err)
	assert.Nil(t, latest)

	older := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 2, 0)
	for _, date := range []time.Time{newer, older} {
		_, err := controller.CreateMeasurement(ctx, CreateMeasurementRequest{ClientID: "client-1", Date: &date})
		require.NoError(t, err)
	}

	latest, err = controller.GetLatestMeasurement(ctx, "client-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.True(t, latest.Date.Equal(newer))

	history, err := controller.GetMeasurementsByClient(ctx, "client-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Date.Equal(newer))
}

func TestUpdateMeasurement(t *testing.T) {
	controller := newController(t)
	ctx := context.Background()

	req := CreateMeasurementRequest{ClientID: "client-1"}
	req.Bust = 90
	req.Hips = 100
	measurement, err := controller.CreateMeasurement(ctx, req)
	require.NoError(t, err)

	bust := 94.5
	comment := "après essayage"
	updated, err := controller.UpdateMeasurement(ctx, measurement.ID, MeasurementPatch{
		Bust:    &bust,
		Comment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, 94.5, updated.Bust)
	assert.Equal(t, 100.0, updated.Hips)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, comment, *updated.Comment)

	got, err := controller.GetMeasurement(ctx, measurement.ID)
	require.NoError(t, err)
	assert.Equal(t, 94.5, got.Bust)

	missing, err := controller.GetMeasurement(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = controller.UpdateMeasurement(ctx, "missing", MeasurementPatch{Bust: &bust})
	assert.ErrorIs(t, err, ErrNotFound)
}
