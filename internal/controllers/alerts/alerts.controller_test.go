package alertController

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"coutupro/config"
	"coutupro/internal/database"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	alerts []Alert
}

func (n *recordingNotifier) BroadcastAlert(alert Alert) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
}

func newController(t *testing.T) (*AlertController, *recordingNotifier) {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "alerts.db"),
	})
	require.NoError(t, err)
	_, err = db.Migrate()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	notifier := &recordingNotifier{}
	controller := New(
		repositories.NewAlert(db),
		services.NewCacheInvalidationService(db, time.Minute),
		notifier,
	)
	return controller, notifier
}

func TestCreateAlert(t *testing.T) {
	controller, notifier := newController(t)
	ctx := context.Background()
	orderID := "order-1"

	alert, err := controller.CreateAlert(ctx, CreateAlertRequest{
		Type:    AlertTypeDelivery,
		Message: "Livraison demain",
		OrderID: &orderID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, alert.ID)
	assert.False(t, alert.IsRead)
	assert.False(t, alert.CreatedAt.IsZero())

	require.Len(t, notifier.alerts, 1)
	assert.Equal(t, alert.ID, notifier.alerts[0].ID)

	tests := []struct {
		name    string
		request CreateAlertRequest
	}{
		{name: "unknown type", request: CreateAlertRequest{Type: "Birthday", Message: "x"}},
		{name: "missing message", request: CreateAlertRequest{Type: AlertTypePayment}},
		{name: "missing type", request: CreateAlertRequest{Message: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.CreateAlert(ctx, tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
	assert.Len(t, notifier.alerts, 1)
}

func TestCreateAlertOnce(t *testing.T) {
	controller, notifier := newController(t)
	ctx := context.Background()
	orderID := "order-1"
	request := CreateAlertRequest{Type: AlertTypePayment, Message: "Solde dû", OrderID: &orderID}

	created, err := controller.CreateAlertOnce(ctx, request)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = controller.CreateAlertOnce(ctx, request)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = controller.MarkAllAlertsAsRead(ctx)
	require.NoError(t, err)

	created, err = controller.CreateAlertOnce(ctx, request)
	require.NoError(t, err)
	assert.True(t, created)

	assert.Len(t, notifier.alerts, 2)
}

func TestReadState(t *testing.T) {
	controller, _ := newController(t)
	ctx := context.Background()

	var ids []string
	for _, message := range []string{"un", "deux", "trois"} {
		alert, err := controller.CreateAlert(ctx, CreateAlertRequest{Type: AlertTypeAlteration, Message: message})
		require.NoError(t, err)
		ids = append(ids, alert.ID)
	}

	count, err := controller.GetUnreadAlertCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.NoError(t, controller.MarkAlertAsRead(ctx, ids[0]))
	assert.ErrorIs(t, controller.MarkAlertAsRead(ctx, "missing"), ErrNotFound)

	count, err = controller.GetUnreadAlertCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	updated, err := controller.MarkAllAlertsAsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	alerts, err := controller.GetAllAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	for _, alert := range alerts {
		assert.True(t, alert.IsRead)
	}
}
