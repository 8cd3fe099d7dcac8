package dashboardController

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"coutupro/config"
	"coutupro/internal/database"
	. "coutupro/internal/models"
	"coutupro/internal/repositories"
	"coutupro/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)

	tests := []struct {
		name string
		now  time.Time
		from time.Time
		to   time.Time
	}{
		{
			name: "utc mid month",
			now:  time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC),
			from: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls over the year",
			now:  time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC),
			from: time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local month converted to utc",
			now:  time.Date(2025, time.July, 1, 0, 30, 0, 0, paris),
			from: time.Date(2025, time.June, 30, 22, 0, 0, 0, time.UTC),
			to:   time.Date(2025, time.July, 31, 22, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := MonthBounds(tt.now)
			assert.True(t, tt.from.Equal(from), "from %s", from)
			assert.True(t, tt.to.Equal(to), "to %s", to)
		})
	}
}

func TestGetStats(t *testing.T) {
	db, err := database.New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "dashboard.db"),
	})
	require.NoError(t, err)
	_, err = db.Migrate()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	clients := repositories.NewClient(db)
	orders := repositories.NewOrder(db)
	alerts := repositories.NewAlert(db)

	now := time.Date(2025, time.March, 20, 10, 0, 0, 0, time.UTC)
	controller := New(clients, orders, alerts, services.NewCacheInvalidationService(db, time.Minute))
	controller.now = func() time.Time { return now }

	empty, err := controller.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalClients)
	assert.Zero(t, empty.OrdersInProgress)
	assert.True(t, empty.MonthlyRevenue.IsZero())
	assert.Zero(t, empty.UnreadAlerts)

	for _, name := range []string{"Doe", "Martin", "Bernard"} {
		require.NoError(t, clients.Create(ctx, &Client{LastName: name, FirstNames: "A", Phone: "06", CreatedAt: now}))
	}

	for _, order := range []Order{
		{Status: OrderStatusPending, OrderDate: now, TotalAmount: decimal.NewFromInt(100)},
		{Status: OrderStatusInProgress, OrderDate: now.AddDate(0, 0, -19), TotalAmount: decimal.NewFromInt(50)},
		{Status: OrderStatusDelivered, OrderDate: now.AddDate(0, 0, -5), TotalAmount: decimal.NewFromInt(80)},
		{Status: OrderStatusPending, OrderDate: now.AddDate(0, -1, 0), TotalAmount: decimal.NewFromInt(500)},
		{Status: OrderStatusAlteration, OrderDate: now.AddDate(-1, 0, 0), TotalAmount: decimal.NewFromInt(70)},
	} {
		order.ClientID = "c"
		order.MeasurementID = "m"
		order.Model = "Robe"
		order.ExpectedDelivery = now
		order.ApplyPaid(decimal.Zero)
		require.NoError(t, orders.Create(ctx, &order))
	}

	require.NoError(t, alerts.Create(ctx, &Alert{Type: AlertTypeDelivery, Message: "a", CreatedAt: now}))
	require.NoError(t, alerts.Create(ctx, &Alert{Type: AlertTypePayment, Message: "b", CreatedAt: now, IsRead: true}))

	stats, err := controller.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalClients)
	assert.Equal(t, int64(3), stats.OrdersInProgress)
	assert.Equal(t, "230", stats.MonthlyRevenue.String())
	assert.Equal(t, int64(1), stats.UnreadAlerts)
}
