package clientController

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

type fixture struct {
	controller   *ClientController
	measurements repositories.MeasurementRepository
	orders       repositories.OrderRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	db, err := database.New(config.Config{
		DatabaseDbPath: filepath.Join(t.TempDir(), "clients.db"),
	})
	require.NoError(t, err)
	_, err = db.Migrate()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	measurements := repositories.NewMeasurement(db)
	orders := repositories.NewOrder(db)
	return fixture{
		controller: New(
			repositories.NewClient(db),
			orders,
			measurements,
			services.NewCacheInvalidationService(db, time.Minute),
		),
		measurements: measurements,
		orders:       orders,
	}
}

func ptr[T any](v T) *T { return &v }

func TestCreateClient_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		req     CreateClientRequest
		wantErr bool
	}{
		{
			name: "complete",
			req: CreateClientRequest{
				LastName: "Doe", FirstNames: "Jane", Phone: "0600000000",
				Email: ptr("jane@example.com"), Address: "1 rue de Paris",
			},
		},
		{
			name: "no email",
			req:  CreateClientRequest{LastName: "Doe", FirstNames: "John", Phone: "0611111111"},
		},
		{
			name:    "missing phone",
			req:     CreateClientRequest{LastName: "Doe", FirstNames: "Jane"},
			wantErr: true,
		},
		{
			name: "bad email",
			req: CreateClientRequest{
				LastName: "Doe", FirstNames: "Jane", Phone: "06", Email: ptr("not-an-email"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := f.controller.CreateClient(context.Background(), tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				assert.Nil(t, client)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, client.ID)
			assert.Equal(t, tt.req.LastName, client.LastName)
		})
	}
}

func TestGetAllClients_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	var ids []string
	for i, name := range []string{"Martin", "Bernard", "Durand"} {
		f.controller.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		client, err := f.controller.CreateClient(ctx, CreateClientRequest{
			LastName: name, FirstNames: "Claire", Phone: "07000000" + string(rune('0'+i)),
		})
		require.NoError(t, err)
		ids = append(ids, client.ID)
	}

	clients, err := f.controller.GetAllClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 3)
	assert.Equal(t, ids[2], clients[0].ID)
	assert.Equal(t, ids[0], clients[2].ID)

	found, err := f.controller.SearchClients(ctx, "bern")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bernard", found[0].LastName)

	found, err = f.controller.SearchClients(ctx, "070000002")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Durand", found[0].LastName)
}

func TestUpdateClient_KeepsOtherFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.controller.CreateClient(ctx, CreateClientRequest{
		LastName: "Doe", FirstNames: "Jane", Phone: "0600000000", Address: "1 rue de Paris",
	})
	require.NoError(t, err)

	updated, err := f.controller.UpdateClient(ctx, client.ID, ClientPatch{Phone: ptr("0699999999")})
	require.NoError(t, err)
	assert.Equal(t, "0699999999", updated.Phone)
	assert.Equal(t, "Doe", updated.LastName)
	assert.Equal(t, "1 rue de Paris", updated.Address)

	_, err = f.controller.UpdateClient(ctx, "missing", ClientPatch{Phone: ptr("1")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.controller.UpdateClient(ctx, client.ID, ClientPatch{LastName: ptr("")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteClient_LeavesHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	client, err := f.controller.CreateClient(ctx, CreateClientRequest{
		LastName: "Doe", FirstNames: "Jane", Phone: "0600000000",
	})
	require.NoError(t, err)

	measurement := &Measurement{ClientID: client.ID, Date: time.Now().UTC()}
	measurement.Bust = 90
	require.NoError(t, f.measurements.Create(ctx, measurement))

	order := &Order{
		ClientID: client.ID, MeasurementID: measurement.ID, Model: "Robe",
		OrderDate: time.Now().UTC(), ExpectedDelivery: time.Now().UTC(),
		Status: OrderStatusPending, TotalAmount: decimal.NewFromInt(50),
	}
	order.ApplyPaid(decimal.Zero)
	require.NoError(t, f.orders.Create(ctx, order))

	detail, err := f.controller.GetClientDetail(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Measurements, 1)
	assert.Len(t, detail.Orders, 1)

	require.NoError(t, f.controller.DeleteClient(ctx, client.ID))

	gone, err := f.controller.GetClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	_, err = f.controller.GetClientDetail(ctx, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	orders, err := f.orders.GetByClientID(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	history, err := f.measurements.GetByClientID(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
