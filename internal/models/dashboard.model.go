package models

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalClients     int64           `json:"totalClients"`
	OrdersInProgress int64           `json:"ordersInProgress"`
	MonthlyRevenue   decimal.Decimal `json:"monthlyRevenue"`
	UnreadAlerts     int64           `json:"unreadAlerts"`
}
