package services

import (
	"math"
	"time"

	"clienthub/internal/models"
	"clienthub/internal/store"
)

// DashboardMetrics holds the headline business numbers
type DashboardMetrics struct {
	TotalClients       int     `json:"total_clients"`
	ActiveClients      int     `json:"active_clients"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
	PendingCollections float64 `json:"pending_collections"`
	ARPU               float64 `json:"arpu"`
	RevenueProgress    int     `json:"revenue_progress"` // percentage of the monthly goal, capped at 100
}

// ChartBucket is one day of the expiry timeline
type ChartBucket struct {
	Date     string `json:"date"`
	DaysLeft int    `json:"days_left"`
	Count    int    `json:"count"`
}

// DashboardService computes derived dashboard projections from store state.
// Everything is recomputed per call; nothing is cached.
type DashboardService struct {
	store *store.Store
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(s *store.Store) *DashboardService {
	return &DashboardService{store: s}
}

// Metrics computes the dashboard numbers at the given instant.
// Revenue counts clients that are not overdue or are on auto-pay; pending
// collections is the price of overdue clients without auto-pay.
func (d *DashboardService) Metrics(now time.Time) DashboardMetrics {
	clients := d.store.Clients()
	settings := d.store.Settings()

	m := DashboardMetrics{TotalClients: len(clients)}

	for _, c := range clients {
		if c.Status != models.StatusExpired {
			m.ActiveClients++
		}

		daysLeft := DaysLeft(c.ExpiryDate, now)
		if daysLeft >= 0 || c.AutoPay {
			m.MonthlyRevenue += c.Price
		}
		if daysLeft < 0 && !c.AutoPay {
			m.PendingCollections += c.Price
		}
	}

	if m.ActiveClients > 0 {
		m.ARPU = math.Round(m.MonthlyRevenue / float64(m.ActiveClients))
	}
	if settings.MonthlyGoal > 0 {
		progress := int(math.Round(m.MonthlyRevenue / settings.MonthlyGoal * 100))
		if progress > 100 {
			progress = 100
		}
		m.RevenueProgress = progress
	}

	return m
}

// ExpiryChart buckets clients by calendar expiry day over the next 15 days.
// The first eight days are always emitted; later days only when non-empty.
func (d *DashboardService) ExpiryChart(now time.Time) []ChartBucket {
	clients := d.store.Clients()

	counts := make(map[int]int)
	for _, c := range clients {
		days := CalendarDaysLeft(c.ExpiryDate, now)
		if days >= 0 && days <= MessagingWindowDays {
			counts[days]++
		}
	}

	var buckets []ChartBucket
	for i := 0; i <= MessagingWindowDays; i++ {
		if counts[i] == 0 && i > criticalWindowDays {
			continue
		}
		buckets = append(buckets, ChartBucket{
			Date:     now.AddDate(0, 0, i).Format("Jan 2"),
			DaysLeft: i,
			Count:    counts[i],
		})
	}
	return buckets
}
