package services

import (
	"testing"

	"clienthub/internal/models"
	"clienthub/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	now := refClock
	settings := testSettings()
	settings.MonthlyGoal = 10000
	s := store.New(settings)
	d := NewDashboardService(s)

	s.AddClient(models.Client{
		Name: "Current", Phone: "+100", Website: "current.com",
		Price: 2500, ExpiryDate: now.AddDate(0, 0, 5), Status: models.StatusCritical,
	})
	s.AddClient(models.Client{
		Name: "Overdue", Phone: "+101", Website: "overdue.com",
		Price: 1500, ExpiryDate: now.AddDate(0, 0, -3), Status: models.StatusExpired,
	})
	s.AddClient(models.Client{
		Name: "AutoPay", Phone: "+102", Website: "autopay.com",
		Price: 4000, ExpiryDate: now.AddDate(0, 0, -2), Status: models.StatusActive, AutoPay: true,
	})

	m := d.Metrics(now)

	assert.Equal(t, 3, m.TotalClients)
	assert.Equal(t, 2, m.ActiveClients, "status expired does not count as active")
	assert.Equal(t, 6500.0, m.MonthlyRevenue, "not-overdue plus auto-pay")
	assert.Equal(t, 1500.0, m.PendingCollections, "overdue without auto-pay")
	assert.Equal(t, 3250.0, m.ARPU)
	assert.Equal(t, 65, m.RevenueProgress)
}

func TestMetricsEmptyStore(t *testing.T) {
	s := store.New(testSettings())
	d := NewDashboardService(s)

	m := d.Metrics(refClock)

	assert.Zero(t, m.TotalClients)
	assert.Zero(t, m.ARPU)
	assert.Zero(t, m.RevenueProgress)
}

func TestMetricsProgressCapped(t *testing.T) {
	settings := testSettings()
	settings.MonthlyGoal = 1000
	s := store.New(settings)
	d := NewDashboardService(s)

	s.AddClient(models.Client{
		Name: "Big", Phone: "+100", Website: "big.com",
		Price: 2500, ExpiryDate: refClock.AddDate(0, 0, 30),
	})

	assert.Equal(t, 100, d.Metrics(refClock).RevenueProgress)
}

func TestExpiryChartBuckets(t *testing.T) {
	now := refClock
	s := store.New(testSettings())
	d := NewDashboardService(s)

	s.AddClient(models.Client{
		Name: "Today", Phone: "+100", Website: "today.com",
		Price: 100, ExpiryDate: now,
	})
	s.AddClient(models.Client{
		Name: "ThreeDays", Phone: "+101", Website: "three.com",
		Price: 100, ExpiryDate: now.AddDate(0, 0, 3),
	})
	s.AddClient(models.Client{
		Name: "TwelveDays", Phone: "+102", Website: "twelve.com",
		Price: 100, ExpiryDate: now.AddDate(0, 0, 12),
	})
	s.AddClient(models.Client{
		Name: "Yesterday", Phone: "+103", Website: "yesterday.com",
		Price: 100, ExpiryDate: now.AddDate(0, 0, -1),
	})
	s.AddClient(models.Client{
		Name: "FarOut", Phone: "+104", Website: "farout.com",
		Price: 100, ExpiryDate: now.AddDate(0, 0, 20),
	})

	buckets := d.ExpiryChart(now)

	byDay := make(map[int]ChartBucket)
	for _, b := range buckets {
		byDay[b.DaysLeft] = b
	}

	// the first eight days are always present, later days only when occupied
	for i := 0; i <= 7; i++ {
		_, ok := byDay[i]
		assert.True(t, ok, "day %d missing", i)
	}
	_, ok := byDay[9]
	assert.False(t, ok)

	assert.Equal(t, 1, byDay[0].Count)
	assert.Equal(t, 1, byDay[3].Count)
	assert.Equal(t, 1, byDay[12].Count)
	assert.Equal(t, 0, byDay[5].Count)

	require.Len(t, buckets, 9)
	assert.Equal(t, now.Format("Jan 2"), buckets[0].Date)
	assert.Equal(t, now.AddDate(0, 0, 12).Format("Jan 2"), buckets[8].Date)
}
