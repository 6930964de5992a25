package services

import (
	"testing"
	"time"

	"nadgodziny/cache"
	"nadgodziny/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRequestStore struct {
	fakeRequestStore
	listCalls int
}

func (c *countingRequestStore) List(filter models.RequestFilter) ([]models.OvertimeRequest, error) {
	c.listCalls++
	return c.fakeRequestStore.List(filter)
}

func TestEmployeeDashboard_ReturnsBalanceAndRequests(t *testing.T) {
	requests := &countingRequestStore{fakeRequestStore: *newFakeRequestStore()}
	requests.listResult = []models.OvertimeRequest{{
		UserID:      1,
		RequestDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		Hours:       -1.6,
		Status:      models.StatusPending,
	}}
	balances := newFakeBalanceStore()
	balances.balances[1] = 12.5
	users := newFakeUserStore()
	views := cache.NewViewCache()

	svc := NewDashboardService(requests, balances, users, views)

	dashboard, err := svc.EmployeeDashboard(1)
	require.NoError(t, err)
	assert.Equal(t, 12.5, dashboard.BalanceHours)
	require.Len(t, dashboard.Requests, 1)
	assert.Equal(t, uint(1), requests.listFilter.UserID)
}

func TestEmployeeDashboard_MissingBalanceReadsAsZero(t *testing.T) {
	requests := &countingRequestStore{fakeRequestStore: *newFakeRequestStore()}
	svc := NewDashboardService(requests, newFakeBalanceStore(), newFakeUserStore(), cache.NewViewCache())

	dashboard, err := svc.EmployeeDashboard(1)
	require.NoError(t, err)
	assert.Zero(t, dashboard.BalanceHours)
}

func TestEmployeeDashboard_CachedUntilInvalidated(t *testing.T) {
	requests := &countingRequestStore{fakeRequestStore: *newFakeRequestStore()}
	balances := newFakeBalanceStore()
	balances.balances[1] = 5
	views := cache.NewViewCache()
	svc := NewDashboardService(requests, balances, newFakeUserStore(), views)

	_, err := svc.EmployeeDashboard(1)
	require.NoError(t, err)
	_, err = svc.EmployeeDashboard(1)
	require.NoError(t, err)
	assert.Equal(t, 1, requests.listCalls)

	views.Invalidate(1)
	_, err = svc.EmployeeDashboard(1)
	require.NoError(t, err)
	assert.Equal(t, 2, requests.listCalls)
}

func TestManagerDashboard_TeamWithBalances(t *testing.T) {
	requests := &countingRequestStore{fakeRequestStore: *newFakeRequestStore()}
	requests.listResult = []models.OvertimeRequest{{UserID: 1, Status: models.StatusPending}}
	balances := newFakeBalanceStore()
	balances.balances[1] = 16
	users := newFakeUserStore()
	users.reports = []models.User{
		{ID: 1, FullName: "Anna Nowak", Role: models.RoleEmployee},
		{ID: 4, FullName: "Jan Kowalski", Role: models.RoleEmployee},
	}

	svc := NewDashboardService(requests, balances, users, cache.NewViewCache())

	dashboard, err := svc.ManagerDashboard(2)
	require.NoError(t, err)

	assert.Equal(t, uint(2), requests.listFilter.ManagerID)
	assert.Equal(t, models.StatusPending, requests.listFilter.Status)
	require.Len(t, dashboard.PendingRequests, 1)

	require.Len(t, dashboard.Team, 2)
	assert.Equal(t, 16.0, dashboard.Team[0].BalanceHours)
	// No balance row reads as zero, same as the employee view.
	assert.Zero(t, dashboard.Team[1].BalanceHours)
}

func TestManagerDashboard_Cached(t *testing.T) {
	requests := &countingRequestStore{fakeRequestStore: *newFakeRequestStore()}
	views := cache.NewViewCache()
	svc := NewDashboardService(requests, newFakeBalanceStore(), newFakeUserStore(), views)

	_, err := svc.ManagerDashboard(2)
	require.NoError(t, err)
	_, err = svc.ManagerDashboard(2)
	require.NoError(t, err)
	assert.Equal(t, 1, requests.listCalls)
}
