package services

import (
	"nadgodziny/apperrors"
	"nadgodziny/models"
)

const (
	viewEmployeeDashboard = "dashboard:employee"
	viewManagerDashboard  = "dashboard:manager"
)

// ViewCache is the read side of the dashboard cache.
type ViewCache interface {
	Get(view string, userID uint) (interface{}, bool)
	Set(view string, userID uint, value interface{})
	Invalidate(userIDs ...uint)
}

// EmployeeDashboard is what an employee sees: their balance and their
// request history, newest first.
type EmployeeDashboard struct {
	BalanceHours float64                  `json:"balance_hours"`
	Requests     []models.OvertimeRequest `json:"requests"`
}

// TeamMember pairs a direct report with their current balance.
type TeamMember struct {
	User         models.User `json:"user"`
	BalanceHours float64     `json:"balance_hours"`
}

// ManagerDashboard lists the manager's pending approvals and their team.
type ManagerDashboard struct {
	PendingRequests []models.OvertimeRequest `json:"pending_requests"`
	Team            []TeamMember             `json:"team"`
}

type DashboardService struct {
	requests RequestStore
	balances BalanceStore
	users    UserStore
	views    ViewCache
}

func NewDashboardService(requests RequestStore, balances BalanceStore, users UserStore, views ViewCache) *DashboardService {
	return &DashboardService{
		requests: requests,
		balances: balances,
		users:    users,
		views:    views,
	}
}

func (s *DashboardService) EmployeeDashboard(userID uint) (*EmployeeDashboard, error) {
	if cached, ok := s.views.Get(viewEmployeeDashboard, userID); ok {
		if dashboard, ok := cached.(*EmployeeDashboard); ok {
			return dashboard, nil
		}
	}

	balance, err := s.balances.GetByUserID(userID)
	if err != nil {
		return nil, apperrors.Persistence("Błąd odczytu salda", err)
	}

	requests, err := s.requests.List(models.RequestFilter{UserID: userID})
	if err != nil {
		return nil, apperrors.Persistence("Błąd odczytu wniosków", err)
	}

	dashboard := &EmployeeDashboard{Requests: requests}
	if balance != nil {
		dashboard.BalanceHours = balance.BalanceHours
	}

	s.views.Set(viewEmployeeDashboard, userID, dashboard)
	return dashboard, nil
}

func (s *DashboardService) ManagerDashboard(managerID uint) (*ManagerDashboard, error) {
	if cached, ok := s.views.Get(viewManagerDashboard, managerID); ok {
		if dashboard, ok := cached.(*ManagerDashboard); ok {
			return dashboard, nil
		}
	}

	pending, err := s.requests.List(models.RequestFilter{
		ManagerID: managerID,
		Status:    models.StatusPending,
	})
	if err != nil {
		return nil, apperrors.Persistence("Błąd odczytu wniosków", err)
	}

	reports, err := s.users.FindDirectReports(managerID)
	if err != nil {
		return nil, apperrors.Persistence("Błąd odczytu zespołu", err)
	}

	ids := make([]uint, 0, len(reports))
	for _, member := range reports {
		ids = append(ids, member.ID)
	}
	balances, err := s.balances.ListByUserIDs(ids)
	if err != nil {
		return nil, apperrors.Persistence("Błąd odczytu salda", err)
	}
	byUser := make(map[uint]float64, len(balances))
	for _, b := range balances {
		byUser[b.UserID] = b.BalanceHours
	}

	team := make([]TeamMember, 0, len(reports))
	for _, member := range reports {
		team = append(team, TeamMember{User: member, BalanceHours: byUser[member.ID]})
	}

	dashboard := &ManagerDashboard{PendingRequests: pending, Team: team}
	s.views.Set(viewManagerDashboard, managerID, dashboard)
	return dashboard, nil
}
