package services

import (
	"strings"
	"time"

	"nadgodziny/apperrors"
	"nadgodziny/models"

	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// MaxDailyDrawdown caps the average hours drawn down per business day on a
// single submission.
const MaxDailyDrawdown = -8.0

// RequestStore is the persistence surface the workflow needs for requests.
type RequestStore interface {
	FindByUserAndDates(userID uint, dates []time.Time) ([]models.OvertimeRequest, error)
	CreateBatch(requests []models.OvertimeRequest) error
	Create(request *models.OvertimeRequest) error
	GetByID(id uint) (*models.OvertimeRequest, error)
	UpdateStatus(id uint, status models.RequestStatus) error
	List(filter models.RequestFilter) ([]models.OvertimeRequest, error)
}

// BalanceStore mutates and reads per-user overtime balances.
type BalanceStore interface {
	GetByUserID(userID uint) (*models.OvertimeBalance, error)
	AddHours(userID uint, delta float64) error
	ListByUserIDs(userIDs []uint) ([]models.OvertimeBalance, error)
}

// UserStore reads users for manager resolution and team listings.
type UserStore interface {
	GetByID(id uint) (*models.User, error)
	FindFirstManager() (*models.User, error)
	FindDirectReports(managerID uint) ([]models.User, error)
}

// ViewInvalidator marks cached dashboard views stale after a mutation.
type ViewInvalidator interface {
	Invalidate(userIDs ...uint)
}

type OvertimeService struct {
	requests RequestStore
	balances BalanceStore
	users    UserStore
	views    ViewInvalidator
	log      zerolog.Logger
}

func NewOvertimeService(requests RequestStore, balances BalanceStore, users UserStore, views ViewInvalidator, log zerolog.Logger) *OvertimeService {
	return &OvertimeService{
		requests: requests,
		balances: balances,
		users:    users,
		views:    views,
		log:      log,
	}
}

// SubmitRequest validates the date range, expands it into business days,
// splits the total hours evenly across them and inserts one pending request
// per day. The balance is untouched until resolution.
func (s *OvertimeService) SubmitRequest(actingUser *models.User, dateFrom, dateTo string, hours float64) error {
	if actingUser == nil {
		return apperrors.Authentication("Nie autoryzowano")
	}

	if dateFrom == "" || dateTo == "" {
		return apperrors.Validation("Należy podać datę początkową i końcową.")
	}

	start, err := time.ParseInLocation(dateLayout, dateFrom, time.UTC)
	if err != nil {
		return apperrors.Validation("Należy podać datę początkową i końcową.")
	}
	end, err := time.ParseInLocation(dateLayout, dateTo, time.UTC)
	if err != nil {
		return apperrors.Validation("Należy podać datę początkową i końcową.")
	}

	if end.Before(start) {
		return apperrors.Validation("Data końcowa nie może być wcześniejsza niż data początkowa.")
	}

	dates := expandBusinessDays(start, end)
	if len(dates) == 0 {
		return apperrors.Validation("Wybrany zakres nie obejmuje dni roboczych.")
	}

	hoursPerDay := hours / float64(len(dates))
	if hoursPerDay < MaxDailyDrawdown {
		return apperrors.Validationf(
			"Nie możesz odebrać więcej niż 8 godzin średnio na jeden dzień roboczy. (Wybrano %d dni, wychodzi %.1fh na dzień)",
			len(dates), hoursPerDay)
	}

	existing, err := s.requests.FindByUserAndDates(actingUser.ID, dates)
	if err != nil {
		return apperrors.Persistence("Błąd zapisu wniosku", err)
	}
	if len(existing) > 0 {
		duplicates := make([]string, 0, len(existing))
		for _, req := range existing {
			duplicates = append(duplicates, req.RequestDate.Format(dateLayout))
		}
		return apperrors.Conflictf("Złożyłeś już wniosek na niektóre z tych dni: %s", strings.Join(duplicates, ", "))
	}

	manager, err := s.resolveManager(actingUser)
	if err != nil {
		return err
	}

	inserts := make([]models.OvertimeRequest, 0, len(dates))
	for _, date := range dates {
		inserts = append(inserts, models.OvertimeRequest{
			UserID:             actingUser.ID,
			ManagerID:          manager.ID,
			RequestDate:        date,
			Hours:              hoursPerDay,
			CompensationMode:   models.CompensationStandard,
			IsManagerInitiated: false,
			Status:             models.StatusPending,
		})
	}

	if err := s.requests.CreateBatch(inserts); err != nil {
		s.log.Error().Err(err).Uint("user_id", actingUser.ID).Msg("batch insert of overtime requests failed")
		return apperrors.Persistence("Błąd zapisu wniosku", err)
	}

	s.log.Info().
		Uint("user_id", actingUser.ID).
		Uint("manager_id", manager.ID).
		Int("days", len(dates)).
		Float64("hours_per_day", hoursPerDay).
		Msg("overtime request submitted")

	s.views.Invalidate(actingUser.ID, manager.ID)
	return nil
}

// SubmitForced records manager-assigned overtime. The row is born approved
// and the employee's balance is credited immediately with hours times 1.5.
// Unlike the employee path there is no duplicate-date check.
func (s *OvertimeService) SubmitForced(actingManager *models.User, employeeID uint, date string, hours float64) error {
	if actingManager == nil {
		return apperrors.Authentication("Nie autoryzowano")
	}

	requestDate, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return apperrors.Validation("Należy podać datę nadgodzin.")
	}

	request := models.OvertimeRequest{
		UserID:             employeeID,
		ManagerID:          actingManager.ID,
		RequestDate:        requestDate,
		Hours:              hours,
		CompensationMode:   models.CompensationForced,
		IsManagerInitiated: true,
		Status:             models.StatusApproved,
	}

	if err := s.requests.Create(&request); err != nil {
		s.log.Error().Err(err).Uint("employee_id", employeeID).Msg("forced overtime insert failed")
		return apperrors.Persistence("Błąd zapisu", err)
	}

	// Atomic increment; a missing balance row means the update matches
	// nothing and the credit is dropped.
	if err := s.balances.AddHours(employeeID, hours*models.ForcedMultiplier); err != nil {
		s.log.Error().Err(err).Uint("employee_id", employeeID).Msg("balance credit for forced overtime failed")
		return apperrors.Persistence("Błąd zapisu", err)
	}

	s.log.Info().
		Uint("employee_id", employeeID).
		Uint("manager_id", actingManager.ID).
		Float64("hours", hours).
		Msg("forced overtime assigned")

	s.views.Invalidate(employeeID, actingManager.ID)
	return nil
}

// Resolve transitions a pending request to approved or rejected. Approval
// credits the stored hours to the subject's balance, without reapplying the
// compensation multiplier. Already-resolved requests are refused, so a
// repeated approve cannot double-apply the balance delta.
func (s *OvertimeService) Resolve(requestID uint, approve bool) error {
	request, err := s.requests.GetByID(requestID)
	if err != nil {
		return apperrors.Persistence("Błąd rozpatrywania wniosku", err)
	}
	if request == nil {
		return apperrors.NotFound("Nie znaleziono wniosku")
	}
	if !request.IsPending() {
		return apperrors.Conflict("Wniosek został już rozpatrzony")
	}

	status := models.StatusRejected
	if approve {
		status = models.StatusApproved
	}

	if err := s.requests.UpdateStatus(requestID, status); err != nil {
		s.log.Error().Err(err).Uint("request_id", requestID).Msg("status update failed")
		return apperrors.Persistence("Błąd rozpatrywania wniosku", err)
	}

	if approve {
		if err := s.balances.AddHours(request.UserID, request.Hours); err != nil {
			s.log.Error().Err(err).Uint("request_id", requestID).Msg("balance update on approval failed")
			return apperrors.Persistence("Błąd rozpatrywania wniosku", err)
		}
	}

	s.log.Info().
		Uint("request_id", requestID).
		Bool("approved", approve).
		Msg("overtime request resolved")

	s.views.Invalidate(request.UserID, request.ManagerID)
	return nil
}

// ListRequests returns requests visible to the acting user: HR sees
// everything, managers their team's requests, employees their own.
func (s *OvertimeService) ListRequests(actingUser *models.User, filter models.RequestFilter) ([]models.OvertimeRequest, error) {
	if actingUser == nil {
		return nil, apperrors.Authentication("Nie autoryzowano")
	}

	switch {
	case actingUser.IsHR():
		// no scoping
	case actingUser.IsManager():
		filter.ManagerID = actingUser.ID
		filter.UserID = 0
	default:
		filter.UserID = actingUser.ID
		filter.ManagerID = 0
	}

	requests, err := s.requests.List(filter)
	if err != nil {
		return nil, apperrors.Persistence("Błąd odczytu wniosków", err)
	}
	return requests, nil
}

// resolveManager picks the approver for an employee submission: the user's
// own manager when assigned, otherwise the lowest-id manager in the system.
// Direct-report routing beyond that is deliberately not modeled.
func (s *OvertimeService) resolveManager(actingUser *models.User) (*models.User, error) {
	if actingUser.ManagerID != nil {
		manager, err := s.users.GetByID(*actingUser.ManagerID)
		if err != nil {
			return nil, apperrors.Persistence("Błąd zapisu wniosku", err)
		}
		if manager != nil && manager.IsManager() {
			return manager, nil
		}
	}

	manager, err := s.users.FindFirstManager()
	if err != nil {
		return nil, apperrors.Persistence("Błąd zapisu wniosku", err)
	}
	if manager == nil {
		return nil, apperrors.Configuration("Brak zdefiniowanego przełożonego")
	}
	return manager, nil
}

// expandBusinessDays lists the Monday-to-Friday dates in the inclusive
// range. No holiday calendar is consulted.
func expandBusinessDays(start, end time.Time) []time.Time {
	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			dates = append(dates, d)
		}
	}
	return dates
}
