package fee

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"carelink/internal/match"
	"carelink/internal/model"
	"carelink/internal/store"
)

// ErrEndBeforeStart is the user-facing validation failure for an inverted
// date range. No payment is created when it is returned.
var ErrEndBeforeStart = errors.New("end date cannot be earlier than start date")

// SkillOptions lists every offered skill in the order the registration form
// presents them.
var SkillOptions = []string{
	"Bathing",
	"Feeding",
	"Cleaning",
	"Toilet Cleaning",
	"Hair Cutting",
	"Medication Reminders",
	"Dressing Support",
	"Mobility Assistance",
}

// Rates is the static per-day fee for each skill, in currency-agnostic
// integer units. Not configurable at runtime.
var Rates = map[string]int{
	"Bathing":              100,
	"Feeding":              80,
	"Cleaning":             90,
	"Toilet Cleaning":      110,
	"Hair Cutting":         120,
	"Medication Reminders": 95,
	"Dressing Support":     85,
	"Mobility Assistance":  130,
}

// Quote is the result of a fee computation.
type Quote struct {
	PerSkill  map[string]int `json:"per_skill"`
	DailyFee  int            `json:"daily_fee"`
	TotalDays int            `json:"total_days"`
	TotalFee  int            `json:"total_fee"`
}

// Compute prices the selected skills over [start, end]. A same-day range
// still bills one day. end before start is a validation failure.
func Compute(skills []string, start, end time.Time) (Quote, error) {
	if end.Before(start) {
		return Quote{}, ErrEndBeforeStart
	}

	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}

	perSkill := make(map[string]int, len(skills))
	daily := 0
	for _, s := range skills {
		perSkill[s] = Rates[s]
		daily += Rates[s]
	}

	return Quote{
		PerSkill:  perSkill,
		DailyFee:  daily,
		TotalDays: days,
		TotalFee:  daily * days,
	}, nil
}

// Service persists payment records for computed fees.
type Service struct {
	payments *store.PaymentStore
	users    *store.UserStore
	now      func() time.Time
}

func NewService(payments *store.PaymentStore, users *store.UserStore) *Service {
	return &Service{payments: payments, users: users, now: time.Now}
}

// SavePayment computes the fee and appends a payment record snapshotting the
// caregiver's display name. Returns ErrEndBeforeStart without writing when
// the range is inverted.
func (s *Service) SavePayment(caretaker, caregiver string, skills []string, start, end time.Time) (*model.Payment, error) {
	q, err := Compute(skills, start, end)
	if err != nil {
		return nil, err
	}

	name := caregiver
	if cg, err := s.users.GetByUsername(caregiver); err != nil {
		return nil, err
	} else if cg != nil && cg.Name != "" {
		name = cg.Name
	}

	if skills == nil {
		skills = []string{}
	}
	p := model.Payment{
		ID:            uuid.NewString(),
		Caretaker:     caretaker,
		Caregiver:     caregiver,
		CaregiverName: name,
		Skills:        skills,
		StartDate:     start.Format(match.DateLayout),
		EndDate:       end.Format(match.DateLayout),
		TotalDays:     q.TotalDays,
		DailyFee:      q.DailyFee,
		TotalFee:      q.TotalFee,
		Timestamp:     s.now(),
	}
	if err := s.payments.Append(p); err != nil {
		return nil, err
	}
	return &p, nil
}

// History returns the payments visible to the account, most recent first.
func (s *Service) History(role, username string) ([]model.Payment, error) {
	return s.payments.ListForUser(role, username)
}
