package fee

import (
	"errors"
	"testing"
	"time"

	"carelink/internal/model"
	"carelink/internal/storage"
	"carelink/internal/store"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDailyFee(t *testing.T) {
	q, err := Compute([]string{"Bathing", "Feeding"}, day(2024, 1, 1), day(2024, 1, 1))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if q.DailyFee != 180 {
		t.Errorf("DailyFee = %d, want 180", q.DailyFee)
	}
	if q.TotalDays != 1 {
		t.Errorf("TotalDays = %d, want 1 for same-day range", q.TotalDays)
	}
	if q.TotalFee != 180 {
		t.Errorf("TotalFee = %d, want 180", q.TotalFee)
	}
	if q.PerSkill["Bathing"] != 100 || q.PerSkill["Feeding"] != 80 {
		t.Errorf("PerSkill = %v, want Bathing 100 Feeding 80", q.PerSkill)
	}
}

func TestComputeMultiDay(t *testing.T) {
	q, err := Compute([]string{"Bathing", "Feeding"}, day(2024, 1, 1), day(2024, 1, 4))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if q.TotalDays != 3 {
		t.Errorf("TotalDays = %d, want 3", q.TotalDays)
	}
	if q.TotalFee != 540 {
		t.Errorf("TotalFee = %d, want 540", q.TotalFee)
	}
}

func TestComputeEndBeforeStart(t *testing.T) {
	_, err := Compute([]string{"Bathing"}, day(2024, 1, 4), day(2024, 1, 1))
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("error = %v, want ErrEndBeforeStart", err)
	}
}

func TestComputeUnknownSkillIsFree(t *testing.T) {
	q, err := Compute([]string{"Juggling"}, day(2024, 1, 1), day(2024, 1, 2))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if q.DailyFee != 0 {
		t.Errorf("DailyFee = %d, want 0 for unknown skill", q.DailyFee)
	}
}

func TestComputeNoSkills(t *testing.T) {
	q, err := Compute(nil, day(2024, 1, 1), day(2024, 1, 10))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if q.DailyFee != 0 || q.TotalFee != 0 {
		t.Errorf("fees = %d/%d, want 0/0 for no skills", q.DailyFee, q.TotalFee)
	}
	if q.TotalDays != 9 {
		t.Errorf("TotalDays = %d, want 9", q.TotalDays)
	}
}

func setupService(t *testing.T) (*Service, *store.PaymentStore) {
	t.Helper()
	db, err := storage.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	us := store.NewUserStore(db)
	cg := model.User{Username: "cg1", Role: model.RoleCaregiver, Name: "Care Giver"}
	if _, err := us.Append(cg); err != nil {
		t.Fatalf("seed caregiver: %v", err)
	}
	ps := store.NewPaymentStore(db)
	return NewService(ps, us), ps
}

func TestSavePayment(t *testing.T) {
	svc, ps := setupService(t)
	svc.now = func() time.Time { return day(2024, 2, 1) }

	p, err := svc.SavePayment("ct1", "cg1", []string{"Bathing"}, day(2024, 1, 1), day(2024, 1, 16))
	if err != nil {
		t.Fatalf("save payment: %v", err)
	}
	if p.CaregiverName != "Care Giver" {
		t.Errorf("CaregiverName = %q, want display name snapshot", p.CaregiverName)
	}
	if p.TotalDays != 15 || p.DailyFee != 100 || p.TotalFee != 1500 {
		t.Errorf("fees = %d days %d/day %d total, want 15/100/1500", p.TotalDays, p.DailyFee, p.TotalFee)
	}
	if p.StartDate != "2024-01-01" || p.EndDate != "2024-01-16" {
		t.Errorf("dates = %q..%q, want 2024-01-01..2024-01-16", p.StartDate, p.EndDate)
	}

	all, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 persisted payment, got %d", len(all))
	}
}

func TestSavePaymentUnknownCaregiverName(t *testing.T) {
	svc, _ := setupService(t)

	p, err := svc.SavePayment("ct1", "ghost", []string{"Bathing"}, day(2024, 1, 1), day(2024, 1, 2))
	if err != nil {
		t.Fatalf("save payment: %v", err)
	}
	if p.CaregiverName != "ghost" {
		t.Errorf("CaregiverName = %q, want username fallback", p.CaregiverName)
	}
}

func TestSavePaymentInvertedRangeWritesNothing(t *testing.T) {
	svc, ps := setupService(t)

	_, err := svc.SavePayment("ct1", "cg1", []string{"Bathing"}, day(2024, 1, 4), day(2024, 1, 1))
	if !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("error = %v, want ErrEndBeforeStart", err)
	}

	all, err := ps.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected nothing written, got %d payments", len(all))
	}
}

func TestHistory(t *testing.T) {
	svc, _ := setupService(t)

	if _, err := svc.SavePayment("ct1", "cg1", []string{"Bathing"}, day(2024, 1, 1), day(2024, 1, 2)); err != nil {
		t.Fatalf("save payment: %v", err)
	}
	if _, err := svc.SavePayment("ct2", "cg1", []string{"Feeding"}, day(2024, 1, 1), day(2024, 1, 2)); err != nil {
		t.Fatalf("save payment: %v", err)
	}

	mine, err := svc.History(model.RoleCaretaker, "ct1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("caretaker history = %d records, want 1", len(mine))
	}

	theirs, err := svc.History(model.RoleCaregiver, "cg1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(theirs) != 2 {
		t.Errorf("caregiver history = %d records, want 2", len(theirs))
	}
}
