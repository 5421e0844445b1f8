package store

import (
	"testing"

	"carelink/internal/model"
)

func TestAssignmentAppendAllowsDuplicates(t *testing.T) {
	as := NewAssignmentStore(setupDB(t))

	a := model.Assignment{ID: "a1", Caretaker: "ct", Caregiver: "cg", Duration: "1 Month"}
	if err := as.Append(a); err != nil {
		t.Fatalf("append: %v", err)
	}
	a.ID = "a2"
	if err := as.Append(a); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := as.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 assignments, got %d", len(all))
	}
}

func TestAssignmentListByParty(t *testing.T) {
	as := NewAssignmentStore(setupDB(t))
	seed := []model.Assignment{
		{ID: "a1", Caretaker: "ct1", Caregiver: "cg1"},
		{ID: "a2", Caretaker: "ct1", Caregiver: "cg2"},
		{ID: "a3", Caretaker: "ct2", Caregiver: "cg1"},
	}
	for _, a := range seed {
		if err := as.Append(a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byCaretaker, err := as.ListByCaretaker("ct1")
	if err != nil {
		t.Fatalf("list by caretaker: %v", err)
	}
	if len(byCaretaker) != 2 {
		t.Errorf("caretaker assignments = %d, want 2", len(byCaretaker))
	}

	byCaregiver, err := as.ListByCaregiver("cg1")
	if err != nil {
		t.Fatalf("list by caregiver: %v", err)
	}
	if len(byCaregiver) != 2 {
		t.Errorf("caregiver assignments = %d, want 2", len(byCaregiver))
	}
}

func TestFirstByCaregiver(t *testing.T) {
	as := NewAssignmentStore(setupDB(t))
	seed := []model.Assignment{
		{ID: "a1", Caretaker: "", Caregiver: "cg1"}, // malformed record, skipped
		{ID: "a2", Caretaker: "ct1", Caregiver: "cg1"},
		{ID: "a3", Caretaker: "ct2", Caregiver: "cg1"},
	}
	for _, a := range seed {
		if err := as.Append(a); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := as.FirstByCaregiver("cg1")
	if err != nil {
		t.Fatalf("first by caregiver: %v", err)
	}
	if got == nil {
		t.Fatal("expected assignment, got nil")
	}
	if got.Caretaker != "ct1" {
		t.Errorf("Caretaker = %q, want %q", got.Caretaker, "ct1")
	}
}

func TestFirstByCaregiverNone(t *testing.T) {
	as := NewAssignmentStore(setupDB(t))

	got, err := as.FirstByCaregiver("cg1")
	if err != nil {
		t.Fatalf("first by caregiver: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
