package model

// Assignment links a caretaker to a caregiver for a fixed period.
// Assignments are append-only; re-assigning the same caregiver adds a
// second record rather than replacing the first.
type Assignment struct {
	ID          string `json:"id"`
	Caretaker   string `json:"caretaker"`
	Caregiver   string `json:"caregiver"`
	Contact     string `json:"contact"`
	Duration    string `json:"duration"`
	Status      string `json:"status"`
	JoiningDate string `json:"joining_date"`
	EndingDate  string `json:"ending_date"`
}
