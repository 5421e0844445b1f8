package model

import "time"

// Payment is a saved fee calculation. CaregiverName is a display-name
// snapshot taken at save time; later renames don't rewrite history.
type Payment struct {
	ID            string    `json:"id"`
	Caretaker     string    `json:"caretaker"`
	Caregiver     string    `json:"caregiver"`
	CaregiverName string    `json:"caregiver_name"`
	Skills        []string  `json:"skills"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	TotalDays     int       `json:"total_days"`
	DailyFee      int       `json:"daily_fee"`
	TotalFee      int       `json:"total_fee"`
	Timestamp     time.Time `json:"timestamp"`
}
