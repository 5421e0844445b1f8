package match

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"carelink/internal/model"
	"carelink/internal/store"
)

// DateLayout is the calendar-date form stored in assignment and payment
// records.
const DateLayout = "2006-01-02"

// AnyLocation disables location filtering.
const AnyLocation = "Any"

// Durations are the assignment period labels offered to caretakers, in
// display order.
var Durations = []string{"15 Days", "1 Month", "3 Months"}

var durationDays = map[string]int{
	"15 Days":  15,
	"1 Month":  30,
	"3 Months": 90,
}

// DurationDays maps a duration label to its day offset. Unknown labels map
// to zero, which makes the ending date equal the joining date.
func DurationDays(label string) int {
	return durationDays[label]
}

// FindCaregivers filters caregivers to those holding every required skill
// whose location matches the filter. An empty required set matches all;
// AnyLocation matches every location. Comparison is exact and
// case-sensitive. Input order is preserved.
func FindCaregivers(caregivers []model.User, requiredSkills []string, location string) []model.User {
	var matched []model.User
	for _, cg := range caregivers {
		if !cg.HasSkills(requiredSkills) {
			continue
		}
		if location != AnyLocation && location != "" && cg.Location != location {
			continue
		}
		matched = append(matched, cg)
	}
	return matched
}

// LocationOptions returns the sorted unique non-empty caregiver locations,
// for the filter dropdown.
func LocationOptions(caregivers []model.User) []string {
	seen := make(map[string]bool)
	var out []string
	for _, cg := range caregivers {
		if cg.Location != "" && !seen[cg.Location] {
			seen[cg.Location] = true
			out = append(out, cg.Location)
		}
	}
	sort.Strings(out)
	return out
}

// SkillOptions returns the sorted unique skills held by any caregiver.
func SkillOptions(caregivers []model.User) []string {
	seen := make(map[string]bool)
	var out []string
	for _, cg := range caregivers {
		for _, s := range cg.Skills {
			if s != "" && !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Service creates assignment records.
type Service struct {
	assignments *store.AssignmentStore
	users       *store.UserStore
}

func NewService(assignments *store.AssignmentStore, users *store.UserStore) *Service {
	return &Service{assignments: assignments, users: users}
}

// Assign appends an assignment of the caregiver to the caretaker starting on
// joiningDate. The ending date is the joining date plus the duration's day
// offset. No overlap or duplicate check applies: assigning the same
// caregiver twice creates two records.
func (s *Service) Assign(caretaker, caregiver, duration string, joiningDate time.Time) (*model.Assignment, error) {
	cg, err := s.users.GetByUsername(caregiver)
	if err != nil {
		return nil, err
	}
	if cg == nil || cg.Role != model.RoleCaregiver {
		return nil, fmt.Errorf("caregiver %q not found", caregiver)
	}

	ending := joiningDate.AddDate(0, 0, DurationDays(duration))
	a := model.Assignment{
		ID:          uuid.NewString(),
		Caretaker:   caretaker,
		Caregiver:   caregiver,
		Contact:     cg.Contact,
		Duration:    duration,
		Status:      "Active",
		JoiningDate: joiningDate.Format(DateLayout),
		EndingDate:  ending.Format(DateLayout),
	}
	if err := s.assignments.Append(a); err != nil {
		return nil, err
	}
	return &a, nil
}
