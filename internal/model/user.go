package model

const (
	RoleCaretaker = "Caretaker"
	RoleCaregiver = "Caregiver"
)

// User is a registered account. Caregivers carry skills and no age;
// caretakers carry an age and an empty skill list. Usernames are unique
// across both roles.
type User struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Role     string   `json:"role"`
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Contact  string   `json:"contact"`
	Skills   []string `json:"skills"`
	Age      int      `json:"age,omitempty"`
}

// Public returns a copy safe to hand to the UI layer.
func (u User) Public() User {
	u.Password = ""
	return u
}

// HasSkills reports whether every required skill is present.
func (u User) HasSkills(required []string) bool {
	for _, want := range required {
		found := false
		for _, s := range u.Skills {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
