package identity

import (
	"fmt"
	"strings"
	"unicode"

	"carelink/internal/model"
	"carelink/internal/store"
)

const (
	MinPasswordLength = 8
	MinAge            = 18
	MaxAge            = 120
)

// ValidationErrors collects every failed business rule for one submission.
// All rules are evaluated; nothing short-circuits.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// RegisterInput carries the raw registration form values. Contact is the
// raw input; it is cleaned to digits before any check.
type RegisterInput struct {
	Role     string
	Username string
	Password string
	Name     string
	Location string
	Contact  string
	Skills   []string
	Age      int
}

// Service handles registration and login over the user collection.
type Service struct {
	users *store.UserStore
}

func NewService(users *store.UserStore) *Service {
	return &Service{users: users}
}

// Register validates the input and, if every rule passes, appends a new user
// record. The returned ValidationErrors holds all failures at once; a nil
// user with nil ValidationErrors and a non-nil error means persistence
// failed and nothing was written.
func (s *Service) Register(in RegisterInput) (*model.User, ValidationErrors, error) {
	var errs ValidationErrors

	if in.Role != model.RoleCaretaker && in.Role != model.RoleCaregiver {
		return nil, nil, fmt.Errorf("unknown role %q", in.Role)
	}

	taken, err := s.users.UsernameExists(in.Username)
	if err != nil {
		return nil, nil, err
	}
	if in.Username != "" && taken {
		errs = append(errs, "Username already exists.")
	}

	contact := CleanDigits(in.Contact)

	missing := in.Username == "" || in.Password == "" || in.Name == "" || contact == ""
	if in.Role == model.RoleCaregiver {
		if missing || len(in.Skills) == 0 {
			errs = append(errs, "Please fill in all required fields and select at least one skill.")
		}
	} else if missing {
		errs = append(errs, "Please fill in all required fields.")
	}

	if in.Password != "" && !ValidPassword(in.Password) {
		errs = append(errs, "Password must be at least 8 characters long and include at least 1 uppercase letter, 1 lowercase letter, and 1 digit.")
	}

	if len(contact) != 10 {
		errs = append(errs, "Contact number must be exactly 10 digits.")
	}

	if len(errs) > 0 {
		return nil, errs, nil
	}

	user := model.User{
		Username: in.Username,
		Password: in.Password,
		Role:     in.Role,
		Name:     in.Name,
		Location: in.Location,
		Contact:  contact,
	}
	switch in.Role {
	case model.RoleCaregiver:
		user.Skills = in.Skills
	case model.RoleCaretaker:
		user.Skills = []string{}
		user.Age = in.Age
	}

	added, err := s.users.Append(user)
	if err != nil {
		return nil, nil, err
	}
	if !added {
		// Lost the race to a concurrent registration with the same name.
		return nil, ValidationErrors{"Username already exists."}, nil
	}
	return &user, nil, nil
}

// Login returns the first user matching the exact username, password and
// role, or nil when the credentials don't match any record.
func (s *Service) Login(username, password, role string) (*model.User, error) {
	return s.users.FindCredentials(username, password, role)
}

// ValidPassword checks the password policy: minimum length plus at least one
// uppercase letter, one lowercase letter, and one digit.
func ValidPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}

// CleanDigits strips every non-digit character from the input.
func CleanDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatContact renders digits in the progressive "XXX XXX XXXX" display
// form the registration form shows while typing, capped at 10 digits.
func FormatContact(digits string) string {
	if len(digits) > 10 {
		digits = digits[:10]
	}
	switch {
	case len(digits) <= 3:
		return digits
	case len(digits) <= 6:
		return digits[:3] + " " + digits[3:]
	default:
		return digits[:3] + " " + digits[3:6] + " " + digits[6:]
	}
}
