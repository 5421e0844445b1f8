package store

import (
	"carelink/internal/model"
	"carelink/internal/storage"
)

type UserStore struct {
	db *storage.Store
}

func NewUserStore(db *storage.Store) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) List() ([]model.User, error) {
	return storage.Load[model.User](s.db, storage.Users)
}

// Append adds a user unless the username is already taken. The uniqueness
// check runs under the collection lock, so two concurrent registrations in
// this process cannot both claim a name. Returns false if the name was taken.
func (s *UserStore) Append(u model.User) (bool, error) {
	added := false
	err := storage.Update(s.db, storage.Users, func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if existing.Username == u.Username {
				return users, nil
			}
		}
		added = true
		return append(users, u), nil
	})
	return added, err
}

// GetByUsername returns the first user with the given username, or nil.
func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// UsernameExists checks the name against every record regardless of role.
// Matching is case-sensitive and exact.
func (s *UserStore) UsernameExists(username string) (bool, error) {
	u, err := s.GetByUsername(username)
	return u != nil, err
}

// FindCredentials returns the first user matching the exact triple, or nil.
// First match in storage order decides if duplicates exist.
func (s *UserStore) FindCredentials(username, password, role string) (*model.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range users {
		u := &users[i]
		if u.Username == username && u.Password == password && u.Role == role {
			return u, nil
		}
	}
	return nil, nil
}

// Caregivers returns every user with the Caregiver role, in storage order.
func (s *UserStore) Caregivers() ([]model.User, error) {
	users, err := s.List()
	if err != nil {
		return nil, err
	}
	var caregivers []model.User
	for _, u := range users {
		if u.Role == model.RoleCaregiver {
			caregivers = append(caregivers, u)
		}
	}
	return caregivers, nil
}
