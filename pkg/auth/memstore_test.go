package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/portailgestion/portail-admin/pkg/domain"
)

// In-memory store fakes mirroring the Postgres repositories' semantics,
// including atomic code assignment and reference clearing on delete.

type memUserStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*domain.User
	codeSeqs map[string]int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{
		users:    make(map[uuid.UUID]*domain.User),
		codeSeqs: make(map[string]int),
	}
}

func (s *memUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	key := strings.ToLower(user.FirstName) + "\x00" + strings.ToLower(user.LastName)
	seq := s.codeSeqs[key] + 1
	user.Code = domain.UserCode(user.FirstName, user.LastName, seq)

	for _, u := range s.users {
		if u.Code == user.Code {
			return domain.ErrCodeTaken
		}
	}

	s.codeSeqs[key] = seq
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *memUserStore) List(ctx context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (s *memUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// clearProfileRefs nulls the profile reference on users pointing at id.
func (s *memUserStore) clearProfileRefs(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ProfileID != nil && *u.ProfileID == id {
			u.ProfileID = nil
		}
	}
}

func (s *memUserStore) clearCustomerRefs(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.CustomerID != nil && *u.CustomerID == id {
			u.CustomerID = nil
		}
	}
}

type memProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
	users    *memUserStore
}

func newMemProfileStore(users *memUserStore) *memProfileStore {
	return &memProfileStore{
		profiles: make(map[uuid.UUID]*domain.Profile),
		users:    users,
	}
}

func (s *memProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Code == profile.Code {
			return domain.ErrCodeTaken
		}
	}
	clone := *profile
	s.profiles[profile.ID] = &clone
	return nil
}

func (s *memProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *memProfileStore) GetByCode(ctx context.Context, code string) (*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Code == code {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (s *memProfileStore) List(ctx context.Context) ([]*domain.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		clone := *p
		profiles = append(profiles, &clone)
	}
	return profiles, nil
}

func (s *memProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.profiles[id]; !ok {
		s.mu.Unlock()
		return domain.ErrProfileNotFound
	}
	delete(s.profiles, id)
	s.mu.Unlock()

	if s.users != nil {
		s.users.clearProfileRefs(id)
	}
	return nil
}

type memCustomerStore struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*domain.Customer
	users     *memUserStore
}

func newMemCustomerStore(users *memUserStore) *memCustomerStore {
	return &memCustomerStore{
		customers: make(map[uuid.UUID]*domain.Customer),
		users:     users,
	}
}

func (s *memCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Code == customer.Code {
			return domain.ErrCodeTaken
		}
	}
	clone := *customer
	s.customers[customer.ID] = &clone
	return nil
}

func (s *memCustomerStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *memCustomerStore) GetByCode(ctx context.Context, code string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.customers {
		if c.Code == code {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCustomerNotFound
}

func (s *memCustomerStore) List(ctx context.Context) ([]*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers := make([]*domain.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		clone := *c
		customers = append(customers, &clone)
	}
	return customers, nil
}

func (s *memCustomerStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	if _, ok := s.customers[id]; !ok {
		s.mu.Unlock()
		return domain.ErrCustomerNotFound
	}
	delete(s.customers, id)
	s.mu.Unlock()

	if s.users != nil {
		s.users.clearCustomerRefs(id)
	}
	return nil
}
