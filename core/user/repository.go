package user

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/educonnect/educonnect/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrIDExists           = errors.New("a user with this id already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no user signed in")
)

// Repository keeps the user records and the current session identity in the substrate.
type Repository struct {
	kv  core.KVStore
	ids core.IDGenerator
	mu  sync.Mutex
}

func NewRepository(kv core.KVStore, ids core.IDGenerator) *Repository {
	if ids == nil {
		ids = core.UUIDGenerator{}
	}
	return &Repository{kv: kv, ids: ids}
}

func (repo *Repository) query(ctx context.Context) ([]User, error) {
	raw, err := repo.kv.Get(ctx, core.KeyUsers)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return []User{}, nil
		}
		return nil, errors.Wrap(err, "loading users")
	}
	var users []User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, errors.Wrap(err, "decoding users")
	}
	return users, nil
}

func (repo *Repository) save(ctx context.Context, users []User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return errors.Wrap(err, "encoding users")
	}
	return errors.Wrap(repo.kv.Set(ctx, core.KeyUsers, string(data)), "saving users")
}

func (repo *Repository) QueryAllUsers(ctx context.Context) ([]User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.query(ctx)
}

// SaveUsers overwrites every stored user.
func (repo *Repository) SaveUsers(ctx context.Context, users []User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if users == nil {
		users = []User{}
	}
	return repo.save(ctx, users)
}

func (repo *Repository) GetUserByID(ctx context.Context, id string) (User, error) {
	return repo.find(ctx, func(u User) bool { return u.ID == id })
}

func (repo *Repository) GetUserByEmail(ctx context.Context, email string) (User, error) {
	email = core.CleanString(email, true /* lower */)
	return repo.find(ctx, func(u User) bool { return u.Email == email })
}

func (repo *Repository) find(ctx context.Context, match func(User) bool) (User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	users, err := repo.query(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (repo *Repository) CreateUser(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	if err := nu.Validate(); err != nil {
		return User{}, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	users, err := repo.query(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Email == nu.Email {
			return User{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
		}
		if nu.ID != "" && u.ID == nu.ID {
			return User{}, core.NewValidationError(ErrIDExists, core.FieldError{Field: "id", Error: ErrIDExists.Error()})
		}
	}

	usr := User{
		ID:    nu.ID,
		Name:  nu.Name,
		Email: nu.Email,
		Role:  nu.Role,
	}
	if usr.ID == "" {
		usr.ID = repo.ids.NewID()
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	if err := repo.save(ctx, append(users, usr)); err != nil {
		return User{}, err
	}
	return usr, nil
}

// ResetPassword replaces the password of the user with that email, applying the password policy.
func (repo *Repository) ResetPassword(ctx context.Context, email, pwd string) (User, error) {
	email = core.CleanString(email, true /* lower */)

	repo.mu.Lock()
	defer repo.mu.Unlock()

	users, err := repo.query(ctx)
	if err != nil {
		return User{}, err
	}
	for i, u := range users {
		if u.Email != email {
			continue
		}
		nu := NewUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Password: pwd}
		if err := nu.Validate(); err != nil {
			return User{}, err
		}
		if err := users[i].SetPassword(pwd); err != nil {
			return User{}, err
		}
		if err := repo.save(ctx, users); err != nil {
			return User{}, err
		}
		return users[i], nil
	}
	return User{}, ErrNotFound
}

// Authenticate checks the credentials and returns the identity to act as.
func (repo *Repository) Authenticate(ctx context.Context, email, pwd string) (Identity, error) {
	usr, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == ErrNotFound {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, err
	}
	if err := usr.CheckPassword(pwd); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return usr.Identity(), nil
}

func (repo *Repository) SetSession(ctx context.Context, id Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(repo.kv.Set(ctx, core.KeySession, string(data)), "saving session")
}

func (repo *Repository) Session(ctx context.Context) (Identity, error) {
	raw, err := repo.kv.Get(ctx, core.KeySession)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return Identity{}, ErrNoSession
		}
		return Identity{}, errors.Wrap(err, "loading session")
	}
	var id Identity
	if err := json.Unmarshal([]byte(raw), &id); err != nil {
		return Identity{}, errors.Wrap(err, "decoding session")
	}
	return id, nil
}

func (repo *Repository) ClearSession(ctx context.Context) error {
	return errors.Wrap(repo.kv.Remove(ctx, core.KeySession), "clearing session")
}
