package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/educonnect/educonnect/core"
)

// Roles
const (
	RoleEducator = "educator"
	RoleStudent  = "student"
)

var AllRoles = []string{RoleEducator, RoleStudent}

// Identity is what the identity provider hands to the data layer for the acting user.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (i Identity) IsEducator() bool { return i.Role == RoleEducator }
func (i Identity) IsStudent() bool  { return i.Role == RoleStudent }

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PasswordHash []byte `json:"passwordHash,omitempty"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Role: u.Role}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	ID       string `json:"id"` // optional; generated when empty
	Name     string `json:"name" validate:"required,notblank"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,role"`
	Password string `json:"password" validate:"required"`
}

func (nu *NewUser) Clean() {
	nu.ID = core.CleanString(nu.ID)
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
}

func (nu NewUser) Validate() error { return core.Validate.Struct(nu) }
