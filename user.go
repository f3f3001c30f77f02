package senka

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleWriter UserRole = "writer"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Role      UserRole  `json:"role"`
}

func (u *User) Brief() *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}

// UserBrief is the public view of a user, carried through every
// visibility decision as the explicit viewer identity.
// A nil *UserBrief is an anonymous viewer.
type UserBrief struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

func (ub *UserBrief) IsAuthed() bool {
	return ub != nil && ub.ID > 0
}

func (ub *UserBrief) IsAdmin() bool {
	if !ub.IsAuthed() {
		return false
	}
	return ub.Role == RoleAdmin
}

func (ub *UserBrief) IsWriter() bool {
	if !ub.IsAuthed() {
		return false
	}
	return ub.Role == RoleAdmin || ub.Role == RoleWriter
}

// UserFilter is the struct with all filterable fields on the user
// It also provides a Limit and Offset field, for pagination
type UserFilter struct {
	ID  *int  `json:"id"`
	IDs []int `json:"ids"`

	// Name is case insensitive
	Name  *string `json:"name"`
	Email *string `json:"email"`

	Role *UserRole `json:"role"`

	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,12}$`)

func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Name, validation.Required, validation.Match(usernameRegex)),
		validation.Field(&u.Email, validation.Required),
		validation.Field(&u.Role, validation.In(RoleMember, RoleWriter, RoleAdmin)),
	)
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), err
}

func CheckPwdHash(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
