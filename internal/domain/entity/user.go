package entity

import "time"

// Role is the sole authorization axis besides ownership.
type Role string

const (
	RoleUser      Role = "user"
	RolePublisher Role = "publisher"
	RoleAdmin     Role = "admin"
)

// User is the authenticated principal. Password holds the bcrypt hash and
// is never serialized; the reset token fields hold the sha256 form of a
// pending password-reset secret, if any.
type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                Role       `json:"role"`
	Password            string     `json:"-"`
	ResetPasswordToken  string     `json:"-"`
	ResetPasswordExpire *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// CanModify reports whether the principal may mutate a resource owned by
// ownerID. Admins may mutate anything.
func (u *User) CanModify(ownerID string) bool {
	return u.ID == ownerID || u.Role == RoleAdmin
}
