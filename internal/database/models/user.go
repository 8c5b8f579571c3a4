package models

// User roles. Only clients can authenticate through the public login path;
// other roles are provisioned out of band.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	Base
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'client'" json:"role"`
}

func (User) TableName() string {
	return "users"
}
