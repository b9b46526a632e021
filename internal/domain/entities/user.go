package entities

import "time"

// Roles disponíveis para usuários do sistema.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleUser       = "user"
)

type User struct {
	ID                 int       `json:"id" gorm:"primaryKey"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string    `json:"-" gorm:"column:password_hash"`
	FirstName          string    `json:"firstName" gorm:"not null"`
	LastName           string    `json:"lastName" gorm:"not null"`
	Role               string    `json:"role" gorm:"not null;default:user"`
	SupervisorID       *int      `json:"supervisorId"`
	InstitutionID      *int      `json:"institutionId"`
	EmailNotifications bool      `json:"emailNotifications" gorm:"default:true"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// FullName retorna o nome para exibição em atividades e e-mails.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
