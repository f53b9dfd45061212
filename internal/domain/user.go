// internal/domain/user.go
package domain

import "time"

// UserStatus is the lifecycle state of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
	UserStatusBlocked   UserStatus = "BLOCKED"
)

// User represents an account holder. Soft-deleted rows stay in the table but
// are excluded from every read query.
type User struct {
	ID         int64      `db:"id" json:"id"`
	FirstName  string     `db:"nombre" json:"nombre"`
	LastName   string     `db:"apellido" json:"apellido"`
	Email      string     `db:"email" json:"email"`       // unique, lower-cased on ingest
	Username   string     `db:"username" json:"username"` // unique, lower-cased on ingest
	Password   string     `db:"password" json:"-"`        // bcrypt hash
	DNI        string     `db:"dni" json:"dni"`           // unique national id
	Street     string     `db:"calle" json:"calle"`
	Number     int        `db:"numero" json:"numero"`
	BirthDate  time.Time  `db:"fecha_nacimiento" json:"fechaNacimiento"`
	Gender     string     `db:"genero" json:"genero"`
	Phone      string     `db:"telefono" json:"telefono"`
	CountryID  int64      `db:"pais_id" json:"paisId"`
	ProvinceID int64      `db:"provincia_id" json:"provinciaId"`
	Status     UserStatus `db:"status" json:"status"`
	Deleted    bool       `db:"deleted" json:"-"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}

// FullName returns "<given> <family>" as registered. Used for the cardholder
// match during card top-ups.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
