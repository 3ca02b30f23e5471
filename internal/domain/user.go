package domain

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Hash         string `db:"password_hash"`
	Phone        string `db:"phone"`
	ProfileImage string `db:"profile_image"`
	Role         string `db:"role"`
}

// Actor is the authenticated identity performing an operation. The bearer
// middleware builds it from token claims; it is passed down explicitly rather
// than read from ambient request state.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
