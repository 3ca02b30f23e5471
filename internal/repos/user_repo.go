package repos

import (
	"github.com/jmoiron/sqlx"

	"lostfound/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, name, email, password_hash,
  COALESCE(phone,'') AS phone, COALESCE(profile_image,'') AS profile_image, role`

func (r *UserRepo) Insert(u domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(id,name,email,password_hash,phone,profile_image,role)
		VALUES(?,?,?,?,NULLIF(?,''),NULLIF(?,''),?)
	`, u.ID, u.Name, u.Email, u.Hash, u.Phone, u.ProfileImage, u.Role)
	return err
}

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userColumns+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) EmailTaken(email string) (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return false, err
	}
	return n > 0, nil
}
