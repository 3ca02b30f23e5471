package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"lostfound/internal/auth"
	"lostfound/internal/domain"
	"lostfound/internal/repos"
	"lostfound/internal/validate"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users    *repos.UserRepo
	Secret   string
	TokenTTL time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: secret, TokenTTL: ttl}
}

// Register creates a user account and returns it with a signed token.
func (s *AuthService) Register(name, email, password, phone string) (*domain.User, string, error) {
	name, ok := validate.Name(name)
	if !ok {
		return nil, "", domain.Validationf("name is required and cannot exceed 50 characters")
	}
	email, ok = validate.Email(email)
	if !ok {
		return nil, "", domain.Validationf("please provide a valid email")
	}
	if !validate.Password(password) {
		return nil, "", domain.Validationf("password must be 8-72 characters with upper, lower and digit")
	}
	phone, ok = validate.Phone(phone)
	if !ok {
		return nil, "", domain.Validationf("invalid phone number")
	}

	taken, err := s.Users.EmailTaken(email)
	if err != nil {
		return nil, "", domain.Unavailable(err)
	}
	if taken {
		return nil, "", domain.Validationf("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(hash),
		Phone: phone,
		Role:  domain.RoleUser,
	}
	if err := s.Users.Insert(u); err != nil {
		return nil, "", domain.Unavailable(err)
	}

	token, err := auth.GenerateToken(s.Secret, s.TokenTTL, u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// Login checks credentials and returns the user with a signed token. A single
// error covers unknown email and wrong password.
func (s *AuthService) Login(email, password string) (*domain.User, string, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrBadCreds
		}
		return nil, "", domain.Unavailable(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}

	token, err := auth.GenerateToken(s.Secret, s.TokenTTL, u.ID, u.Role)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Authenticate resolves a bearer token to the actor it was issued for.
func (s *AuthService) Authenticate(token string) (domain.Actor, error) {
	claims, err := auth.ValidateToken(s.Secret, token)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{ID: claims.UserID, Role: claims.Role}, nil
}

// CurrentUser loads the account behind an actor id.
func (s *AuthService) CurrentUser(id string) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("user not found")
		}
		return nil, domain.Unavailable(err)
	}
	return u, nil
}
