package handlers

import (
	"github.com/jmoiron/sqlx"

	"lostfound/internal/config"
	"lostfound/internal/repos"
	"lostfound/internal/services"
)

type Deps struct {
	Auth        *services.AuthService
	AuthHandler *AuthHandler
	ItemHandler *ItemHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	itemRepo := repos.NewItemRepo(db)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	itemSvc := services.NewItemService(itemRepo)

	return &Deps{
		Auth:        authSvc,
		AuthHandler: &AuthHandler{Auth: authSvc},
		ItemHandler: &ItemHandler{Items: itemSvc},
	}
}
