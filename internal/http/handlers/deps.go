package handlers

import (
	"shoppanel/internal/config"
	"shoppanel/internal/repos"
	"shoppanel/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AdminHandler   *AdminHandler
	CardAPIHandler *CardAPIHandler
	UpdateHandler  *UpdateHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	settingsRepo := repos.NewSettingsRepo(db)
	cardRepo := repos.NewCardRepo(db)
	prodRepo := repos.NewProductRepo(db)

	cardAPISvc := services.NewCardAPIService(settingsRepo, cardRepo)
	updateSvc := services.NewUpdateService(settingsRepo, cfg.AppVersion, cfg.UpdateAPIURL)

	return &Deps{
		AdminHandler:   &AdminHandler{Products: prodRepo, Cards: cardRepo, CardAPI: cardAPISvc, Updates: updateSvc},
		CardAPIHandler: &CardAPIHandler{CardAPI: cardAPISvc, Products: prodRepo, Cards: cardRepo},
		UpdateHandler:  &UpdateHandler{Updates: updateSvc},
	}
}
