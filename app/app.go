package app

import (
	"database/sql"

	"github.com/go-chi/oauth"
	"github.com/lgu-leganes/bizportal/config"
	"github.com/lgu-leganes/bizportal/services"
)

type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Services *services.Client
}
