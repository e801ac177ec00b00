package app

import (
	"log/slog"

	"carecompass.healthdata.org/hospitaldb"
	"carecompass.healthdata.org/internal/appconf"
	"carecompass.healthdata.org/internal/hospitals"
)

// Application holds the dependencies for our HTTP handlers, helpers and
// middleware.
type Application struct {
	Config      appconf.Config
	Logger      *slog.Logger
	DataManager *hospitals.Manager
	DB          *hospitaldb.Client
}
