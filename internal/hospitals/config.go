package hospitals

import "carecompass.healthdata.org/internal/appconf"

type Config struct {
	// DataSource is an HTTP(S) URL or a local path to the encounters CSV
	DataSource string
	DBPath     string
	Env        appconf.Environment
	Verbose    bool
}
