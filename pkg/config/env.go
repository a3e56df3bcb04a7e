package config

const EnvPrefix = "PLOTDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvDBDSN  = "PLOTDESK_DB_DSN"
	EnvDBHost = "PLOTDESK_DB_HOST"
	EnvDBUser = "PLOTDESK_DB_USER"
	EnvDBName = "PLOTDESK_DB_NAME"
	EnvDBPath = "PLOTDESK_DB_PATH"
)

var postgresEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
