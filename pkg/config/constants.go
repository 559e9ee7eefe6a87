package config

// EnvPrefix is passed to envconfig; individual fields carry fully
// qualified names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Legacy database environment variable names, kept for operators who
// configure the connection piecewise instead of via a DSN.
const (
	EnvDBHost     = "ESCOLAR_DB_HOST"
	EnvDBPort     = "ESCOLAR_DB_PORT"
	EnvDBUser     = "ESCOLAR_DB_USER"
	EnvDBPassword = "ESCOLAR_DB_PASSWORD"
	EnvDBName     = "ESCOLAR_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
