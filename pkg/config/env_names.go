package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "FRONTDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "FRONTDESK_DB_DSN"
	EnvDBHost = "FRONTDESK_DB_HOST"
	EnvDBUser = "FRONTDESK_DB_USER"
	EnvDBName = "FRONTDESK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
