package config

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv    = "HABI_APP_ENV"
	EnvAppPort   = "HABI_APP_PORT"
	EnvRedisURL  = "HABI_REDIS_URL"
	EnvJWTSecret = "HABI_JWT_SECRET"
)
