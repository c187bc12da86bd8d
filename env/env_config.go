package env

const (
	// GOOGLE DRIVE

	EnvGoogleDriveCredentials = "GOOGLE_DRIVE_CREDENTIALS"
	EnvGoogleClientID         = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret     = "GOOGLE_CLIENT_SECRET"
	EnvGoogleRefreshToken     = "GOOGLE_REFRESH_TOKEN"

	EnvDriveParentFolderID = "DRIVE_PARENT_FOLDER_ID"

	// EMAIL / SMTP

	EnvSMTPHost        = "SMTP_HOST"
	EnvSMTPPort        = "SMTP_PORT"
	EnvSMTPUser        = "SMTP_USER"
	EnvSMTPPass        = "SMTP_PASS"
	EnvEmailFrom       = "FROM_ADDRESS"
	EnvContactNotifyTo = "CONTACT_NOTIFY_TO"

	// UMAZONA

	EnvAdminToken   = "ADMIN_TOKEN"
	EnvDatabasePath = "DATABASE_PATH"
	EnvUploadsDir   = "UPLOADS_DIR"
	EnvMirrorDir    = "MIRROR_DIR"
	EnvConfigPath   = "UMAZONA_CONFIG_PATH"

	// ENVIRONMENT

	EnvGoEnvironment = "GO_ENV"
	EnvLogLevel      = "LOG_LEVEL"
	EnvPort          = "PORT"
)
