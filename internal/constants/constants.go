package constants

const (
	OAuth2CallbackServer = "oauth2-callback-server"
	ServiceDescription   = "OAuth callback server is running"

	PathHome     = "/"
	PathCallback = "/callback"
	PathHealth   = "/health"

	QueryParamAuthorizationCode = "code"
	QueryParamError             = "error"
	QueryParamErrorDescription  = "error_description"
	QueryParamState             = "state"

	EnvLogLevel = "LOG_LEVEL"

	DefaultErrorDescription = "Unknown error"
	Placeholder             = "None"
)

// ValidEndpoints is the list of routes shown on the not-found page.
var ValidEndpoints = []string{PathHome, PathCallback, PathHealth}
