package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"4000"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`

	// Pool sizing. Zero leaves the pgx default in place.
	DBMaxConns        int32 `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns        int32 `envconfig:"DB_MIN_CONNS"`
	DBConnLifetimeMin uint  `envconfig:"DB_CONN_LIFETIME_MIN" default:"30"`
	DBConnIdleMin     uint  `envconfig:"DB_CONN_IDLE_MIN" default:"5"`

	// Admin authentication. "local" checks admin_users with bcrypt and signs
	// HS256 tokens with JWTSecret; "cognito" delegates to a Cognito user pool.
	AuthProvider string `envconfig:"AUTH_PROVIDER" default:"local"`
	JWTSecret    string `envconfig:"JWT_SECRET"`
	TokenTTLMin  uint   `envconfig:"TOKEN_TTL_MIN" default:"60"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	CookieName string `envconfig:"SESSION_COOKIE_NAME" default:"uprala_admin"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes

	// Event gallery uploads
	ImageStorage    string `envconfig:"IMAGE_STORAGE" default:"local"`
	MediaRoot       string `envconfig:"MEDIA_ROOT" default:"uploads"`
	MediaURLPrefix  string `envconfig:"MEDIA_URL_PREFIX" default:"/media"`
	S3Bucket        string `envconfig:"S3_BUCKET"`
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`
	MaxUploadMB     int64  `envconfig:"MAX_UPLOAD_MB" default:"8"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	LookupCacheTTLMin  uint     `envconfig:"LOOKUP_CACHE_TTL_MIN" default:"30"`
}

const (
	AuthProviderLocal   = "local"
	AuthProviderCognito = "cognito"

	ImageStorageLocal = "local"
	ImageStorageS3    = "s3"
)
