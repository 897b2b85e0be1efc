package main

import (
	"context"
	"fmt"
	"strings"

	"uprala/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/k0kubun/pp/v3"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func loadConfig(prefix string) (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.ServerPort == 0 {
		c.ServerPort = 4000
	}

	if c.ReadTimeoutSec == 0 {
		c.ReadTimeoutSec = 10
	}

	if c.WriteTimeoutSec == 0 {
		c.WriteTimeoutSec = 15
	}

	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 8
	}

	switch c.AuthProvider {
	case types.AuthProviderLocal:
		if c.JWTSecret == "" {
			return nil, fmt.Errorf("set JWT_SECRET for the local auth provider")
		}
	case types.AuthProviderCognito:
		if c.CognitoClientID == "" || c.CognitoIssuerURL == "" {
			return nil, fmt.Errorf("set COGNITO_CLIENT_ID and COGNITO_ISSUER_URL for the cognito auth provider")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q, expected %s or %s", c.AuthProvider, types.AuthProviderLocal, types.AuthProviderCognito)
	}

	switch c.ImageStorage {
	case types.ImageStorageLocal:
	case types.ImageStorageS3:
		if c.S3Bucket == "" || c.S3PublicBaseURL == "" {
			return nil, fmt.Errorf("set S3_BUCKET and S3_PUBLIC_BASE_URL for s3 image storage")
		}
	default:
		return nil, fmt.Errorf("unknown IMAGE_STORAGE %q, expected %s or %s", c.ImageStorage, types.ImageStorageLocal, types.ImageStorageS3)
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}

func newLogger(c *types.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.WithField("log_level", c.LogLevel).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// maskedConfig blanks out secrets before the config is printed.
func maskedConfig(c *types.Config) types.Config {
	masked := *c
	masked.DatabaseURL = maskDatabaseURL(c.DatabaseURL)
	for _, secret := range []*string{&masked.JWTSecret, &masked.CookieHashKey, &masked.CookieBlockKey} {
		if *secret != "" {
			*secret = "********"
		}
	}
	return masked
}

func maskDatabaseURL(databaseURL string) string {
	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return databaseURL
	}
	creds, host, ok := strings.Cut(rest, "@")
	if !ok {
		return databaseURL
	}
	user, _, _ := strings.Cut(creds, ":")
	return fmt.Sprintf("%s://%s:********@%s", scheme, user, host)
}

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Print the effective configuration with secrets masked",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c.String("env-prefix"))
		if err != nil {
			return err
		}

		printer := pp.New()
		printer.SetColoringEnabled(false)
		printer.Println(maskedConfig(cfg))

		return nil
	},
}
