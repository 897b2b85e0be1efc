package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uprala/internal/adoption"
	"uprala/internal/auth"
	"uprala/internal/db"
	"uprala/internal/server"
	"uprala/internal/storage"
	"uprala/internal/store"
	"uprala/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Apply pending migrations before serving",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config, err := loadConfig(cCtx.String("env-prefix"))
	if err != nil {
		return err
	}

	logger := newLogger(config)

	if cCtx.Bool("migrate") {
		if err := migrateUp(config, logger); err != nil {
			return err
		}
	}

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	villageRepo := store.NewVillageRepository(pool)
	contactRepo := store.NewContactRepository(pool)
	ngoRepo := store.NewNGORepository(pool)
	requestRepo := store.NewRequestRepository(pool)
	assignmentRepo := store.NewAssignmentRepository(pool)
	eventRepo := store.NewEventRepository(pool)
	lookups := store.NewCachedLookups(
		store.NewLookupRepository(pool),
		time.Duration(config.LookupCacheTTLMin)*time.Minute,
	)

	adoptionService := adoption.New(logger, ngoRepo, villageRepo, lookups, requestRepo, assignmentRepo)

	authProvider, err := newAuthProvider(ctx, config, pool)
	if err != nil {
		return err
	}

	images, media, err := newImageStore(ctx, config)
	if err != nil {
		return err
	}

	srv, err := server.New(
		config,
		logger,
		server.Repositories{
			DB:          pool,
			Villages:    villageRepo,
			Contacts:    contactRepo,
			NGOs:        ngoRepo,
			Lookups:     lookups,
			Requests:    requestRepo,
			Assignments: assignmentRepo,
			Events:      eventRepo,
		},
		adoptionService,
		authProvider,
		images,
		media,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}

func newAuthProvider(ctx context.Context, config *types.Config, pool *pgxpool.Pool) (auth.Provider, error) {
	ttl := time.Duration(config.TokenTTLMin) * time.Minute

	if config.AuthProvider == types.AuthProviderLocal {
		return auth.NewLocalProvider(store.NewAdminUserRepository(pool), config.JWTSecret, ttl), nil
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	jwkCache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwk cache: %w", err)
	}

	jwksURL := auth.JWKSURL(config.CognitoIssuerURL)
	if err := jwkCache.Register(ctx, jwksURL); err != nil {
		return nil, fmt.Errorf("failed to register cognito jwks with cache: %w", err)
	}

	return auth.NewCognitoProvider(
		cognitoidentityprovider.NewFromConfig(awsConfig),
		jwkCache,
		config.CognitoClientID,
		config.CognitoIssuerURL,
	), nil
}

// newImageStore returns the upload backend and, for local storage, the
// handler that serves the uploaded files.
func newImageStore(ctx context.Context, config *types.Config) (storage.ImageStore, http.Handler, error) {
	if config.ImageStorage == types.ImageStorageS3 {
		awsConfig, err := loadAWSConfig(ctx)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewS3ImageStore(s3.NewFromConfig(awsConfig), config.S3Bucket, config.S3PublicBaseURL), nil, nil
	}

	local, err := storage.NewLocalImageStore(config.MediaRoot, config.MediaURLPrefix)
	if err != nil {
		return nil, nil, err
	}

	return local, local.Handler(), nil
}

func migrateUp(config *types.Config, logger logrus.FieldLogger) error {
	migrator, err := db.NewMigrator(config.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	return migrator.Up()
}
