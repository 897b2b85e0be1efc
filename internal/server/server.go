package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"uprala/internal/auth"
	"uprala/internal/storage"
	"uprala/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

// Repositories groups the stores the handlers read and write through.
type Repositories struct {
	DB          Pinger
	Villages    VillageStore
	Contacts    ContactStore
	NGOs        NGOStore
	Lookups     LookupStore
	Requests    RequestStore
	Assignments AssignmentStore
	Events      EventStore
}

type Service struct {
	logger *logrus.Logger
	config *types.Config
	db     Pinger

	villages    VillageStore
	contacts    ContactStore
	ngos        NGOStore
	lookups     LookupStore
	requests    RequestStore
	assignments AssignmentStore
	events      EventStore

	adoption AdoptionService
	auth     auth.Provider
	images   storage.ImageStore
	media    http.Handler

	cookie   *securecookie.SecureCookie
	registry *prometheus.Registry
	metrics  *metrics

	handler http.Handler
	server  *http.Server
}

// New wires the router. media serves uploaded files for the local image
// store and may be nil when images live elsewhere.
func New(
	config *types.Config,
	logger *logrus.Logger,
	repos Repositories,
	adoption AdoptionService,
	authProvider auth.Provider,
	images storage.ImageStore,
	media http.Handler,
) (*Service, error) {
	mux := flow.New()

	hashKey, err := decodeCookieKey(config.CookieHashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid cookie hash key: %w", err)
	}
	blockKey, err := decodeCookieKey(config.CookieBlockKey)
	if err != nil {
		return nil, fmt.Errorf("invalid cookie block key: %w", err)
	}

	if hashKey == nil {
		logger.Warn("COOKIE_HASH_KEY not set, using a random key; admin cookies will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	registry := prometheus.NewRegistry()

	s := &Service{
		logger: logger,
		config: config,
		db:     repos.DB,

		villages:    repos.Villages,
		contacts:    repos.Contacts,
		ngos:        repos.NGOs,
		lookups:     repos.Lookups,
		requests:    repos.Requests,
		assignments: repos.Assignments,
		events:      repos.Events,

		adoption: adoption,
		auth:     authProvider,
		images:   images,
		media:    media,

		cookie:   securecookie.New(hashKey, blockKey),
		registry: registry,
		metrics:  newMetrics(registry),
	}

	s.buildRouter(mux)

	// flow only applies Use middleware to matched routes; these also need to
	// see 404s and trailing-slash paths.
	var handler http.Handler = mux
	handler = s.StripTrailingSlash(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RequestID(handler)
	handler = s.Recoverer(handler)

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: !allowsAnyOrigin(config.CORSAllowedOrigins),
	}).Handler(handler)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.ServerPort),
		Handler:           s.handler,
		ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler is the fully wrapped router, used by tests.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.MetricsMiddleware)

	r.HandleFunc("/api/health", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/villages", s.handleListVillages, http.MethodGet)
	r.HandleFunc("/api/villages/:id", s.handleGetVillage, http.MethodGet)
	r.HandleFunc("/api/villages/:id/contacts", s.handleListContacts, http.MethodGet)
	r.HandleFunc("/api/villages/:id/assignments", s.handleVillageAssignments, http.MethodGet)

	r.HandleFunc("/api/ngos", s.handleListNGOs, http.MethodGet)
	r.HandleFunc("/api/ngos", s.handleCreateNGO, http.MethodPost)
	r.HandleFunc("/api/ngos/:id", s.handleGetNGO, http.MethodGet)

	r.HandleFunc("/api/support-types", s.handleListSupportTypes, http.MethodGet)
	r.HandleFunc("/api/scales", s.handleListScales, http.MethodGet)

	r.HandleFunc("/api/ngo-requests", s.handleCreateRequest, http.MethodPost)

	r.HandleFunc("/api/events", s.handleListEvents, http.MethodGet)
	r.HandleFunc("/api/events/:id", s.handleGetEvent, http.MethodGet)

	r.HandleFunc("/api/admin/login", s.handleLogin, http.MethodPost)
	r.HandleFunc("/api/admin/logout", s.handleLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		r.HandleFunc("/api/admin/verify", s.handleVerify, http.MethodGet)

		r.HandleFunc("/api/villages", s.handleCreateVillage, http.MethodPost)
		r.HandleFunc("/api/villages/:id", s.handleUpdateVillage, http.MethodPut)
		r.HandleFunc("/api/villages/:id", s.handleDeleteVillage, http.MethodDelete)
		r.HandleFunc("/api/admin/villages/mark", s.handleMarkVillages, http.MethodPost)

		r.HandleFunc("/api/villages/:id/contacts", s.handleCreateContact, http.MethodPost)
		r.HandleFunc("/api/contacts/:id", s.handleUpdateContact, http.MethodPut)
		r.HandleFunc("/api/contacts/:id", s.handleDeleteContact, http.MethodDelete)

		r.HandleFunc("/api/admin/ngos", s.handleCreateNGO, http.MethodPost)
		r.HandleFunc("/api/admin/ngos/:id", s.handleUpdateNGO, http.MethodPut)
		r.HandleFunc("/api/admin/ngos/:id", s.handleDeleteNGO, http.MethodDelete)

		r.HandleFunc("/api/admin/requests", s.handleListRequests, http.MethodGet)
		r.HandleFunc("/api/admin/requests/:id", s.handleGetRequest, http.MethodGet)
		r.HandleFunc("/api/admin/requests/:id/approve", s.handleApproveRequest, http.MethodPost)
		r.HandleFunc("/api/admin/requests/:id/reject", s.handleRejectRequest, http.MethodPost)

		r.HandleFunc("/api/admin/assignments", s.handleListAssignments, http.MethodGet)

		r.HandleFunc("/api/admin/events", s.handleCreateEvent, http.MethodPost)
		r.HandleFunc("/api/admin/events/upload-image", s.handleUploadImage, http.MethodPost)
		r.HandleFunc("/api/admin/events/:id", s.handleUpdateEvent, http.MethodPut)
		r.HandleFunc("/api/admin/events/:id", s.handleDeleteEvent, http.MethodDelete)
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}), http.MethodGet)

	if s.media != nil {
		r.Handle(s.mediaPrefix()+"/...", s.media, http.MethodGet, http.MethodHead)
	}
}

// decodeCookieKey accepts base64 keys from the environment. An empty key
// yields nil, which disables encryption for the block key.
func decodeCookieKey(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	return base64.StdEncoding.DecodeString(key)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return len(origins) == 0
}
