package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"uprala/internal/adoption"
	"uprala/internal/auth"
	"uprala/internal/storage"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdmin    = "admin"
	testPassword = "relief-2025"
)

type adminUsers map[string]*types.AdminUser

func (a adminUsers) AdminByUsername(ctx context.Context, username string) (*types.AdminUser, error) {
	u, ok := a[strings.ToLower(username)]
	if !ok {
		return nil, types.ErrAdminUserNotFound
	}
	return u, nil
}

type harness struct {
	t             *testing.T
	db            *memoryDB
	handler       http.Handler
	supportTypeID string
	scaleID       string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := newMemoryDB()
	supportTypeID, scaleID := db.addLookups()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	provider := auth.NewLocalProvider(adminUsers{
		testAdmin: {ID: "admin-1", Username: testAdmin, Password: string(hash)},
	}, "test-secret", time.Hour)

	images, err := storage.NewLocalImageStore(t.TempDir(), "/media")
	require.NoError(t, err)

	config := &types.Config{
		CookieName:         "uprala_admin",
		MediaURLPrefix:     "/media",
		MaxUploadMB:        1,
		CORSAllowedOrigins: []string{"*"},
	}

	repos := Repositories{
		DB:          db,
		Villages:    db,
		Contacts:    db,
		NGOs:        db,
		Lookups:     db,
		Requests:    db,
		Assignments: db,
		Events:      db,
	}

	svc, err := New(config, logger, repos, adoption.New(logger, db, db, db, db, db), provider, images, images.Handler())
	require.NoError(t, err)

	return &harness{
		t:             t,
		db:            db,
		handler:       svc.Handler(),
		supportTypeID: supportTypeID,
		scaleID:       scaleID,
	}
}

func (h *harness) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func (h *harness) login() string {
	h.t.Helper()

	rec := h.do(http.MethodPost, "/api/admin/login", map[string]string{
		"username": testAdmin,
		"password": testPassword,
	}, "")
	require.Equal(h.t, http.StatusOK, rec.Code, rec.Body.String())

	var token types.AdminToken
	decodeBody(h.t, rec, &token)
	require.NotEmpty(h.t, token.Token)
	return token.Token
}

func (h *harness) createVillage(token, name string) *types.Village {
	h.t.Helper()

	rec := h.do(http.MethodPost, "/api/villages", map[string]any{"name": name, "district": "Ludhiana"}, token)
	require.Equal(h.t, http.StatusCreated, rec.Code, rec.Body.String())

	var village types.Village
	decodeBody(h.t, rec, &village)
	return &village
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func TestAdoptionScenario(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	village := h.createVillage(token, "Riverside")

	rec := h.do(http.MethodPost, "/api/ngo-requests", map[string]any{
		"ngoName":       "Relief Foundation",
		"ngoType":       "Trust",
		"contactPerson": "Harpreet Kaur",
		"contactPhone":  "9876543210",
		"supportTypeId": h.supportTypeID,
		"scaleId":       h.scaleID,
		"villageId":     village.ID,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var request types.NGORequest
	decodeBody(t, rec, &request)
	assert.Equal(t, types.RequestStatusPending, request.Status)
	assert.Equal(t, village.ID, request.VillageID)
	require.NotNil(t, request.NGOID)

	rec = h.do(http.MethodGet, "/api/admin/requests?status=PENDING", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending []*types.NGORequest
	decodeBody(t, rec, &pending)
	require.Len(t, pending, 1)

	rec = h.do(http.MethodPost, "/api/admin/requests/"+request.ID+"/approve", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var approval approvalResponse
	decodeBody(t, rec, &approval)
	assert.Equal(t, request.ID, approval.ID)
	assert.Equal(t, types.RequestStatusApproved, approval.Status)
	assert.NotEmpty(t, approval.AssignmentID)

	rec = h.do(http.MethodPost, "/api/admin/requests/"+request.ID+"/approve", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var again approvalResponse
	decodeBody(t, rec, &again)
	assert.Equal(t, approval.AssignmentID, again.AssignmentID)

	rec = h.do(http.MethodGet, "/api/villages/"+village.ID+"/assignments", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var assignments []*types.Assignment
	decodeBody(t, rec, &assignments)
	require.Len(t, assignments, 1)
	assert.Equal(t, *request.NGOID, assignments[0].NGOID)
	assert.Equal(t, "Harpreet Kaur", *assignments[0].ContactPerson)

	rec = h.do(http.MethodPost, "/api/admin/requests/"+request.ID+"/reject", nil, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateRequestValidation(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/ngo-requests", map[string]any{"ngoName": "Helping Hands"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorResponse
	decodeBody(t, rec, &body)
	assert.Contains(t, body.Fields, "contactPerson")
	assert.Contains(t, body.Fields, "villageId")

	rec = h.do(http.MethodPost, "/api/ngo-requests", map[string]any{
		"ngoName":       "Helping Hands",
		"contactPerson": "A",
		"contactPhone":  "1",
		"supportTypeId": h.supportTypeID,
		"scaleId":       h.scaleID,
		"villageId":     "missing",
	}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedJSON(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ngo-requests", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed JSON body")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/api/admin/verify"},
		{http.MethodPost, "/api/villages"},
		{http.MethodGet, "/api/admin/requests"},
		{http.MethodPost, "/api/admin/requests/r1/approve"},
		{http.MethodDelete, "/api/admin/events/e1"},
	} {
		rec := h.do(tc.method, tc.path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)

		rec = h.do(tc.method, tc.path, nil, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestLoginAndVerify(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/api/admin/login", map[string]string{"username": testAdmin, "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(http.MethodPost, "/api/admin/login", map[string]string{"username": testAdmin, "password": testPassword}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "uprala_admin", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// the cookie alone authenticates
	req := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	req.AddCookie(cookies[0])
	verify := httptest.NewRecorder()
	h.handler.ServeHTTP(verify, req)
	require.Equal(t, http.StatusOK, verify.Code, verify.Body.String())

	var claims types.AdminClaims
	decodeBody(t, verify, &claims)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, testAdmin, claims.Username)

	rec = h.do(http.MethodPost, "/api/admin/logout", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestVillageCRUD(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	village := h.createVillage(token, "  Riverside   Kalan ")
	assert.Equal(t, "Riverside Kalan", village.Name)
	assert.Empty(t, village.Contacts)

	rec := h.do(http.MethodPost, "/api/villages", map[string]any{"name": "Riverside Kalan"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = h.do(http.MethodPost, "/api/villages", map[string]any{"district": "Moga"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPost, "/api/villages/"+village.ID+"/contacts", map[string]any{"name": "Gurdev Singh", "phone": "98140"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var contact types.Contact
	decodeBody(t, rec, &contact)
	assert.Equal(t, types.ContactRolePatwari, contact.Role)

	rec = h.do(http.MethodGet, "/api/villages/"+village.ID+"/contacts?role=SARPANCH", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = h.do(http.MethodGet, "/api/villages/"+village.ID+"/contacts?role=MAYOR", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = h.do(http.MethodPut, "/api/villages/"+village.ID, map[string]any{"needsHelp": true}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated types.Village
	decodeBody(t, rec, &updated)
	assert.True(t, updated.NeedsHelp)
	assert.Equal(t, "Riverside Kalan", updated.Name)

	rec = h.do(http.MethodGet, "/api/villages?needsHelp=true", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var helped []*types.Village
	decodeBody(t, rec, &helped)
	require.Len(t, helped, 1)
	require.Len(t, helped[0].Contacts, 1)

	rec = h.do(http.MethodDelete, "/api/villages/"+village.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, h.db.contacts)

	rec = h.do(http.MethodGet, "/api/villages/"+village.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMarkVillages(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	h.createVillage(token, "Bhaini Bagha")
	h.createVillage(token, "Khanpur")

	rec := h.do(http.MethodPost, "/api/admin/villages/mark", map[string]any{
		"flag":  "mostEffected",
		"names": []string{" bhaini  bagha", "khan", "Nowhere"},
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result types.MarkVillagesResult
	decodeBody(t, rec, &result)
	assert.EqualValues(t, 2, result.Updated)
	assert.Equal(t, []string{"Nowhere"}, result.NotMatched)

	rec = h.do(http.MethodPost, "/api/admin/villages/mark", map[string]any{"flag": "flooded", "names": []string{"Khanpur"}}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNGOEndpoints(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	rec := h.do(http.MethodPost, "/api/ngos", map[string]any{"name": "Khalsa Aid", "type": "Charity"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var ngo types.NGO
	decodeBody(t, rec, &ngo)

	rec = h.do(http.MethodPost, "/api/admin/ngos", map[string]any{"name": "Khalsa Aid"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "name already exists")

	rec = h.do(http.MethodPut, "/api/admin/ngos/"+ngo.ID, map[string]any{"type": "Trust"}, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(http.MethodGet, "/api/ngos?q=khalsa", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ngos []*types.NGO
	decodeBody(t, rec, &ngos)
	require.Len(t, ngos, 1)
	assert.Equal(t, "Trust", *ngos[0].Type)

	rec = h.do(http.MethodDelete, "/api/admin/ngos/"+ngo.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = h.do(http.MethodGet, "/api/ngos/"+ngo.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRequestsRejectsUnknownStatus(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	rec := h.do(http.MethodGet, "/api/admin/requests?status=DONE", nil, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLookups(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/support-types", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var supportTypes []*types.SupportType
	decodeBody(t, rec, &supportTypes)
	require.Len(t, supportTypes, 1)
	assert.Equal(t, "food", supportTypes[0].Key)

	rec = h.do(http.MethodGet, "/api/scales", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestEventsAndUpload(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	png := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "flood.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/events/upload-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var uploaded types.UploadedImage
	decodeBody(t, rec, &uploaded)
	assert.True(t, strings.HasPrefix(uploaded.Src, "/media/"))
	assert.True(t, strings.HasSuffix(uploaded.Src, ".png"))
	assert.Equal(t, uploaded.Src, uploaded.Thumb)

	rec = h.do(http.MethodGet, uploaded.Src, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, png, rec.Body.Bytes())

	rec = h.do(http.MethodPost, "/api/admin/events", map[string]any{
		"title":  "Ration distribution",
		"images": []map[string]any{{"src": uploaded.Src}},
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var event types.Event
	decodeBody(t, rec, &event)
	require.Len(t, event.Images, 1)

	rec = h.do(http.MethodPost, "/api/admin/events", map[string]any{
		"title":  "Missing src",
		"images": []map[string]any{{"caption": "no src"}},
	}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var verr errorResponse
	decodeBody(t, rec, &verr)
	assert.Contains(t, verr.Fields, "images[0].src")

	rec = h.do(http.MethodDelete, "/api/admin/events/"+event.ID, nil, token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// stored file went with the event
	rec = h.do(http.MethodGet, uploaded.Src, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.do(http.MethodGet, "/api/events/"+event.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadRejectsNonImages(t *testing.T) {
	h := newHarness(t)
	token := h.login()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("just some text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/events/upload-image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterBehaviour(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/api/villages/", nil, "")
	assert.Equal(t, http.StatusPermanentRedirect, rec.Code)
	assert.Equal(t, "/api/villages", rec.Header().Get("Location"))

	rec = h.do(http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(requestIDHeader, "trace-123")
	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	assert.Equal(t, "trace-123", rec.Header().Get(requestIDHeader))

	rec = h.do(http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "uprala_http_requests_total")
}

func TestHealthReportsDatabaseFailure(t *testing.T) {
	h := newHarness(t)
	h.db.pingErr = errors.New("connection refused")

	rec := h.do(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
