package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"vesta-storefront/internal/gateway"
	"vesta-storefront/internal/middleware"
	"vesta-storefront/internal/session"
	"vesta-storefront/pkg/validator"
)

type memoryStore struct {
	values map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Get(_ context.Context, sessionID, key string, dest interface{}) error {
	raw, ok := m.values[sessionID+":"+key]
	if !ok {
		return session.ErrNoValue
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryStore) Set(_ context.Context, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[sessionID+":"+key] = raw
	return nil
}

func (m *memoryStore) Delete(_ context.Context, sessionID, key string) error {
	delete(m.values, sessionID+":"+key)
	return nil
}

func (m *memoryStore) Destroy(_ context.Context, sessionID string) error {
	for k := range m.values {
		if strings.HasPrefix(k, sessionID+":") {
			delete(m.values, k)
		}
	}
	return nil
}

type fakeAuthGateway struct {
	auth       *gateway.AuthResponse
	err        error
	loginCalls int
}

func (f *fakeAuthGateway) Login(_ context.Context, _, _ string) (*gateway.AuthResponse, error) {
	f.loginCalls++
	return f.auth, f.err
}

func (f *fakeAuthGateway) ResendConfirmation(_ context.Context, _ string) (string, error) {
	return "reenviado", nil
}

func newLoginRouter(gw *fakeAuthGateway, store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validator.Init()

	router := gin.New()
	router.Use(middleware.SessionMiddleware("vesta_session", 60))
	router.POST("/login", NewAuthHandler(gw, store).Login)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginRejectsBlankEmailWithoutCallingGateway(t *testing.T) {
	gw := &fakeAuthGateway{}
	router := newLoginRouter(gw, newMemoryStore())

	w := postLogin(t, router, `{"correoElectronico":"  ","contrasena":"secreto"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if gw.loginCalls != 0 {
		t.Fatalf("gateway called %d times for blank email", gw.loginCalls)
	}
}

func TestLoginRejectsBlankPassword(t *testing.T) {
	gw := &fakeAuthGateway{}
	router := newLoginRouter(gw, newMemoryStore())

	w := postLogin(t, router, `{"correoElectronico":"ana@vesta.es","contrasena":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if gw.loginCalls != 0 {
		t.Fatal("gateway called for blank password")
	}
}

func TestLoginBindsIdentityToSession(t *testing.T) {
	gw := &fakeAuthGateway{auth: &gateway.AuthResponse{Token: "tok-1", Role: "USUARIO", Name: "Ana", ID: 7}}
	store := newMemoryStore()
	router := newLoginRouter(gw, store)

	w := postLogin(t, router, `{"correoElectronico":"ana@vesta.es","contrasena":"secreto"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["redirectUrl"] != "/cliente/dashboard" {
		t.Fatalf("expected client redirect, got %v", resp["redirectUrl"])
	}

	// The identity must have landed in the session store.
	found := false
	for key := range store.values {
		if strings.HasSuffix(key, ":"+session.KeyToken) {
			found = true
		}
	}
	if !found {
		t.Fatal("token was not persisted in the session store")
	}
}

func TestLoginAdminRedirectsToAdminDashboard(t *testing.T) {
	gw := &fakeAuthGateway{auth: &gateway.AuthResponse{Token: "tok-1", Role: "ADMIN", Name: "Eva", ID: 1}}
	router := newLoginRouter(gw, newMemoryStore())

	w := postLogin(t, router, `{"correoElectronico":"eva@vesta.es","contrasena":"secreto"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["redirectUrl"] != "/admin/dashboard" {
		t.Fatalf("expected admin redirect, got %v", resp["redirectUrl"])
	}
}

func TestLoginSurfacesClientRejectionMessage(t *testing.T) {
	gw := &fakeAuthGateway{err: &gateway.Error{Kind: gateway.KindClientRejected, Message: "bad credentials"}}
	router := newLoginRouter(gw, newMemoryStore())

	w := postLogin(t, router, `{"correoElectronico":"ana@vesta.es","contrasena":"mal"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "bad credentials") {
		t.Fatalf("expected server message in body, got %s", w.Body.String())
	}
}

func TestLoginUnreachableGatewayIsServiceUnavailable(t *testing.T) {
	gw := &fakeAuthGateway{err: &gateway.Error{Kind: gateway.KindUnreachable, Message: "No se pudo conectar con el servidor."}}
	router := newLoginRouter(gw, newMemoryStore())

	w := postLogin(t, router, `{"correoElectronico":"ana@vesta.es","contrasena":"secreto"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}
