package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	jwtutil "github.com/Stefan-migo/businessManagementApp-sub001/app/jwt"
	"github.com/Stefan-migo/businessManagementApp-sub001/global"

	"github.com/rs/zerolog"
)

func TestMain(m *testing.M) {
	global.Logger = zerolog.Nop()
	os.Exit(m.Run())
}

func newTestAuth() (*Auth, *jwtutil.Signer) {
	signer := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "admin-backend", ExpMin: 5}
	return &Auth{Signer: signer}, signer
}

func TestRequireAdmin(t *testing.T) {
	auth, signer := newTestAuth()
	adminToken, err := signer.Sign(1, "admin", "admin")
	if err != nil {
		t.Fatalf("sign admin: %v", err)
	}
	viewerToken, err := signer.Sign(2, "viewer", "viewer")
	if err != nil {
		t.Fatalf("sign viewer: %v", err)
	}
	otherSigner := &jwtutil.Signer{Secret: []byte("wrong-secret"), Issuer: "admin-backend", ExpMin: 5}
	forgedToken, err := otherSigner.Sign(1, "admin", "admin")
	if err != nil {
		t.Fatalf("sign forged: %v", err)
	}

	var gotClaims *jwtutil.Claims
	handler := auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = GetClaims(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authz      string
		wantStatus int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong key", "Bearer " + forgedToken, http.StatusUnauthorized},
		{"non-admin role", "Bearer " + viewerToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/backups", nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	if gotClaims == nil || gotClaims.Username != "admin" || gotClaims.Role != "admin" {
		t.Fatalf("claims not propagated: %+v", gotClaims)
	}
}

func TestRequireAuthAcceptsAnyRole(t *testing.T) {
	auth, signer := newTestAuth()
	token, err := signer.Sign(2, "viewer", "viewer")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", rec.Code)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	auth, _ := newTestAuth()
	expiredSigner := &jwtutil.Signer{Secret: []byte("test-secret"), Issuer: "admin-backend", ExpMin: -5}
	token, err := expiredSigner.Sign(1, "admin", "admin")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	handler := auth.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/admin/backups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
