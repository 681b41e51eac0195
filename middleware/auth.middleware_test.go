package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o1egl/paseto"
)

var testSecretKey = []byte("0123456789abcdef0123456789abcdef")

func mintToken(t *testing.T, key []byte, subject string, admin bool, expiresIn time.Duration, footer string) string {
	t.Helper()
	now := time.Now()
	token := paseto.JSONToken{
		Subject:    subject,
		IssuedAt:   now.Add(-time.Minute),
		Expiration: now.Add(expiresIn),
	}
	if err := token.Set("admin", admin); err != nil {
		t.Fatalf("Failed to set claim: %v", err)
	}
	encrypted, err := paseto.NewV2().Encrypt(key, token, footer)
	if err != nil {
		t.Fatalf("Failed to encrypt token: %v", err)
	}
	return encrypted
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectValidToken(t *testing.T) {
	r := newTestRouter()
	var gotUserID string
	var gotAdmin bool
	r.GET("/secure", Protect(testSecretKey), func(c *gin.Context) {
		gotUserID = c.GetString(ContextUserID)
		gotAdmin = c.GetBool(ContextIsAdmin)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	token := mintToken(t, testSecretKey, "user-123", true, time.Hour, TokenFooter)
	w := performRequest(r, "Bearer "+token)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if gotUserID != "user-123" {
		t.Errorf("userID = %q, want user-123", gotUserID)
	}
	if !gotAdmin {
		t.Error("admin flag not propagated")
	}
}

func TestProtectMissingToken(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), func(c *gin.Context) {
		t.Error("handler must not run without a token")
	})

	if w := performRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtectMalformedToken(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), func(c *gin.Context) {
		t.Error("handler must not run with a malformed token")
	})

	if w := performRequest(r, "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtectExpiredToken(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), func(c *gin.Context) {
		t.Error("handler must not run with an expired token")
	})

	token := mintToken(t, testSecretKey, "user-123", false, -time.Hour, TokenFooter)
	if w := performRequest(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtectWrongKey(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), func(c *gin.Context) {
		t.Error("handler must not run with a token from another key")
	})

	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	token := mintToken(t, otherKey, "user-123", false, time.Hour, TokenFooter)
	if w := performRequest(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestProtectWrongFooter(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), func(c *gin.Context) {
		t.Error("handler must not run with a foreign footer")
	})

	token := mintToken(t, testSecretKey, "user-123", false, time.Hour, "other-app")
	if w := performRequest(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), AdminOnly(), func(c *gin.Context) {
		t.Error("handler must not run for a non-admin")
	})

	token := mintToken(t, testSecretKey, "user-123", false, time.Hour, TokenFooter)
	if w := performRequest(r, "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	r := newTestRouter()
	r.GET("/secure", Protect(testSecretKey), AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	token := mintToken(t, testSecretKey, "admin-1", true, time.Hour, TokenFooter)
	if w := performRequest(r, "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
