package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const testSecret = "test-secret"

func authTestRouter(t *testing.T) (*gin.Engine, *primitive.ObjectID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen primitive.ObjectID
	r := gin.New()
	r.GET("/protected", UserAuth(testSecret), func(c *gin.Context) {
		value, _ := c.Get("userId")
		seen = value.(primitive.ObjectID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, &seen
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token failed: %v", err)
	}
	return token
}

func TestUserAuthRejectsMissingToken(t *testing.T) {
	r, _ := authTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/protected", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUserAuthRejectsMalformedHeader(t *testing.T) {
	r, _ := authTestRouter(t)
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc.def.ghi")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestUserAuthRejectsExpiredToken(t *testing.T) {
	r, _ := authTestRouter(t)
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}
}

func TestUserAuthRejectsWrongSecret(t *testing.T) {
	r, _ := authTestRouter(t)
	token := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, "other-secret")

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", w.Code)
	}
}

func TestUserAuthRejectsMissingUserIDClaim(t *testing.T) {
	r, _ := authTestRouter(t)
	token := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing userId claim, got %d", w.Code)
	}
}

func TestUserAuthInjectsUserID(t *testing.T) {
	r, seen := authTestRouter(t)
	userID := primitive.NewObjectID()
	token := signToken(t, jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *seen != userID {
		t.Fatalf("expected userId %s in context, got %s", userID.Hex(), seen.Hex())
	}
}
