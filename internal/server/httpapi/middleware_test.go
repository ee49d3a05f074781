package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/server/auth"
)

var testSecret = []byte("test-secret")

func authedRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(testSecret)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": currentUserID(c)})
	})
	router.GET("/protected", handlers...)
	return router
}

func tokenFor(t *testing.T, id auth.Identity, secret []byte, validity time.Duration) string {
	t.Helper()
	tok, err := auth.GenerateToken(id, secret, validity)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return tok
}

func TestAuth_ValidToken(t *testing.T) {
	router := authedRouter()
	tok := tokenFor(t, auth.Identity{UserID: "u1", Email: "alice@x.com", Role: common.RoleMember}, testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rr.Code, rr.Body)
	}
}

func TestAuth_Rejections(t *testing.T) {
	router := authedRouter()

	expired := tokenFor(t, auth.Identity{UserID: "u1"}, testSecret, -time.Minute)
	wrongKey := tokenFor(t, auth.Identity{UserID: "u1"}, []byte("other-secret"), time.Hour)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("want 401, got %d", rr.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	router := authedRouter(RequireRole(common.RoleAdmin))

	adminTok := tokenFor(t, auth.Identity{UserID: "u1", Role: common.RoleAdmin}, testSecret, time.Hour)
	memberTok := tokenFor(t, auth.Identity{UserID: "u2", Role: common.RoleMember}, testSecret, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin must pass, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+memberTok)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("member must be forbidden, got %d", rr.Code)
	}
}
