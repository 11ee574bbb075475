package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/damoang/pcmall-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(mgr *jwt.Manager, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CookieAuth(mgr, ""))
	r.GET("/test", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c), "bearer": AuthenticatedViaBearer(c)})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	adminToken, err := mgr.GenerateToken(1, "root", "admin")
	require.NoError(t, err)
	editorToken, err := mgr.GenerateToken(2, "ed", "editor")
	require.NoError(t, err)
	foreign, err := jwt.NewManager("other-secret", time.Hour).GenerateToken(1, "root", "admin")
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
		bearer string
		guard  gin.HandlerFunc
		want   int
	}{
		{"admin cookie", adminToken, "", RequireAdmin(), http.StatusOK},
		{"admin bearer", "", adminToken, RequireAdmin(), http.StatusOK},
		{"editor denied", editorToken, "", RequireAdmin(), http.StatusForbidden},
		{"editor is staff", editorToken, "", RequireStaff(), http.StatusOK},
		{"no token", "", "", RequireAdmin(), http.StatusUnauthorized},
		{"wrong signature", foreign, "", RequireAdmin(), http.StatusUnauthorized},
		{"bad cookie falls back to bearer", "garbage", adminToken, RequireAdmin(), http.StatusOK},
		{"anonymous passes RequireAuth only with token", "", "", RequireAuth(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(mgr, tt.guard)
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCookieAuth_SetsContext(t *testing.T) {
	mgr := jwt.NewManager("test-secret", time.Hour)
	token, err := mgr.GenerateToken(7, "root", "admin")
	require.NoError(t, err)

	r := newAuthRouter(mgr, RequireAdmin())
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"role":"admin","bearer":true}`, w.Body.String())
}
