//go:build e2e

package authtest

import (
	"net/http"
	"testing"

	"salepoint/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginWorker authenticates against the real login endpoint and
// returns the issued token.
func LoginWorker(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	body := map[string]string{"email": email, "password": password}
	rec := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, rec.Code, "login should succeed for fixture worker")

	var resp struct {
		Token string `json:"token"`
	}
	httptest.DecodeJSON(t, rec, &resp)
	require.NotEmpty(t, resp.Token, "login response should carry a token")
	return resp.Token
}
