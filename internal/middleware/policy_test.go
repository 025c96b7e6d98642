package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		role   string
		action Action
		want   bool
	}{
		{RoleClient, ActionScheduleCreate, true},
		{RoleBarber, ActionScheduleCreate, true},
		{RoleBarber, ActionScheduleTransfer, true},
		{RoleClient, ActionScheduleTransfer, false},
		{RoleBarber, ActionProfileWrite, true},
		{RoleClient, ActionProfileWrite, false},
		{RoleClient, ActionRatingWrite, true},
		{RoleBarber, ActionRatingWrite, false},
		{RoleBarber, ActionClientList, true},
		{RoleClient, ActionClientList, false},
		{RoleClient, ActionClientWrite, true},
		{RoleBarber, ActionClientWrite, false},
		{RoleBarber, ActionAuditRead, true},
		{RoleClient, ActionAuditRead, false},
		{"admin", ActionScheduleRead, false},
		{"", ActionScheduleRead, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.role, tc.action),
			"role=%q action=%q", tc.role, tc.action)
	}
}

func TestRequireAction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	call := func(role string, action Action) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/t", func(c *gin.Context) {
			if role != "" {
				c.Set(ContextUserRole, role)
			}
		}, RequireAction(action), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/t", nil))
		return w
	}

	assert.Equal(t, http.StatusNoContent, call(RoleBarber, ActionScheduleTransfer).Code)
	assert.Equal(t, http.StatusForbidden, call(RoleClient, ActionScheduleTransfer).Code)
	assert.Equal(t, http.StatusForbidden, call("", ActionScheduleRead).Code)
}
