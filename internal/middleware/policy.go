package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Action names a protected operation. The policy table below is the single
// place that says which role may attempt which action; ownership (does this
// schedule/profile belong to the caller) is enforced by the use cases.
type Action string

const (
	ActionScheduleCreate   Action = "schedule:create"
	ActionScheduleRead     Action = "schedule:read"
	ActionScheduleUpdate   Action = "schedule:update"
	ActionScheduleDelete   Action = "schedule:delete"
	ActionScheduleTransfer Action = "schedule:transfer"

	ActionProfileWrite Action = "profile:write"
	ActionRatingWrite  Action = "profile:rate"

	ActionBarberWrite Action = "barber:write"
	ActionClientList  Action = "client:list"
	ActionClientRead  Action = "client:read"
	ActionClientWrite Action = "client:write"

	ActionAuditRead Action = "audit:read"
)

var policy = map[Action][]string{
	ActionScheduleCreate:   {RoleBarber, RoleClient},
	ActionScheduleRead:     {RoleBarber, RoleClient},
	ActionScheduleUpdate:   {RoleBarber, RoleClient},
	ActionScheduleDelete:   {RoleBarber, RoleClient},
	ActionScheduleTransfer: {RoleBarber},

	ActionProfileWrite: {RoleBarber},
	ActionRatingWrite:  {RoleClient},

	ActionBarberWrite: {RoleBarber},
	ActionClientList:  {RoleBarber},
	ActionClientRead:  {RoleBarber, RoleClient},
	ActionClientWrite: {RoleClient},

	ActionAuditRead: {RoleBarber},
}

// Allowed reports whether role may attempt action.
func Allowed(role string, action Action) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}

// RequireAction gates a route on the policy table. Runs after AuthMiddleware.
func RequireAction(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		roleStr, _ := role.(string)

		if !Allowed(roleStr, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error_code": "forbidden",
				"message":    "Seu perfil não tem permissão para esta ação.",
			})
			return
		}

		c.Next()
	}
}
