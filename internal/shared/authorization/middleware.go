package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dutywire/internal/shared/constants"
)

// RequireSupervisor aborts the request unless the authenticated caller holds
// the supervisor role.
func RequireSupervisor() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := ParseUserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsSupervisor() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "supervisor access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanWithdrawSignup reports whether the caller may withdraw the given signup:
// its owning officer, or any supervisor.
func CanWithdrawSignup(callerID string, role UserRole, signupOfficerID string) bool {
	if role.IsSupervisor() {
		return true
	}
	return callerID == signupOfficerID
}
