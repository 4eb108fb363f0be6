// Package middleware provides the gin middleware for the park API.
//
// Go Learning Note: Middleware Chains (Gin):
// A gin middleware is just a gin.HandlerFunc. Each one either calls c.Next()
// to hand over to the rest of the chain or c.Abort() to stop it after writing
// a response. Route groups attach middleware with .Use(), so the staff-only
// routes are a nested group that adds RequireEmployee on top of MockAuth.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Keys under which MockAuth stores the caller in the gin.Context.
const (
	UserIDKey   = "user_id"
	UserTypeKey = "user_type"

	UserTypeEmployee = "employee"
	UserTypeVisitor  = "visitor"
)

// MockAuth reads "Authorization: Bearer <user-id>" and derives the caller's
// role from the id prefix: "employee-" for park staff, "visitor-" for guests.
// Nothing is verified; a real deployment would check a signed token here.
//
// Go Learning Note: c.Set / c.Get:
// Values stored with c.Set live for the current request only. Handlers read
// them back through GetUserID/GetUserType rather than touching the keys.
func MockAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		scheme, userID, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "bearer") || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		var userType string
		switch {
		case strings.HasPrefix(userID, "employee-"):
			userType = UserTypeEmployee
		case strings.HasPrefix(userID, "visitor-"):
			userType = UserTypeVisitor
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user id format"})
			c.Abort()
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(UserTypeKey, userType)
		c.Next()
	}
}

// RequireEmployee rejects every caller that is not park staff. It must run
// after MockAuth.
func RequireEmployee() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserType(c) != UserTypeEmployee {
			c.JSON(http.StatusForbidden, gin.H{"error": "employee access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID returns the caller id set by MockAuth.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetUserType returns "employee" or "visitor".
func GetUserType(c *gin.Context) string {
	return c.GetString(UserTypeKey)
}
