package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/interior-consult/session"
	"github.com/yeremiapane/interior-consult/utils"
)

const identityKey = "company_identity"

// CompanySession resolves the caller's company and stores it in the context.
// Requests without an identity continue anonymously.
func CompanySession(resolver session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request)
		if err != nil && !errors.Is(err, session.ErrNoIdentity) {
			utils.ErrorLogger.Printf("Resolving company identity failed: %v", err)
		}
		if err == nil && id.Valid() {
			c.Set(identityKey, id)
		}
		c.Next()
	}
}

// RequireCompany rejects requests without a company identity.
func RequireCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Identity(c).Valid() {
			utils.RespondError(c, utils.ErrLoginRequired)
			return
		}
		c.Next()
	}
}

// Identity returns the resolved company, or the zero Identity.
func Identity(c *gin.Context) session.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(session.Identity); ok {
			return id
		}
	}
	return session.Identity{}
}
