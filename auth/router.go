package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandlerFunc receives the verified identity of the caller
type HandlerFunc func(c *gin.Context, identity *Identity)

// Router is a wrapper that verifies the bearer token before the handler runs
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	tokenStr := ExtractBearer(c)
	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrNoToken.Error()})
		return
	}
	identity, err := VerifyToken(tokenStr)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": ErrInvalidToken.Error()})
		return
	}
	handler(c, identity)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
