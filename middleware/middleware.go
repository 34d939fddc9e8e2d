package middleware

import (
	"net/http"
	"strings"
	"time"

	U "surveyor/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// scope constants.
const SCOPE_REQ_ID = "reqId"

// RequestIdGenerator assigns an id to each request for correlating
// handler and store log lines.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		U.SetScope(c, SCOPE_REQ_ID, uuid.New().String())
		c.Next()
	}
}

// Logger logs every request with id, status and latency after the
// handler chain completes.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"reqId":   U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(startTime).String(),
		}).Info("Request processed.")
	}
}

// Recovery converts handler panics into a generic 500 instead of
// killing the connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"reqId": U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
					"panic": r,
					"path":  c.Request.URL.Path,
				}).Error("Recovered from panic on request.")
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "Internal server error."})
			}
		}()
		c.Next()
	}
}

// RestrictHosts rejects requests whose Host header is not on the
// allowed list. No-op when the list is empty.
func RestrictHosts(allowedHosts []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(allowedHosts) == 0 {
			c.Next()
			return
		}

		host := c.Request.Host
		if i := strings.LastIndex(host, ":"); i != -1 {
			host = host[:i]
		}
		for _, allowed := range allowedHosts {
			if host == allowed || c.Request.Host == allowed {
				c.Next()
				return
			}
		}

		log.WithFields(log.Fields{"host": c.Request.Host}).Error("Request failed with disallowed host header.")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid host header."})
	}
}

// CustomCors for customised cors configuration based on environment.
// Allows all origins in development, configured origins otherwise.
func CustomCors(isDevelopment bool, origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	if isDevelopment {
		corsConfig.AllowAllOrigins = true
		return cors.New(corsConfig)
	}

	if len(origins) == 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	return cors.New(corsConfig)
}
