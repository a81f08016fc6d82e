package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
	"github.com/Bhaskar125/macro-tracking-webapp/middlewares"
	"github.com/Bhaskar125/macro-tracking-webapp/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

func userIDFromCtx(c *gin.Context) (uint, bool) {
	v, ok := c.Get(middlewares.CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// mustUser answers 401 and returns false when the request carries no user.
func mustUser(c *gin.Context) (uint, bool) {
	uid, ok := userIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return uid, ok
}

// respondError answers with the status for err's kind. Anything the API
// does not classify is logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrExportUnavailable),
		errors.Is(err, services.ErrPushUnavailable),
		errors.Is(err, services.ErrRecognitionUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case apperr.Known(err):
		c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
		return
	}
	_ = c.Error(err)
	middlewares.Logger(c, logrus.StandardLogger()).WithError(err).
		WithField("path", c.FullPath()).Error("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// location resolves ?tz=, falling back to the server default.
func location(c *gin.Context, fallback *time.Location) (*time.Location, bool) {
	name := c.Query("tz")
	if name == "" {
		if fallback == nil {
			fallback = time.UTC
		}
		return fallback, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		badRequest(c, "invalid tz")
		return nil, false
	}
	return loc, true
}

// dayParam reads a YYYY-MM-DD query parameter in loc, today when absent.
func dayParam(c *gin.Context, key string, loc *time.Location) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Now().In(loc), true
	}
	d, err := time.ParseInLocation(dateLayout, v, loc)
	if err != nil {
		badRequest(c, "invalid "+key)
		return time.Time{}, false
	}
	return d, true
}
