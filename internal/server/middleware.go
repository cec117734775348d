package server

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	obscontext "github.com/smallbiznis/ratrace/internal/observability/context"
	"github.com/smallbiznis/ratrace/internal/ratelimit"
)

const contextAccountKey = "account"

// RequestTimeout bounds the handler chain with a context deadline.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AuthRequired resolves the session token to an account or aborts with 401.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		account, err := s.accountSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		s.setAccount(c, account)
		c.Next()
	}
}

// OptionalAuth attaches the account when a valid session is present and
// continues anonymously otherwise.
func (s *Server) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if ok {
			if account, err := s.accountSvc.Authenticate(c.Request.Context(), token); err == nil {
				s.setAccount(c, account)
			}
		}
		c.Next()
	}
}

// RequireActive rejects accounts that are suspended or inactive.
func (s *Server) RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := accountFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !account.IsActive() {
			AbortWithError(c, accountdomain.ErrInactive)
			return
		}
		c.Next()
	}
}

// Authorize checks the account type against the policy for object/action.
func (s *Server) Authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := accountFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), string(account.Type), object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// RateLimit draws one write token per request for the current account.
func (s *Server) RateLimit(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := accountFromContext(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		res, err := s.limiter.AllowAccount(c.Request.Context(), endpoint, account.ID)
		if err != nil {
			if errors.Is(err, ratelimit.ErrLimited) {
				s.obsMetrics.RecordRateLimitDenied(c.Request.Context(), endpoint, "account")
				if res != nil && res.RetryAfter > 0 {
					c.Header("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
				}
			}
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func (s *Server) setAccount(c *gin.Context, account *accountdomain.Account) {
	if account == nil {
		return
	}
	c.Set(contextAccountKey, account)
	ctx := obscontext.WithAccountID(c.Request.Context(), account.ID)
	c.Request = c.Request.WithContext(ctx)
}

func accountFromContext(c *gin.Context) (*accountdomain.Account, bool) {
	value, ok := c.Get(contextAccountKey)
	if !ok {
		return nil, false
	}
	account, ok := value.(*accountdomain.Account)
	if !ok || account == nil {
		return nil, false
	}
	return account, true
}

// viewerID returns the authenticated account id, 0 for anonymous requests.
func viewerID(c *gin.Context) int64 {
	account, ok := accountFromContext(c)
	if !ok {
		return 0
	}
	return account.ID
}
