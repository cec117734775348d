package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type preferencesRequest struct {
	DarkMode  *bool `json:"dark_mode"`
	Anonymous *bool `json:"anonymous"`
}

func (s *Server) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.accountSvc.Register(c.Request.Context(), accountdomain.RegisterRequest{
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusCreated, gin.H{"account": result.Account})
}

func (s *Server) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.accountSvc.Login(c.Request.Context(), accountdomain.LoginRequest{
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, result.RawToken, result.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{"account": result.Account})
}

func (s *Server) Logout(c *gin.Context) {
	token, ok := s.sessions.ReadToken(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.accountSvc.Logout(c.Request.Context(), token); err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

func (s *Server) Me(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

func (s *Server) UpdatePreferences(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	updated, err := s.accountSvc.UpdatePreferences(c.Request.Context(), account.ID, accountdomain.PreferencesRequest{
		DarkMode:  req.DarkMode,
		Anonymous: req.Anonymous,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": updated})
}

// GetAccount returns a profile with its newest reviews.
func (s *Server) GetAccount(c *gin.Context) {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	account, err := s.accountSvc.Get(ctx, accountID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	page, err := s.postSvc.ListReviews(ctx, postdomain.ListQuery{
		AccountID: accountID,
		Limit:     s.listing.Get().AccountPreviewLimit,
		ViewerID:  viewerID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": account,
		"reviews": page.Reviews,
	})
}

func (s *Server) ListAccountReviews(c *gin.Context) {
	q, ok := accountListQuery(c)
	if !ok {
		return
	}

	page, err := s.postSvc.ListReviews(c.Request.Context(), q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (s *Server) ListAccountInterviews(c *gin.Context) {
	q, ok := accountListQuery(c)
	if !ok {
		return
	}

	page, err := s.postSvc.ListInterviews(c.Request.Context(), q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (s *Server) ListAccountReviewVotes(c *gin.Context) {
	s.listAccountVotes(c, postdomain.KindReview, "review_votes")
}

func (s *Server) ListAccountInterviewVotes(c *gin.Context) {
	s.listAccountVotes(c, postdomain.KindInterview, "interview_votes")
}

func (s *Server) listAccountVotes(c *gin.Context, kind postdomain.Kind, key string) {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	votes, err := s.voteSvc.ListByAccount(c.Request.Context(), accountID, kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{key: votes})
}

// accountListQuery lists an account's posts newest first.
func accountListQuery(c *gin.Context) (postdomain.ListQuery, bool) {
	accountID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return postdomain.ListQuery{}, false
	}
	limit, err := parseIntQuery(c, "limit", 0)
	if err != nil {
		AbortWithError(c, err)
		return postdomain.ListQuery{}, false
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		AbortWithError(c, err)
		return postdomain.ListQuery{}, false
	}

	return postdomain.ListQuery{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
		ViewerID:  viewerID(c),
	}, true
}
