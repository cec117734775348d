package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/ratrace/internal/authorization"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
)

type postReviewRequest struct {
	OrgID         int64   `json:"org_id"`
	PositionID    int64   `json:"position_id"`
	Position      string  `json:"position"`
	Salary        int64   `json:"salary"`
	Currency      string  `json:"currency"`
	Location      string  `json:"location"`
	DurationYears float64 `json:"duration_years"`
	Body          string  `json:"body"`
	Tag           string  `json:"tag"`
}

type postInterviewRequest struct {
	OrgID      int64  `json:"org_id"`
	PositionID int64  `json:"position_id"`
	Position   string `json:"position"`
	Offer      int64  `json:"offer"`
	Currency   string `json:"currency"`
	Location   string `json:"location"`
	Stages     int    `json:"stages"`
	Body       string `json:"body"`
	Tag        string `json:"tag"`
}

type deletePostRequest struct {
	PostID   int64  `json:"post_id"`
	PostType string `json:"post_type"`
}

func (s *Server) PostReview(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req postReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OrgID <= 0 {
		AbortWithError(c, newValidationError("org_id", "required", "org_id is required"))
		return
	}

	review, err := s.postSvc.CreateReview(c.Request.Context(), postdomain.CreateReviewRequest{
		AccountID:     account.ID,
		OrgID:         req.OrgID,
		Position:      postdomain.PositionRef{ID: req.PositionID, Name: req.Position},
		Salary:        req.Salary,
		Currency:      req.Currency,
		Location:      req.Location,
		DurationYears: req.DurationYears,
		Body:          req.Body,
		Tag:           req.Tag,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (s *Server) PostInterview(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req postInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.OrgID <= 0 {
		AbortWithError(c, newValidationError("org_id", "required", "org_id is required"))
		return
	}

	interview, err := s.postSvc.CreateInterview(c.Request.Context(), postdomain.CreateInterviewRequest{
		AccountID: account.ID,
		OrgID:     req.OrgID,
		Position:  postdomain.PositionRef{ID: req.PositionID, Name: req.Position},
		Offer:     req.Offer,
		Currency:  req.Currency,
		Location:  req.Location,
		Stages:    req.Stages,
		Body:      req.Body,
		Tag:       req.Tag,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"interview": interview})
}

func (s *Server) DeletePost(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req deletePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.PostID <= 0 {
		AbortWithError(c, newValidationError("post_id", "required", "post_id is required"))
		return
	}

	kind, err := postdomain.ParseKind(req.PostType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := s.authzSvc.Authorize(ctx, string(account.Type), kindObject(kind), kindDeleteAction(kind)); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.postSvc.Delete(ctx, account.ID, req.PostID, kind); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func kindObject(kind postdomain.Kind) string {
	if kind == postdomain.KindInterview {
		return authorization.ObjectInterview
	}
	return authorization.ObjectReview
}

func kindDeleteAction(kind postdomain.Kind) string {
	if kind == postdomain.KindInterview {
		return authorization.ActionInterviewDelete
	}
	return authorization.ActionReviewDelete
}
