package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	votedomain "github.com/smallbiznis/ratrace/internal/vote/domain"
)

type castVoteRequest struct {
	PostID           int64  `json:"post_id"`
	Vote             *int   `json:"vote"`
	AlreadyUpvoted   bool   `json:"already_upvoted"`
	AlreadyDownvoted bool   `json:"already_downvoted"`
	VoteModelType    string `json:"vote_model_type"`
}

type retractVoteRequest struct {
	PostID        int64  `json:"post_id"`
	VoteModelType string `json:"vote_model_type"`
}

func (s *Server) CastVote(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Vote == nil {
		AbortWithError(c, votedomain.ErrInvalidVote)
		return
	}
	if req.PostID <= 0 {
		AbortWithError(c, newValidationError("post_id", "required", "post_id is required"))
		return
	}

	kind, err := postdomain.ParseKind(req.VoteModelType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.voteSvc.Cast(c.Request.Context(), votedomain.CastRequest{
		AccountID:       account.ID,
		PostID:          req.PostID,
		Kind:            kind,
		Vote:            *req.Vote,
		HadPreviousVote: req.AlreadyUpvoted || req.AlreadyDownvoted,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) RetractVote(c *gin.Context) {
	account, ok := accountFromContext(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req retractVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.PostID <= 0 {
		AbortWithError(c, newValidationError("post_id", "required", "post_id is required"))
		return
	}

	kind, err := postdomain.ParseKind(req.VoteModelType)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.voteSvc.Retract(c.Request.Context(), account.ID, req.PostID, kind); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
