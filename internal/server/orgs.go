package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
)

type createOrganisationRequest struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Size         int64  `json:"size"`
	Headquarters string `json:"headquarters"`
	Industry     string `json:"industry"`
}

type createPositionRequest struct {
	Name string `json:"name"`
}

func (s *Server) ListOrganisations(c *gin.Context) {
	items, err := s.orgSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orgs": items})
}

func (s *Server) ListOrganisationNames(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	names, err := s.orgSvc.ListNames(c.Request.Context(), orgdomain.NamesQuery{
		Industry: strings.TrimSpace(c.Query("industry")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"org_names": names})
}

func (s *Server) SearchOrganisations(c *gin.Context) {
	limit, err := parseIntQuery(c, "limit", 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.orgSvc.Search(c.Request.Context(), orgdomain.SearchQuery{
		OrgName:  c.Query("org_name"),
		Industry: strings.TrimSpace(c.Query("industry")),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) CreateOrganisation(c *gin.Context) {
	var req createOrganisationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	org, err := s.orgSvc.Create(c.Request.Context(), orgdomain.CreateOrganisationRequest{
		Name:         req.Name,
		URL:          req.URL,
		Size:         req.Size,
		Headquarters: req.Headquarters,
		Industry:     req.Industry,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"org": org})
}

// GetOrganisation returns the organisation page and counts one visit.
func (s *Server) GetOrganisation(c *gin.Context) {
	orgID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	reviewLimit, err := parseIntQuery(c, "review_limit", 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	interviewLimit, err := parseIntQuery(c, "interview_limit", 0)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	org, err := s.orgSvc.Visit(ctx, orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	viewer := viewerID(c)
	posts, err := s.postSvc.ListCombined(ctx,
		postdomain.ListQuery{OrgID: orgID, Limit: reviewLimit, ViewerID: viewer},
		postdomain.ListQuery{OrgID: orgID, Limit: interviewLimit, ViewerID: viewer},
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	positions, err := s.orgSvc.ListPositions(ctx, orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"org":                org,
		"reviews":            posts.Reviews,
		"no_more_reviews":    posts.ReviewPage.NoMore,
		"interviews":         posts.Interviews,
		"no_more_interviews": posts.InterviewPage.NoMore,
		"positions":          positions,
	})
}

func (s *Server) ListPositions(c *gin.Context) {
	orgID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	positions, err := s.orgSvc.ListPositions(c.Request.Context(), orgID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"positions": positions})
}

func (s *Server) CreatePosition(c *gin.Context) {
	orgID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req createPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	position, err := s.orgSvc.EnsurePosition(c.Request.Context(), orgID, req.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"position": position})
}

func (s *Server) ListOrganisationReviews(c *gin.Context) {
	q, ok := s.orgListQuery(c)
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

func (s *Server) ListOrganisationInterviews(c *gin.Context) {
	q, ok := s.orgListQuery(c)
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

func (s *Server) ListOrganisationPosts(c *gin.Context) {
	q, ok := s.orgListQuery(c)
	if !ok {
		return
	}

	page, err := s.postSvc.ListCombined(c.Request.Context(), q, q)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// orgListQuery parses the shared filter parameters of organisation post
// listings. It aborts the request and returns false on invalid input.
func (s *Server) orgListQuery(c *gin.Context) (postdomain.ListQuery, bool) {
	orgID, err := parseIDParam(c, "id")
	if err != nil {
		AbortWithError(c, err)
		return postdomain.ListQuery{}, false
	}
	positionID, err := parseInt64Query(c, "position_id")
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
		OrgID:      orgID,
		PositionID: positionID,
		Tag:        strings.TrimSpace(c.Query("tag")),
		SortOrder:  strings.TrimSpace(c.Query("sort_order")),
		Limit:      limit,
		Offset:     offset,
		ViewerID:   viewerID(c),
	}, true
}
