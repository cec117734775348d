package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/smallbiznis/ratrace/internal/account/domain"
	"github.com/smallbiznis/ratrace/internal/account/session"
	"github.com/smallbiznis/ratrace/internal/authorization"
	"github.com/smallbiznis/ratrace/internal/config"
	"github.com/smallbiznis/ratrace/internal/observability"
	orgdomain "github.com/smallbiznis/ratrace/internal/organisation/domain"
	postdomain "github.com/smallbiznis/ratrace/internal/post/domain"
	"github.com/smallbiznis/ratrace/internal/ranking"
	"github.com/smallbiznis/ratrace/internal/ratelimit"
	votedomain "github.com/smallbiznis/ratrace/internal/vote/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "session-token"

type fakeAccountService struct {
	account *accountdomain.Account
}

func (f *fakeAccountService) Register(ctx context.Context, req accountdomain.RegisterRequest) (*accountdomain.LoginResult, error) {
	return &accountdomain.LoginResult{
		Account:   &accountdomain.Account{ID: 7, Username: req.Username},
		RawToken:  testToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAccountService) Login(ctx context.Context, req accountdomain.LoginRequest) (*accountdomain.LoginResult, error) {
	if req.Password != "correct-horse" {
		return nil, accountdomain.ErrInvalidCredentials
	}
	return &accountdomain.LoginResult{
		Account:   f.account,
		RawToken:  testToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAccountService) Logout(ctx context.Context, rawToken string) error {
	return nil
}

func (f *fakeAccountService) Authenticate(ctx context.Context, rawToken string) (*accountdomain.Account, error) {
	if rawToken != testToken || f.account == nil {
		return nil, accountdomain.ErrInvalidSession
	}
	return f.account, nil
}

func (f *fakeAccountService) Get(ctx context.Context, id int64) (*accountdomain.Account, error) {
	if f.account == nil || f.account.ID != id {
		return nil, accountdomain.ErrNotFound
	}
	return f.account, nil
}

func (f *fakeAccountService) UpdatePreferences(ctx context.Context, accountID int64, req accountdomain.PreferencesRequest) (*accountdomain.Account, error) {
	updated := *f.account
	if req.Anonymous != nil {
		updated.Anonymous = *req.Anonymous
	}
	if req.DarkMode != nil {
		updated.DarkMode = *req.DarkMode
	}
	return &updated, nil
}

func (f *fakeAccountService) EnsureAdmin(ctx context.Context, username, password string) (*accountdomain.Account, error) {
	return nil, nil
}

type fakeAuthzService struct {
	denied map[string]bool
}

func (f *fakeAuthzService) Authorize(ctx context.Context, accountType string, object string, action string) error {
	if f.denied[accountType+":"+action] {
		return authorization.ErrForbidden
	}
	return nil
}

type fakeOrgService struct {
	org         *orgdomain.Organisation
	visits      int
	lastNames   orgdomain.NamesQuery
	createCalls int
}

func (f *fakeOrgService) Create(ctx context.Context, req orgdomain.CreateOrganisationRequest) (*orgdomain.Organisation, error) {
	f.createCalls++
	return &orgdomain.Organisation{ID: 2, Name: req.Name}, nil
}

func (f *fakeOrgService) List(ctx context.Context) ([]orgdomain.NameItem, error) {
	return []orgdomain.NameItem{{ID: 1, Name: "Acme"}}, nil
}

func (f *fakeOrgService) ListNames(ctx context.Context, q orgdomain.NamesQuery) ([]ranking.Ranked, error) {
	f.lastNames = q
	return []ranking.Ranked{{ID: 1, Label: "Acme", Weight: 1}}, nil
}

func (f *fakeOrgService) Search(ctx context.Context, q orgdomain.SearchQuery) (*orgdomain.SearchResult, error) {
	return &orgdomain.SearchResult{Orgs: []orgdomain.Organisation{}, NoMore: true}, nil
}

func (f *fakeOrgService) Visit(ctx context.Context, id int64) (*orgdomain.Organisation, error) {
	if f.org == nil || f.org.ID != id {
		return nil, orgdomain.ErrNotFound
	}
	f.visits++
	return f.org, nil
}

func (f *fakeOrgService) Get(ctx context.Context, id int64) (*orgdomain.Organisation, error) {
	if f.org == nil || f.org.ID != id {
		return nil, orgdomain.ErrNotFound
	}
	return f.org, nil
}

func (f *fakeOrgService) ListPositions(ctx context.Context, orgID int64) ([]orgdomain.PositionSummary, error) {
	return []orgdomain.PositionSummary{{ID: 3, Name: "Engineer", TotalReviews: 1}}, nil
}

func (f *fakeOrgService) EnsurePosition(ctx context.Context, orgID int64, name string) (*orgdomain.Position, error) {
	return &orgdomain.Position{ID: 3, Name: name, OrgID: orgID}, nil
}

type fakePostService struct {
	deleteErr    error
	lastReviewQ  postdomain.ListQuery
	createdCalls int
}

func (f *fakePostService) CreateReview(ctx context.Context, req postdomain.CreateReviewRequest) (*postdomain.Review, error) {
	f.createdCalls++
	return &postdomain.Review{ID: 11, AccountID: req.AccountID, OrgID: req.OrgID}, nil
}

func (f *fakePostService) CreateInterview(ctx context.Context, req postdomain.CreateInterviewRequest) (*postdomain.Interview, error) {
	f.createdCalls++
	return &postdomain.Interview{ID: 12, AccountID: req.AccountID, OrgID: req.OrgID}, nil
}

func (f *fakePostService) Delete(ctx context.Context, accountID, postID int64, kind postdomain.Kind) error {
	return f.deleteErr
}

func (f *fakePostService) ListReviews(ctx context.Context, q postdomain.ListQuery) (*postdomain.ReviewPage, error) {
	f.lastReviewQ = q
	return &postdomain.ReviewPage{Reviews: []postdomain.ReviewView{}, NoMore: true}, nil
}

func (f *fakePostService) ListInterviews(ctx context.Context, q postdomain.ListQuery) (*postdomain.InterviewPage, error) {
	return &postdomain.InterviewPage{Interviews: []postdomain.InterviewView{}, NoMore: true}, nil
}

func (f *fakePostService) ListCombined(ctx context.Context, reviews, interviews postdomain.ListQuery) (*postdomain.CombinedPage, error) {
	f.lastReviewQ = reviews
	return &postdomain.CombinedPage{
		ReviewPage:    postdomain.ReviewPage{Reviews: []postdomain.ReviewView{}, NoMore: true},
		InterviewPage: postdomain.InterviewPage{Interviews: []postdomain.InterviewView{}, NoMore: false},
	}, nil
}

type fakeVoteService struct {
	casts []votedomain.CastRequest
}

func (f *fakeVoteService) Cast(ctx context.Context, req votedomain.CastRequest) error {
	if _, err := votedomain.Normalize(req.Vote); err != nil {
		return err
	}
	f.casts = append(f.casts, req)
	return nil
}

func (f *fakeVoteService) Retract(ctx context.Context, accountID, postID int64, kind postdomain.Kind) error {
	return nil
}

func (f *fakeVoteService) ListByAccount(ctx context.Context, accountID int64, kind postdomain.Kind) ([]votedomain.VoteView, error) {
	return []votedomain.VoteView{}, nil
}

type testDeps struct {
	accounts *fakeAccountService
	authz    *fakeAuthzService
	orgs     *fakeOrgService
	posts    *fakePostService
	votes    *fakeVoteService
	limiter  *ratelimit.WriteLimiter
}

func newTestDeps() *testDeps {
	return &testDeps{
		accounts: &fakeAccountService{account: &accountdomain.Account{
			ID:       7,
			Username: "alice",
			Status:   accountdomain.StatusActive,
			Type:     accountdomain.TypeUser,
		}},
		authz: &fakeAuthzService{denied: map[string]bool{
			"user:" + authorization.ActionOrganisationCreate: true,
		}},
		orgs:  &fakeOrgService{org: &orgdomain.Organisation{ID: 1, Name: "Acme", PageVisits: 1}},
		posts: &fakePostService{},
		votes: &fakeVoteService{},
	}
}

func newTestRouter(d *testDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandlingMiddleware())

	NewServer(ServerParams{
		Gin:        router,
		Listing:    config.NewStaticListingConfigHolder(config.DefaultListingConfig()),
		Log:        zap.NewNop(),
		Sessions:   session.NewManager(config.Config{}),
		AccountSvc: d.accounts,
		AuthzSvc:   d.authz,
		OrgSvc:     d.orgs,
		PostSvc:    d.posts,
		VoteSvc:    d.votes,
		Limiter:    d.limiter,
	})
	return router
}

func doRequest(router *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.AddCookie(&http.Cookie{Name: session.DefaultCookieName, Value: testToken})
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Error
}

func TestEngineHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewEngine(observability.Config{LogLevel: "debug"}, config.Config{HTTPRequestTimeout: time.Second})

	resp := doRequest(engine, http.MethodGet, "/health", "", false)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
}

func TestCastVoteRequiresSession(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodPut, "/account/vote", `{"post_id":1,"vote":1,"vote_model_type":"ReviewVote"}`, false)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "unauthorized", decodeError(t, resp).Type)
	assert.Empty(t, d.votes.casts)
}

func TestCastVoteForwardsRequest(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodPut, "/account/vote",
		`{"post_id":5,"vote":-3,"already_upvoted":true,"vote_model_type":"InterviewVote"}`, true)

	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, d.votes.casts, 1)
	cast := d.votes.casts[0]
	assert.Equal(t, int64(7), cast.AccountID)
	assert.Equal(t, int64(5), cast.PostID)
	assert.Equal(t, postdomain.KindInterview, cast.Kind)
	assert.Equal(t, -3, cast.Vote)
	assert.True(t, cast.HadPreviousVote)
}

func TestCastVoteRejectsZeroAndMissingVote(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	for _, body := range []string{
		`{"post_id":5,"vote":0,"vote_model_type":"review"}`,
		`{"post_id":5,"vote_model_type":"review"}`,
	} {
		resp := doRequest(router, http.MethodPut, "/account/vote", body, true)
		require.Equal(t, http.StatusBadRequest, resp.Code, body)
		payload := decodeError(t, resp)
		require.Len(t, payload.Errors, 1)
		assert.Equal(t, "invalid_vote", payload.Errors[0].Code)
	}
	assert.Empty(t, d.votes.casts)
}

func TestCastVoteRejectsUnknownKind(t *testing.T) {
	router := newTestRouter(newTestDeps())

	resp := doRequest(router, http.MethodPut, "/account/vote", `{"post_id":5,"vote":1,"vote_model_type":"comment"}`, true)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "invalid_post_type", decodeError(t, resp).Errors[0].Code)
}

func TestWritesRejectSuspendedAccount(t *testing.T) {
	d := newTestDeps()
	d.accounts.account.Status = accountdomain.StatusSuspended
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodPut, "/account/vote", `{"post_id":5,"vote":1,"vote_model_type":"review"}`, true)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Empty(t, d.votes.casts)
}

func TestDeletePostForbidden(t *testing.T) {
	d := newTestDeps()
	d.posts.deleteErr = postdomain.ErrForbidden
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodPost, "/account/delete-post", `{"post_id":9,"post_type":"review"}`, true)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "forbidden", decodeError(t, resp).Type)
}

func TestDeletePostNotFound(t *testing.T) {
	d := newTestDeps()
	d.posts.deleteErr = postdomain.ErrNotFound
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodPost, "/account/delete-post", `{"post_id":9,"post_type":"interview"}`, true)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateOrganisationRequiresAdmin(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	body := `{"name":"Acme","url":"https://acme.test","headquarters":"London","industry":"TECH"}`
	resp := doRequest(router, http.MethodPost, "/orgs", body, true)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, 0, d.orgs.createCalls)

	d.accounts.account.Type = accountdomain.TypeAdmin
	resp = doRequest(router, http.MethodPost, "/orgs", body, true)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, 1, d.orgs.createCalls)
}

func TestListOrganisationNames(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodGet, "/orgs/get_names?limit=10&offset=2&industry=All", "", false)

	require.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		OrgNames []struct {
			ID    int64  `json:"id"`
			Label string `json:"label"`
		} `json:"org_names"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.OrgNames, 1)
	assert.Equal(t, "Acme", body.OrgNames[0].Label)
	assert.Equal(t, orgdomain.NamesQuery{Industry: "All", Limit: 10, Offset: 2}, d.orgs.lastNames)
}

func TestListOrganisationNamesRejectsNegativeLimit(t *testing.T) {
	router := newTestRouter(newTestDeps())

	resp := doRequest(router, http.MethodGet, "/orgs/get_names?limit=-1", "", false)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetOrganisationCountsVisit(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodGet, "/orgs/1?review_limit=3", "", true)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, d.orgs.visits)
	assert.Equal(t, 3, d.posts.lastReviewQ.Limit)
	assert.Equal(t, int64(7), d.posts.lastReviewQ.ViewerID)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	for _, key := range []string{"org", "reviews", "no_more_reviews", "interviews", "no_more_interviews", "positions"} {
		assert.Contains(t, body, key)
	}
}

func TestGetOrganisationNotFound(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodGet, "/orgs/404", "", false)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, 0, d.orgs.visits)
}

func TestOrganisationReviewsParsesFilters(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodGet, "/orgs/1/reviews?position_id=3&tag=good&sort_order=upvotes&limit=5&offset=10", "", false)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, postdomain.ListQuery{
		OrgID:      1,
		PositionID: 3,
		Tag:        "good",
		SortOrder:  "upvotes",
		Limit:      5,
		Offset:     10,
	}, d.posts.lastReviewQ)
}

func TestAccountProfileUsesPreviewLimit(t *testing.T) {
	d := newTestDeps()
	router := newTestRouter(d)

	resp := doRequest(router, http.MethodGet, "/account/7", "", false)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, config.DefaultListingConfig().AccountPreviewLimit, d.posts.lastReviewQ.Limit)
	assert.Equal(t, int64(7), d.posts.lastReviewQ.AccountID)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	router := newTestRouter(newTestDeps())

	resp := doRequest(router, http.MethodPost, "/account/login", `{"username":"alice","password":"correct-horse"}`, false)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Set-Cookie"), session.DefaultCookieName+"="+testToken)

	resp = doRequest(router, http.MethodPost, "/account/login", `{"username":"alice","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMeRequiresSession(t *testing.T) {
	router := newTestRouter(newTestDeps())

	assert.Equal(t, http.StatusUnauthorized, doRequest(router, http.MethodGet, "/account/me", "", false).Code)
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodGet, "/account/me", "", true).Code)
}

func TestWriteRateLimit(t *testing.T) {
	d := newTestDeps()
	d.limiter = ratelimit.NewWriteLimiterWithBucket(ratelimit.NewLocalBucket(0.001, 1), zap.NewNop())
	router := newTestRouter(d)

	body := `{"post_id":5,"vote":1,"vote_model_type":"review"}`
	assert.Equal(t, http.StatusOK, doRequest(router, http.MethodPut, "/account/vote", body, true).Code)

	resp := doRequest(router, http.MethodPut, "/account/vote", body, true)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "rate_limited", decodeError(t, resp).Type)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(newTestDeps())

	resp := doRequest(router, http.MethodGet, "/nope", "", false)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "not_found", decodeError(t, resp).Type)
}
