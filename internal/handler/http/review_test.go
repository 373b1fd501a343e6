package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/victorverma3/ktpdatabase/pkg/health"
	"github.com/victorverma3/ktpdatabase/pkg/middleware"
	"github.com/victorverma3/ktpdatabase/pkg/pagination"

	"github.com/victorverma3/ktpdatabase/internal/domain"
	"github.com/victorverma3/ktpdatabase/internal/service"
)

// ============================================================================
// Mock repository
// ============================================================================

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Insert(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) ListByCourse(ctx context.Context, courseID string, params pagination.Params) ([]domain.Review, int, error) {
	args := m.Called(ctx, courseID, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *mockReviewRepository) ListProfessorsBySubject(ctx context.Context, subject domain.Subject) ([]string, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockReviewRepository) Aggregate(ctx context.Context, courseID, professorKey string) (domain.AggregateStats, error) {
	args := m.Called(ctx, courseID, professorKey)
	return args.Get(0).(domain.AggregateStats), args.Error(1)
}

// noopStatsCache misses every read and accepts every write.
type noopStatsCache struct{}

func (noopStatsCache) GetAggregate(context.Context, string, string) (*domain.AggregateStats, error) {
	return nil, nil
}
func (noopStatsCache) SetAggregate(context.Context, domain.AggregateStats) error { return nil }
func (noopStatsCache) GetProfessors(context.Context, domain.Subject) ([]domain.Professor, error) {
	return nil, nil
}
func (noopStatsCache) SetProfessors(context.Context, domain.Subject, []domain.Professor) error {
	return nil
}
func (noopStatsCache) InvalidateCourse(context.Context, string, domain.Subject) error { return nil }

// noopPublisher drops every event.
type noopPublisher struct{}

func (noopPublisher) PublishReviewSubmitted(context.Context, *domain.Review) error { return nil }

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testValidator(t *testing.T) middleware.TokenValidator {
	t.Helper()
	return func(token string) (*middleware.SessionUser, error) {
		if token != "valid-token" {
			return nil, assert.AnError
		}
		return &middleware.SessionUser{UserID: "user-1", Name: "Jane Student", Email: "jane@bu.edu"}, nil
	}
}

func setupRouter(t *testing.T, repo *mockReviewRepository) http.Handler {
	t.Helper()
	svc := service.NewReviewService(repo, noopStatsCache{}, nil, noopPublisher{}, testLogger())
	return NewRouter(svc, service.NewContentService(), testValidator(t), health.NewHandler(), RouterConfig{
		CORS:              middleware.DefaultCORSConfig(),
		StaticCacheMaxAge: 3600,
	}, testLogger())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func jsonRequest(method, target string, payload any) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(payload)
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ============================================================================
// POST /academics/courses/professors
// ============================================================================

func TestListProfessors_Success(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("ListProfessorsBySubject", mock.Anything, domain.SubjectComputerScience).
		Return([]string{"J. Doe", "A. Smith"}, nil)
	router := setupRouter(t, repo)

	req := jsonRequest(http.MethodPost, "/academics/courses/professors", map[string]string{"subject": "computer-science"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "A. Smith", data[0].(map[string]any)["name"])
}

func TestListProfessors_MissingSubject(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	req := jsonRequest(http.MethodPost, "/academics/courses/professors", map[string]string{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body["error"].(map[string]any)["code"])
}

func TestListProfessors_RequiresJSONContentType(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	req := httptest.NewRequest(http.MethodPost, "/academics/courses/professors", bytes.NewBufferString(`subject=cs`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

// ============================================================================
// POST /academics/courses/add-review
// ============================================================================

func validReviewPayload() map[string]any {
	return map[string]any{
		"id":         "CASCS111",
		"professor":  "J. Doe",
		"usefulness": 5,
		"difficulty": 3,
		"rating":     4,
		"review":     "Great class",
		"anon":       true,
	}
}

func TestAddReview_Success(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)
	router := setupRouter(t, repo)

	req := jsonRequest(http.MethodPost, "/academics/courses/add-review", validReviewPayload())
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "CASCS111", data["course_id"])
	assert.NotEmpty(t, data["id"])
	repo.AssertExpectations(t)
}

func TestAddReview_RequiresAuth(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	req := jsonRequest(http.MethodPost, "/academics/courses/add-review", validReviewPayload())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddReview_RejectsInvalidToken(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	req := jsonRequest(http.MethodPost, "/academics/courses/add-review", validReviewPayload())
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddReview_UnknownSubject(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	payload := validReviewPayload()
	payload["id"] = "XXXXX101"
	req := jsonRequest(http.MethodPost, "/academics/courses/add-review", payload)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "UNKNOWN_SUBJECT", body["error"].(map[string]any)["code"])
}

func TestAddReview_MissingRating(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	payload := validReviewPayload()
	delete(payload, "rating")
	req := jsonRequest(http.MethodPost, "/academics/courses/add-review", payload)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	errResp := body["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_ERROR", errResp["code"])
	assert.Contains(t, errResp["fields"], "Rating")
}

func TestAddReview_OutOfRangeRating(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	payload := validReviewPayload()
	payload["rating"] = 9
	req := jsonRequest(http.MethodPost, "/academics/courses/add-review", payload)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

// ============================================================================
// GET /academics/courses/{courseID}/reviews
// ============================================================================

func TestListCourseReviews_Success(t *testing.T) {
	repo := new(mockReviewRepository)
	stored := []domain.Review{
		{ID: "rev-1", CourseID: "CASCS111", Reviewer: "Jane Student", Anonymous: false, Rating: 4},
		{ID: "rev-2", CourseID: "CASCS111", Reviewer: "Sam Student", ReviewerEmail: "sam@bu.edu", Anonymous: true, Rating: 5},
	}
	repo.On("ListByCourse", mock.Anything, "CASCS111", pagination.Params{Page: 1, PerPage: 20}).
		Return(stored, 2, nil)
	repo.On("Aggregate", mock.Anything, "CASCS111", "").
		Return(domain.NewAggregateStats("CASCS111", "", 2, 9, 5, 9), nil)
	router := setupRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/academics/courses/CASCS111/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	data := body["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "Anonymous", data[1].(map[string]any)["reviewer"])
	assert.Equal(t, float64(2), body["total_count"])

	stats := body["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["count"])
	assert.Equal(t, 4.5, stats["avg_rating"])
}

func TestListCourseReviews_Pagination(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("ListByCourse", mock.Anything, "CASMA115", pagination.Params{Page: 2, PerPage: 5, Offset: 5}).
		Return([]domain.Review{}, 12, nil)
	repo.On("Aggregate", mock.Anything, "CASMA115", "").
		Return(domain.NewAggregateStats("CASMA115", "", 12, 40, 30, 44), nil)
	router := setupRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/academics/courses/CASMA115/reviews?page=2&per_page=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(3), body["total_pages"])
	repo.AssertExpectations(t)
}

// ============================================================================
// GET /academics/courses/{courseID}/stats
// ============================================================================

func TestCourseStats_ByProfessor(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("Aggregate", mock.Anything, "CASCS111", "j-doe").
		Return(domain.NewAggregateStats("CASCS111", "j-doe", 2, 9, 5, 8), nil)
	router := setupRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/academics/courses/CASCS111/stats?professor=J.+Doe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "j-doe", data["professor_key"])
	assert.Equal(t, float64(2), data["count"])
	repo.AssertExpectations(t)
}

func TestCourseStats_NoReviews(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("Aggregate", mock.Anything, "CASEC101", "").
		Return(domain.NewAggregateStats("CASEC101", "", 0, 0, 0, 0), nil)
	router := setupRouter(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/academics/courses/CASEC101/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["count"])
	assert.Equal(t, float64(0), data["avg_rating"])
}

// ============================================================================
// GET /academics/subjects
// ============================================================================

func TestListSubjects(t *testing.T) {
	router := setupRouter(t, new(mockReviewRepository))

	req := httptest.NewRequest(http.MethodGet, "/academics/subjects", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].([]any)
	require.Len(t, data, 8)
	first := data[0].(map[string]any)
	assert.Equal(t, "CASCS", first["prefix"])
	assert.Equal(t, "computer-science", first["subject"])
}
