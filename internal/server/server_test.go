package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/auth"
	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/fadilmartias/skillsync-api/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	app       *fiber.App
	store     *repository.Store
	publisher *events.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewStore(testutil.OpenDB(t))
	_, err := seed.SeedCareers(context.Background(), store, zap.NewNop())
	require.NoError(t, err)

	publisher := &events.Recorder{}
	app := New(&config.AppConfig{Name: "SkillSync API", Env: "test", RateLimitMax: 1000}, Dependencies{
		Store:     store,
		Gateway:   ai.NewGateway(ai.Config{}, zap.NewNop()),
		Publisher: publisher,
		Tokens:    auth.NewTokenIssuer("test-secret", time.Hour),
		Log:       zap.NewNop(),
	})
	return &fixture{app: app, store: store, publisher: publisher}
}

func (f *fixture) signup(t *testing.T, email string) string {
	t.Helper()

	code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/signup", fiber.Map{
		"email":    email,
		"name":     "Test User",
		"password": "secret123",
	}, "")
	require.Equal(t, fiber.StatusCreated, code, env.Message)

	var out dto.AuthResponse
	testutil.DecodeData(t, env, &out)
	require.NotEmpty(t, out.Token)
	return out.Token
}

func TestServiceInfo(t *testing.T) {
	f := newFixture(t)

	code, env := testutil.DoJSON(t, f.app, http.MethodGet, "/", nil, "")
	assert.Equal(t, fiber.StatusOK, code)

	var info map[string]any
	testutil.DecodeData(t, env, &info)
	assert.Equal(t, "SkillSync API", info["name"])
	assert.Equal(t, "mock", info["ai_provider"])
	assert.Equal(t, false, info["ai_enabled"])
}

func TestHealthProbes(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{"/livez", "/readyz"} {
		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestAuthFlow(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "Ana@Example.com")

	t.Run("duplicate email", func(t *testing.T) {
		code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/signup", fiber.Map{
			"email": "ana@example.com", "name": "Ana", "password": "secret123",
		}, "")
		assert.Equal(t, fiber.StatusConflict, code)
		assert.False(t, env.Success)
	})

	t.Run("validation", func(t *testing.T) {
		code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/signup", fiber.Map{
			"email": "a@b", "name": "A", "password": "1",
		}, "")
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Contains(t, string(env.Details), "password")
	})

	t.Run("login", func(t *testing.T) {
		code, _ := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/login", fiber.Map{
			"email": "ana@example.com", "password": "secret123",
		}, "")
		assert.Equal(t, fiber.StatusOK, code)

		code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/login", fiber.Map{
			"email": "ana@example.com", "password": "wrong-password",
		}, "")
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Equal(t, "Invalid email or password", env.Message)
	})

	t.Run("me", func(t *testing.T) {
		code, env := testutil.DoJSON(t, f.app, http.MethodGet, "/api/auth/me", nil, token)
		require.Equal(t, fiber.StatusOK, code)

		var me dto.UserDTO
		testutil.DecodeData(t, env, &me)
		assert.Equal(t, "ana@example.com", me.Email)
		assert.NotNil(t, me.CreatedAt)

		code, _ = testutil.DoJSON(t, f.app, http.MethodGet, "/api/auth/me", nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, code)

		code, _ = testutil.DoJSON(t, f.app, http.MethodGet, "/api/auth/me", nil, "not-a-token")
		assert.Equal(t, fiber.StatusUnauthorized, code)
	})

	t.Run("update profile", func(t *testing.T) {
		code, env := testutil.DoJSON(t, f.app, http.MethodPatch, "/api/auth/me", fiber.Map{
			"city": "Bandung", "age": 22,
		}, token)
		require.Equal(t, fiber.StatusOK, code)

		var me dto.UserDTO
		testutil.DecodeData(t, env, &me)
		require.NotNil(t, me.City)
		assert.Equal(t, "Bandung", *me.City)
	})
}

func TestAssessmentFlow(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "assess@example.com")

	code, env := testutil.DoJSON(t, f.app, http.MethodGet, "/api/assessment/questions", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	var questions dto.QuestionsResponse
	testutil.DecodeData(t, env, &questions)
	assert.Equal(t, 15, questions.TotalQuestions)
	assert.Equal(t, "5-7 minutes", questions.EstimatedTime)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/assessment/results", nil, token)
	require.Equal(t, fiber.StatusOK, code)
	var empty dto.AssessmentResultsResponse
	testutil.DecodeData(t, env, &empty)
	assert.False(t, empty.HasResults)

	code, env = testutil.DoJSON(t, f.app, http.MethodPost, "/api/assessment/submit", fiber.Map{
		"answers": map[string]int{"1": 0, "2": 1, "99": 0},
	}, token)
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.JSONEq(t, `{"ai_degraded":true}`, string(env.Meta))
	assert.Equal(t, []string{events.AssessmentCompleted}, f.publisher.Names())

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/assessment/results", nil, token)
	require.Equal(t, fiber.StatusOK, code)
	var latest dto.AssessmentResultsResponse
	testutil.DecodeData(t, env, &latest)
	assert.True(t, latest.HasResults)
	assert.NotNil(t, latest.AssessmentID)
}

func TestCareerRoutes(t *testing.T) {
	f := newFixture(t)

	code, env := testutil.DoJSON(t, f.app, http.MethodGet, "/api/careers?category=technology", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	var list dto.CareerListResponse
	testutil.DecodeData(t, env, &list)
	require.NotEmpty(t, list.Careers)
	for i := 1; i < len(list.Careers); i++ {
		assert.GreaterOrEqual(t, list.Careers[i-1].DemandScore, list.Careers[i].DemandScore)
	}

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/careers/software-developer", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	var detail dto.CareerDetailDTO
	testutil.DecodeData(t, env, &detail)
	assert.Equal(t, "software-developer", detail.Slug)
	assert.NotEmpty(t, detail.SalaryRange.Formatted)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/careers/astronaut-chef", nil, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Career not found", env.Message)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/careers/categories", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), `"technology"`)

	// SQLite has no vector search, so the keyword path answers.
	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/careers/search/semantic?q=data", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), `"keyword"`)
}

func TestSavedCareers(t *testing.T) {
	f := newFixture(t)
	ana := f.signup(t, "ana@example.com")
	budi := f.signup(t, "budi@example.com")

	code, _ := testutil.DoJSON(t, f.app, http.MethodPost, "/api/careers/software-developer/save", fiber.Map{"notes": "dream job"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/careers/software-developer/save", fiber.Map{"notes": "dream job"}, ana)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var saved dto.SavedCareerDTO
	testutil.DecodeData(t, env, &saved)

	code, _ = testutil.DoJSON(t, f.app, http.MethodPost, "/api/careers/software-developer/save", nil, ana)
	assert.Equal(t, fiber.StatusConflict, code)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/careers/saved", nil, ana)
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), "dream job")

	code, _ = testutil.DoJSON(t, f.app, http.MethodDelete, "/api/careers/saved/"+saved.ID.String(), nil, budi)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = testutil.DoJSON(t, f.app, http.MethodDelete, "/api/careers/saved/"+saved.ID.String(), nil, ana)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestSkillGapIsPublic(t *testing.T) {
	f := newFixture(t)

	code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/skills/gap-analysis", fiber.Map{
		"current_skills": []string{"Python"},
		"target_career":  "Data Scientist",
	}, "")
	require.Equal(t, fiber.StatusOK, code, env.Message)
	assert.JSONEq(t, `{"ai_degraded":true}`, string(env.Meta))
}

func TestResumeRoutes(t *testing.T) {
	f := newFixture(t)
	ana := f.signup(t, "ana@example.com")
	budi := f.signup(t, "budi@example.com")

	code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/resume/create", fiber.Map{
		"content":     fiber.Map{"summary": "Backend developer"},
		"target_role": "Software Developer",
	}, ana)
	require.Equal(t, fiber.StatusCreated, code, env.Message)
	var created dto.ResumeResultResponse
	testutil.DecodeData(t, env, &created)
	require.NotNil(t, created.ATSScore)
	require.NotNil(t, created.Suggestions)

	code, _ = testutil.DoJSON(t, f.app, http.MethodGet, "/api/resume/"+created.ResumeID.String(), nil, budi)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, env = testutil.DoJSON(t, f.app, http.MethodPut, "/api/resume/"+created.ResumeID.String(), fiber.Map{
		"title": "Backend CV",
	}, ana)
	require.Equal(t, fiber.StatusOK, code, env.Message)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/resume/list", nil, ana)
	require.Equal(t, fiber.StatusOK, code)
	var list dto.ResumeListResponse
	testutil.DecodeData(t, env, &list)
	require.Len(t, list.Resumes, 1)
	assert.Equal(t, created.ResumeID, list.Resumes[0].ID)
	assert.Equal(t, "Backend CV", list.Resumes[0].Title)

	code, _ = testutil.DoJSON(t, f.app, http.MethodGet, "/api/resume/not-a-uuid", nil, ana)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func multipartUpload(t *testing.T, filename string, data []byte, token string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("target_role", "Data Scientist"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/resume/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestResumeUpload(t *testing.T) {
	f := newFixture(t)
	token := f.signup(t, "ana@example.com")

	t.Run("plain text", func(t *testing.T) {
		code, env := testutil.Do(t, f.app, multipartUpload(t, "cv.txt", []byte("Python, SQL and statistics"), token))
		require.Equal(t, fiber.StatusCreated, code, env.Message)
		assert.Contains(t, f.publisher.Names(), events.ResumeAnalyzed)
	})

	t.Run("unsupported type", func(t *testing.T) {
		code, _ := testutil.Do(t, f.app, multipartUpload(t, "cv.png", []byte{0x89, 0x50}, token))
		assert.Equal(t, fiber.StatusUnsupportedMediaType, code)
	})

	t.Run("too large", func(t *testing.T) {
		code, _ := testutil.Do(t, f.app, multipartUpload(t, "cv.txt", bytes.Repeat([]byte("a"), 5<<20+1), token))
		assert.Equal(t, fiber.StatusRequestEntityTooLarge, code)
	})
}

func TestChatRoutes(t *testing.T) {
	f := newFixture(t)
	ana := f.signup(t, "ana@example.com")
	budi := f.signup(t, "budi@example.com")

	code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/chat", fiber.Map{"message": "How do I become a data scientist?"}, ana)
	require.Equal(t, fiber.StatusOK, code, env.Message)
	var first dto.ChatResponse
	testutil.DecodeData(t, env, &first)
	assert.Equal(t, 2, first.MessagesCount)
	assert.NotEmpty(t, first.Response)

	code, env = testutil.DoJSON(t, f.app, http.MethodPost, "/api/chat", fiber.Map{
		"message": "And which skills first?", "session_id": first.SessionID.String(),
	}, ana)
	require.Equal(t, fiber.StatusOK, code)
	var second dto.ChatResponse
	testutil.DecodeData(t, env, &second)
	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, 4, second.MessagesCount)

	code, _ = testutil.DoJSON(t, f.app, http.MethodPost, "/api/chat", fiber.Map{"message": "hi", "session_id": "nope"}, ana)
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/chat/sessions", nil, ana)
	require.Equal(t, fiber.StatusOK, code)
	var sessions struct {
		Sessions []dto.ChatSessionSummaryDTO `json:"sessions"`
	}
	testutil.DecodeData(t, env, &sessions)
	require.Len(t, sessions.Sessions, 1)
	assert.Equal(t, 4, sessions.Sessions[0].MessagesCount)

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/chat/sessions/"+first.SessionID.String(), nil, ana)
	require.Equal(t, fiber.StatusOK, code)
	var transcript dto.ChatSessionDTO
	testutil.DecodeData(t, env, &transcript)
	assert.Len(t, transcript.Messages, 4)

	code, _ = testutil.DoJSON(t, f.app, http.MethodGet, "/api/chat/sessions/"+first.SessionID.String(), nil, budi)
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestMarketRoutes(t *testing.T) {
	f := newFixture(t)

	code, env := testutil.DoJSON(t, f.app, http.MethodGet, "/api/market/trending-skills", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), "last_updated")

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/market/salary-insights?role=Data%20Scientist", nil, "")
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(env.Data), "top_cities")

	code, env = testutil.DoJSON(t, f.app, http.MethodGet, "/api/market/salary-insights?role=Astronaut", nil, "")
	assert.Equal(t, fiber.StatusNotFound, code)
	var details struct {
		AvailableRoles []string `json:"available_roles"`
	}
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Contains(t, details.AvailableRoles, "Software Developer")
}

func TestSignupTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	payload := fiber.Map{"email": "a@b.com", "name": "A", "password": "secret1"}

	code, _ := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/signup", payload, "")
	assert.Equal(t, fiber.StatusCreated, code)

	code, _ = testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/signup", payload, "")
	assert.Equal(t, fiber.StatusConflict, code)

	var count int64
	require.NoError(t, f.store.DB().Model(&model.User{}).Where("email = ?", "a@b.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignupRejectsPasswordOverBcryptLimit(t *testing.T) {
	f := newFixture(t)

	code, env := testutil.DoJSON(t, f.app, http.MethodPost, "/api/auth/signup", fiber.Map{
		"email": "multi@example.com", "name": "Multi", "password": strings.Repeat("é", 40),
	}, "")
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.Contains(t, string(env.Details), "72 bytes")
}
