package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/auth"
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/fadilmartias/skillsync-api/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptedClient struct {
	replies []string
	err     error
	prompts []string
}

func (c *scriptedClient) Name() string { return "scripted" }

func (c *scriptedClient) GenerateText(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	if len(c.replies) == 0 {
		return "", errors.New("no scripted reply")
	}
	reply := c.replies[0]
	if len(c.replies) > 1 {
		c.replies = c.replies[1:]
	}
	return reply, nil
}

type memoryFiles struct {
	objects map[string][]byte
	err     error
}

func (m *memoryFiles) Put(_ context.Context, key, _ string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = data
	return nil
}

func (m *memoryFiles) Get(_ context.Context, key string) ([]byte, error) {
	return m.objects[key], nil
}

type fixture struct {
	store *repository.Store
	mock  *ai.Gateway
	rec   *events.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(testutil.OpenDB(t))
	_, err := seed.SeedCareers(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	return &fixture{
		store: store,
		mock:  ai.NewGateway(ai.Config{}, zap.NewNop()),
		rec:   &events.Recorder{},
	}
}

func (f *fixture) user(t *testing.T, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: "Test User", HashedPassword: "x"}
	require.NoError(t, f.store.Users.Create(context.Background(), u))
	return u
}

func TestAuthSignupLogin(t *testing.T) {
	f := newFixture(t)
	uc := NewAuthUsecase(f.store, auth.NewTokenIssuer("secret", time.Hour))
	ctx := context.Background()

	user, token, err := uc.Signup(ctx, dto.SignupRequest{Email: " Asha@Example.com ", Name: "Asha", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = uc.Signup(ctx, dto.SignupRequest{Email: "asha@example.com", Name: "Other", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, _, err := uc.Login(ctx, dto.LoginRequest{Email: "ASHA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = uc.Login(ctx, dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	me, err := uc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, me.ID)

	ghost, err := auth.NewTokenIssuer("secret", time.Hour).Issue(uuid.New())
	require.NoError(t, err)
	_, err = uc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = uc.Signup(ctx, dto.SignupRequest{Email: "long@example.com", Name: "Long", Password: strings.Repeat("é", 40)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAuthUpdateProfile(t *testing.T) {
	f := newFixture(t)
	uc := NewAuthUsecase(f.store, auth.NewTokenIssuer("secret", time.Hour))
	u := f.user(t, "p@example.com")

	age, city := 19, "Pune"
	updated, err := uc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{Age: &age, City: &city})
	require.NoError(t, err)
	assert.Equal(t, 19, *updated.Age)
	assert.Equal(t, "Pune", *updated.City)
	assert.Nil(t, updated.EducationLevel)

	_, err = uc.UpdateProfile(context.Background(), uuid.New(), dto.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScoreAnswers(t *testing.T) {
	questions, err := seed.Questions()
	require.NoError(t, err)

	tests := []struct {
		name    string
		answers map[string]int
		want    map[string]int
	}{
		{name: "empty", answers: map[string]int{}, want: model.NewTraitScores()},
		{
			name:    "valid answers",
			answers: map[string]int{"1": 0, "2": 0},
			want: func() map[string]int {
				m := model.NewTraitScores()
				m["analytical"] = 5
				m["enterprising"] = 5
				return m
			}(),
		},
		{name: "unknown question", answers: map[string]int{"999": 0}, want: model.NewTraitScores()},
		{name: "out of range option", answers: map[string]int{"1": 4, "2": -1}, want: model.NewTraitScores()},
		{name: "non numeric key", answers: map[string]int{"abc": 0}, want: model.NewTraitScores()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreAnswers(questions, tt.answers))
		})
	}
}

func TestAssessmentSubmitAndLatest(t *testing.T) {
	f := newFixture(t)
	uc := NewAssessmentUsecase(f.store, f.mock, f.rec, zap.NewNop())
	u := f.user(t, "a@example.com")
	ctx := context.Background()

	_, err := uc.Latest(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	out, err := uc.Submit(ctx, u, map[string]int{"1": 0, "999": 2})
	require.NoError(t, err)
	assert.True(t, out.Degraded)
	assert.Equal(t, 5, out.TraitScores["analytical"])
	assert.Len(t, out.Analysis.TopCareers, 5)
	assert.Equal(t, []string{events.AssessmentCompleted}, f.rec.Names())

	latest, err := uc.Latest(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Assessment.ID, latest.ID)
	assert.Equal(t, 5, latest.TraitScores.Data()["analytical"])

	var top []ai.TopCareer
	require.NoError(t, json.Unmarshal(latest.TopCareers, &top))
	assert.Equal(t, "Software Developer", top[0].Title)
}

func TestAssessmentUsesModelOutput(t *testing.T) {
	f := newFixture(t)
	client := &scriptedClient{replies: []string{"```json\n{\"personality_summary\":\"Curious\",\"top_careers\":[{\"title\":\"Doctor\",\"match_score\":90}],\"personality_traits\":{\"social\":90}}\n```"}}
	gw := ai.NewGateway(ai.Config{Client: client}, zap.NewNop())
	uc := NewAssessmentUsecase(f.store, gw, events.Nop{}, zap.NewNop())
	u := f.user(t, "m@example.com")

	out, err := uc.Submit(context.Background(), u, map[string]int{"1": 2})
	require.NoError(t, err)
	assert.False(t, out.Degraded)
	assert.Equal(t, "Curious", out.Analysis.PersonalitySummary)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `"social": 5`)
}

func TestCareerListAndDetail(t *testing.T) {
	f := newFixture(t)
	uc := NewCareerUsecase(f.store, f.mock, f.rec, zap.NewNop())
	ctx := context.Background()

	all, err := uc.List(ctx, "", "")
	require.NoError(t, err)
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].DemandScore, all[i].DemandScore)
	}

	tech, err := uc.List(ctx, "technology", "")
	require.NoError(t, err)
	for _, c := range tech {
		assert.Equal(t, "technology", c.Category)
	}

	found, err := uc.List(ctx, "", "DEVELOPER")
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, "software-developer", found[0].Slug)

	detail, err := uc.Detail(ctx, "software-developer")
	require.NoError(t, err)
	assert.Equal(t, "₹6L - ₹25L", detail.FormattedSalary())

	_, err = uc.Detail(ctx, "astronaut")
	assert.ErrorIs(t, err, ErrNotFound)

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, cats)
	for _, c := range cats {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.Color)
	}
}

func TestCareerSearchFallsBackToKeyword(t *testing.T) {
	f := newFixture(t)
	uc := NewCareerUsecase(f.store, f.mock, f.rec, zap.NewNop())

	careers, mode, err := uc.Search(context.Background(), "analyst", 2)
	require.NoError(t, err)
	assert.Equal(t, SearchModeKeyword, mode)
	assert.LessOrEqual(t, len(careers), 2)
	for _, c := range careers {
		assert.Contains(t, strings.ToLower(c.Title), "analyst")
	}

	_, _, err = uc.Search(context.Background(), "  ", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.IndexEmbeddings(context.Background())
	assert.ErrorIs(t, err, ErrSearchUnavailable)
}

func TestCareerSaveUnsave(t *testing.T) {
	f := newFixture(t)
	uc := NewCareerUsecase(f.store, f.mock, f.rec, zap.NewNop())
	owner := f.user(t, "owner@example.com")
	other := f.user(t, "other@example.com")
	ctx := context.Background()

	notes := "dream job"
	saved, err := uc.Save(ctx, owner.ID, "data-scientist", &notes)
	require.NoError(t, err)
	assert.Equal(t, "data-scientist", saved.Career.Slug)

	_, err = uc.Save(ctx, owner.ID, "data-scientist", nil)
	assert.ErrorIs(t, err, ErrAlreadySaved)
	_, err = uc.Save(ctx, owner.ID, "astronaut", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := uc.ListSaved(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "dream job", *list[0].Notes)

	assert.ErrorIs(t, uc.Unsave(ctx, other.ID, saved.ID), ErrNotFound)
	require.NoError(t, uc.Unsave(ctx, owner.ID, saved.ID))
	assert.ErrorIs(t, uc.Unsave(ctx, owner.ID, saved.ID), ErrNotFound)
	assert.Equal(t, []string{events.CareerSaved}, f.rec.Names())
}

func TestSkillGapMock(t *testing.T) {
	f := newFixture(t)
	uc := NewSkillUsecase(f.mock)
	res := uc.GapAnalysis(context.Background(), []string{"Python", " ", "SQL"}, " Data Analyst ")
	assert.True(t, res.Degraded)
	assert.Equal(t, "Data Analyst", res.Data.TargetCareer)
	assert.Equal(t, 40, res.Data.SkillMatchPercentage)
}

func TestResumeCreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	uc := NewResumeUsecase(f.store, f.mock, nil, f.rec, zap.NewNop())
	u := f.user(t, "r@example.com")
	ctx := context.Background()

	plain, err := uc.Create(ctx, u.ID, dto.ResumeRequest{Content: json.RawMessage(`{"name":"Asha"}`)})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultResumeTitle, plain.Resume.Title)
	assert.Equal(t, model.DefaultResumeTemplate, plain.Resume.Template)
	assert.Nil(t, plain.Suggestions)
	assert.Nil(t, plain.Resume.ATSScore)
	assert.Empty(t, f.rec.Names())

	targeted, err := uc.Create(ctx, u.ID, dto.ResumeRequest{Content: json.RawMessage(`{"name":"Asha"}`), TargetRole: "Data Analyst"})
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", targeted.Resume.Title)
	require.NotNil(t, targeted.Resume.ATSScore)
	assert.Equal(t, 68, *targeted.Resume.ATSScore)
	assert.Equal(t, []string{events.ResumeAnalyzed}, f.rec.Names())

	_, err = uc.Create(ctx, u.ID, dto.ResumeRequest{Content: json.RawMessage(`[1,2]`)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	before := plain.Resume.UpdatedAt
	time.Sleep(5 * time.Millisecond)
	title := "Updated"
	updated, err := uc.Update(ctx, u.ID, plain.Resume.ID, dto.ResumeUpdateRequest{Title: &title, TargetRole: "Analyst"})
	require.NoError(t, err)
	assert.Equal(t, plain.Resume.ID, updated.Resume.ID)
	assert.Equal(t, "Updated", updated.Resume.Title)
	assert.True(t, updated.Resume.UpdatedAt.After(before))
	require.NotNil(t, updated.Resume.ATSScore)

	blank := "   "
	renamed, err := uc.Update(ctx, u.ID, plain.Resume.ID, dto.ResumeUpdateRequest{Title: &blank})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultResumeTitle, renamed.Resume.Title)

	stranger := f.user(t, "s@example.com")
	_, err = uc.Get(ctx, stranger.ID, plain.Resume.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = uc.Update(ctx, stranger.ID, plain.Resume.ID, dto.ResumeUpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := uc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, plain.Resume.ID, list[0].ID)
}

func TestResumeUpload(t *testing.T) {
	f := newFixture(t)
	files := &memoryFiles{}
	uc := NewResumeUsecase(f.store, f.mock, files, f.rec, zap.NewNop())
	u := f.user(t, "up@example.com")
	ctx := context.Background()

	out, err := uc.Upload(ctx, u.ID, Upload{Filename: "cv.txt", Data: []byte("Asha\nGo developer")})
	require.NoError(t, err)
	require.NotNil(t, out.Resume.SourceFileKey)
	assert.Contains(t, files.objects, *out.Resume.SourceFileKey)

	var content map[string]string
	require.NoError(t, json.Unmarshal(out.Resume.Content, &content))
	assert.Equal(t, "Asha\nGo developer", content["raw_text"])
	assert.Equal(t, "cv.txt", content["source_file"])

	_, err = uc.Upload(ctx, u.ID, Upload{Filename: "cv.exe", Data: []byte("x")})
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = uc.Upload(ctx, u.ID, Upload{Filename: "cv.txt", Data: make([]byte, 5<<20+1)})
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = uc.Upload(ctx, u.ID, Upload{Filename: "cv.txt", Data: []byte("   ")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	files.err = errors.New("bucket unavailable")
	_, err = uc.Upload(ctx, u.ID, Upload{Filename: "cv.txt", Data: []byte("text")})
	assert.Error(t, err)
}

func TestChatSend(t *testing.T) {
	f := newFixture(t)
	client := &scriptedClient{replies: []string{"Reply"}}
	uc := NewChatUsecase(f.store, ai.NewGateway(ai.Config{Client: client}, zap.NewNop()))
	u := f.user(t, "c@example.com")
	ctx := context.Background()

	long := strings.Repeat("x", 80)
	first, err := uc.Send(ctx, u.ID, long, nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 50), first.Session.Title)
	assert.Len(t, first.Session.Messages, 2)
	assert.NotContains(t, client.prompts[0], "Previous conversation")

	id := first.Session.ID
	for i := 0; i < 4; i++ {
		reply, err := uc.Send(ctx, u.ID, "turn", &id)
		require.NoError(t, err)
		assert.Equal(t, id, reply.Session.ID)
		assert.Len(t, reply.Session.Messages, 4+2*i)
	}

	last := client.prompts[len(client.prompts)-1]
	assert.Equal(t, ai.ChatHistoryWindow, strings.Count(last, "\nUser: ")+strings.Count(last, "\nAssistant: "))

	stored, err := uc.Session(ctx, u.ID, id)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 10)
	assert.Equal(t, model.RoleUser, stored.Messages[0].Role)
	assert.Equal(t, long, stored.Messages[0].Content)
	assert.Equal(t, model.RoleAssistant, stored.Messages[9].Role)

	other := f.user(t, "c2@example.com")
	fresh, err := uc.Send(ctx, other.ID, "hello", &id)
	require.NoError(t, err)
	assert.NotEqual(t, id, fresh.Session.ID)
	_, err = uc.Session(ctx, other.ID, id)
	assert.ErrorIs(t, err, ErrNotFound)

	client.err = errors.New("down")
	failed, err := uc.Send(ctx, u.ID, "again", &id)
	require.NoError(t, err)
	assert.True(t, failed.Degraded)
	assert.Len(t, failed.Session.Messages, 12)

	sessions, err := uc.Sessions(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

// gatedClient holds every call until release is closed.
type gatedClient struct {
	arrived chan struct{}
	release chan struct{}
}

func (c *gatedClient) Name() string { return "gated" }

func (c *gatedClient) GenerateText(ctx context.Context, _ string) (string, error) {
	if c.release == nil {
		return "Reply", nil
	}
	c.arrived <- struct{}{}
	select {
	case <-c.release:
		return "Reply", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func TestChatConcurrentTurnsKeepEveryMessage(t *testing.T) {
	f := newFixture(t)
	client := &gatedClient{}
	uc := NewChatUsecase(f.store, ai.NewGateway(ai.Config{Client: client}, zap.NewNop()))
	u := f.user(t, "race@example.com")
	ctx := context.Background()

	first, err := uc.Send(ctx, u.ID, "hello", nil)
	require.NoError(t, err)
	id := first.Session.ID

	client.arrived = make(chan struct{}, 2)
	client.release = make(chan struct{})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Send(ctx, u.ID, fmt.Sprintf("turn %d", i), &id)
		}(i)
	}
	// Both turns have read the two-message transcript before either writes.
	<-client.arrived
	<-client.arrived
	close(client.release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	stored, err := uc.Session(ctx, u.ID, id)
	require.NoError(t, err)
	require.Len(t, stored.Messages, 6)
	for i, m := range stored.Messages {
		want := model.RoleUser
		if i%2 == 1 {
			want = model.RoleAssistant
		}
		assert.Equal(t, want, m.Role, "message %d", i)
	}
}

func TestMarketSalary(t *testing.T) {
	uc := NewMarketUsecase()

	band, err := uc.SalaryForRole("Data Scientist")
	require.NoError(t, err)
	assert.Equal(t, "₹6-10 LPA", band.Fresher)

	_, err = uc.SalaryForRole("Astronaut")
	var notFound *RoleNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, ErrRoleNotFound)
	assert.Contains(t, notFound.AvailableRoles, "Software Developer")

	all, err := uc.SalaryInsights()
	require.NoError(t, err)
	assert.Len(t, all, 5)

	updated, skills, err := uc.TrendingSkills()
	require.NoError(t, err)
	assert.Equal(t, "2026-02-17", updated)
	assert.Len(t, skills, 10)
}

func TestResumeScoreClampedToRange(t *testing.T) {
	for _, tc := range []struct {
		reply string
		want  int
	}{
		{`{"ats_score": 150, "tips": ["a"]}`, 100},
		{`{"ats_score": -5, "tips": ["a"]}`, 0},
		{`{"ats_score": 77, "tips": ["a"]}`, 77},
	} {
		f := newFixture(t)
		gw := ai.NewGateway(ai.Config{Client: &scriptedClient{replies: []string{tc.reply}}}, zap.NewNop())
		uc := NewResumeUsecase(f.store, gw, nil, events.Nop{}, zap.NewNop())
		u := f.user(t, "clamp@example.com")

		out, err := uc.Create(context.Background(), u.ID, dto.ResumeRequest{Content: json.RawMessage(`{"name":"Asha"}`), TargetRole: "Analyst"})
		require.NoError(t, err)
		require.NotNil(t, out.Resume.ATSScore)
		assert.Equal(t, tc.want, *out.Resume.ATSScore)
		assert.Equal(t, tc.want, out.Suggestions.ATSScore)
		assert.JSONEq(t, fmt.Sprintf("%d", tc.want), string(mustField(t, out.Resume.AISuggestions, "ats_score")))
	}
}

func mustField(t *testing.T, raw []byte, key string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	return fields[key]
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Data Analyst", titleCase("data_analyst"))
	assert.Equal(t, "Éco Tech", titleCase("éco_tech"))
	assert.Equal(t, "", titleCase(""))
}
