package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/database"
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/seed"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

const (
	SearchModeSemantic = "semantic"
	SearchModeKeyword  = "keyword"

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

var defaultCategoryStyle = seed.CategoryStyle{Icon: "📋", Color: "#64748b"}

type CareerUsecase struct {
	store     *repository.Store
	gateway   *ai.Gateway
	publisher events.Publisher
	log       *zap.Logger
}

func NewCareerUsecase(store *repository.Store, gateway *ai.Gateway, publisher events.Publisher, log *zap.Logger) *CareerUsecase {
	return &CareerUsecase{store: store, gateway: gateway, publisher: publisher, log: log}
}

func (uc *CareerUsecase) List(ctx context.Context, category, search string) ([]model.Career, error) {
	return uc.store.Careers.List(ctx, repository.CareerFilter{
		Category: strings.TrimSpace(category),
		Search:   strings.TrimSpace(search),
	})
}

// Categories returns each distinct category decorated with its display style.
func (uc *CareerUsecase) Categories(ctx context.Context) ([]dto.CategoryDTO, error) {
	keys, err := uc.store.Careers.Categories(ctx)
	if err != nil {
		return nil, err
	}
	market, err := seed.Market()
	if err != nil {
		return nil, err
	}

	out := make([]dto.CategoryDTO, 0, len(keys))
	for _, key := range keys {
		style, ok := market.Categories[key]
		if !ok {
			style = defaultCategoryStyle
			style.Name = titleCase(key)
		}
		out = append(out, dto.CategoryDTO{Key: key, Name: style.Name, Icon: style.Icon, Color: style.Color})
	}
	return out, nil
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

func (uc *CareerUsecase) Detail(ctx context.Context, slug string) (*model.Career, error) {
	career, err := uc.store.Careers.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return career, nil
}

func (uc *CareerUsecase) semanticReady() bool {
	return uc.gateway.CanEmbed() && database.SupportsVectorSearch(uc.store.DB())
}

// Search ranks careers by embedding distance to query when vector search is
// available and falls back to a title keyword match otherwise.
func (uc *CareerUsecase) Search(ctx context.Context, query string, limit int) ([]model.Career, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if uc.semanticReady() {
		careers, err := uc.semanticSearch(ctx, query, limit)
		if err == nil && len(careers) > 0 {
			return careers, SearchModeSemantic, nil
		}
		if err != nil {
			uc.log.Warn("semantic search failed, using keyword match", zap.Error(err))
		}
	}

	careers, err := uc.store.Careers.List(ctx, repository.CareerFilter{Search: query})
	if err != nil {
		return nil, "", err
	}
	if len(careers) > limit {
		careers = careers[:limit]
	}
	return careers, SearchModeKeyword, nil
}

func (uc *CareerUsecase) semanticSearch(ctx context.Context, query string, limit int) ([]model.Career, error) {
	embedding, err := uc.gateway.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return uc.store.CareerEmbeddings.SearchSimilar(ctx, pgvector.NewVector(embedding), limit)
}

// IndexEmbeddings computes and stores an embedding for every career.
func (uc *CareerUsecase) IndexEmbeddings(ctx context.Context) (int, error) {
	if !uc.semanticReady() {
		return 0, ErrSearchUnavailable
	}
	careers, err := uc.store.Careers.All(ctx)
	if err != nil {
		return 0, err
	}

	indexed := 0
	for i := range careers {
		c := &careers[i]
		embedding, err := uc.gateway.Embed(ctx, careerDocument(c))
		if err != nil {
			return indexed, fmt.Errorf("embed %s: %w", c.Slug, err)
		}
		if err := uc.store.CareerEmbeddings.Upsert(ctx, c.ID, pgvector.NewVector(embedding)); err != nil {
			return indexed, fmt.Errorf("store embedding %s: %w", c.Slug, err)
		}
		indexed++
		uc.log.Debug("indexed career", zap.String("slug", c.Slug))
	}
	return indexed, nil
}

// careerDocument is the text embedded for a career.
func careerDocument(c *model.Career) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n%s\n", c.Title, c.Category, c.Description)
	if len(c.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(c.RequiredSkills, ", "))
	}
	if c.DayInLife != "" {
		fmt.Fprintf(&b, "Day in life: %s\n", c.DayInLife)
	}
	return b.String()
}

func (uc *CareerUsecase) Save(ctx context.Context, userID uuid.UUID, slug string, notes *string) (*model.SavedCareer, error) {
	var saved *model.SavedCareer
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		career, err := tx.Careers.FindBySlug(ctx, slug)
		if err != nil {
			if isNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		exists, err := tx.SavedCareers.Exists(ctx, userID, career.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrAlreadySaved
		}

		saved = &model.SavedCareer{UserID: userID, CareerID: career.ID, Notes: notes}
		if err := tx.SavedCareers.Create(ctx, saved); err != nil {
			if isDuplicate(err) {
				return ErrAlreadySaved
			}
			return err
		}
		saved.Career = career
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save career: %w", err)
	}

	if err := uc.publisher.Publish(ctx, events.CareerSaved, map[string]any{
		"user_id":   userID,
		"career_id": saved.CareerID,
		"slug":      slug,
	}); err != nil {
		uc.log.Warn("publish event failed", zap.String("event", events.CareerSaved), zap.Error(err))
	}
	return saved, nil
}

func (uc *CareerUsecase) ListSaved(ctx context.Context, userID uuid.UUID) ([]model.SavedCareer, error) {
	return uc.store.SavedCareers.ListByUser(ctx, userID)
}

// Unsave deletes a saved career of userID. Entries owned by someone else are reported as not found.
func (uc *CareerUsecase) Unsave(ctx context.Context, userID, savedID uuid.UUID) error {
	deleted, err := uc.store.SavedCareers.DeleteForUser(ctx, savedID, userID)
	if err != nil {
		return fmt.Errorf("unsave career: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

