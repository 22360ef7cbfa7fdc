package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/skillsync-api/internal/ai"
	"github.com/fadilmartias/skillsync-api/internal/dto"
	"github.com/fadilmartias/skillsync-api/internal/events"
	"github.com/fadilmartias/skillsync-api/internal/model"
	"github.com/fadilmartias/skillsync-api/internal/repository"
	"github.com/fadilmartias/skillsync-api/internal/storage"
	"github.com/fadilmartias/skillsync-api/internal/util"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ResumeUsecase struct {
	store     *repository.Store
	gateway   *ai.Gateway
	files     storage.ObjectStore
	publisher events.Publisher
	log       *zap.Logger
}

// NewResumeUsecase builds the resume operations. files may be nil, in which
// case uploads are parsed but not kept.
func NewResumeUsecase(store *repository.Store, gateway *ai.Gateway, files storage.ObjectStore, publisher events.Publisher, log *zap.Logger) *ResumeUsecase {
	return &ResumeUsecase{store: store, gateway: gateway, files: files, publisher: publisher, log: log}
}

type ResumeOutcome struct {
	Resume      *model.Resume
	Suggestions *ai.ResumeFeedback
	Degraded    bool
}

// Upload is an uploaded resume file plus the optional form fields sent with it.
type Upload struct {
	Filename   string
	Data       []byte
	Title      string
	TargetRole string
	Template   string
}

func validContent(content json.RawMessage) error {
	if len(content) == 0 || !gjson.ValidBytes(content) || !gjson.ParseBytes(content).IsObject() {
		return fmt.Errorf("%w: content must be a JSON object", ErrInvalidInput)
	}
	return nil
}

func (uc *ResumeUsecase) Create(ctx context.Context, userID uuid.UUID, req dto.ResumeRequest) (*ResumeOutcome, error) {
	return uc.create(ctx, userID, req, nil)
}

func (uc *ResumeUsecase) create(ctx context.Context, userID uuid.UUID, req dto.ResumeRequest, sourceKey *string) (*ResumeOutcome, error) {
	if err := validContent(req.Content); err != nil {
		return nil, err
	}
	targetRole := strings.TrimSpace(req.TargetRole)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = targetRole
	}
	if title == "" {
		title = model.DefaultResumeTitle
	}
	template := strings.TrimSpace(req.Template)
	if template == "" {
		template = model.DefaultResumeTemplate
	}

	resume := &model.Resume{
		UserID:        userID,
		Title:         title,
		Content:       datatypes.JSON(req.Content),
		Template:      template,
		SourceFileKey: sourceKey,
	}
	outcome := &ResumeOutcome{Resume: resume}
	if targetRole != "" {
		if err := uc.analyze(ctx, outcome, targetRole); err != nil {
			return nil, err
		}
	}

	if err := uc.store.Resumes.Create(ctx, resume); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	uc.publishAnalyzed(ctx, outcome, targetRole)
	return outcome, nil
}

// analyze fills the suggestions and ATS score of outcome.Resume for targetRole.
func (uc *ResumeUsecase) analyze(ctx context.Context, outcome *ResumeOutcome, targetRole string) error {
	result := uc.gateway.SuggestResumeImprovements(ctx, json.RawMessage(outcome.Resume.Content), targetRole)
	score := min(max(result.Data.ATSScore, 0), 100)
	result.Data.ATSScore = score
	suggestions, err := json.Marshal(result.Data)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	outcome.Resume.AISuggestions = datatypes.JSON(suggestions)
	outcome.Resume.ATSScore = &score
	outcome.Suggestions = &result.Data
	outcome.Degraded = result.Degraded
	return nil
}

func (uc *ResumeUsecase) publishAnalyzed(ctx context.Context, outcome *ResumeOutcome, targetRole string) {
	if outcome.Suggestions == nil {
		return
	}
	err := uc.publisher.Publish(ctx, events.ResumeAnalyzed, map[string]any{
		"resume_id":   outcome.Resume.ID,
		"user_id":     outcome.Resume.UserID,
		"target_role": targetRole,
		"ats_score":   outcome.Resume.ATSScore,
		"degraded":    outcome.Degraded,
	})
	if err != nil {
		uc.log.Warn("publish event failed", zap.String("event", events.ResumeAnalyzed), zap.Error(err))
	}
}

// Upload extracts text from a PDF, DOCX or plain-text resume, keeps the
// original file in object storage when configured and saves it like Create.
func (uc *ResumeUsecase) Upload(ctx context.Context, userID uuid.UUID, up Upload) (*ResumeOutcome, error) {
	if len(up.Data) > util.MaxResumeFileSize {
		return nil, ErrFileTooLarge
	}
	contentType, err := util.ResumeContentType(up.Filename)
	if err != nil {
		return nil, err
	}
	text, err := util.ExtractResumeText(up.Filename, up.Data)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedFile) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var sourceKey *string
	if uc.files != nil {
		key := storage.ResumeKey(userID, up.Filename)
		if err := uc.files.Put(ctx, key, contentType, up.Data); err != nil {
			uc.log.Error("store resume file failed", zap.String("key", key), zap.Error(err))
			return nil, fmt.Errorf("store resume file: %w", err)
		}
		sourceKey = &key
	}

	content, err := json.Marshal(map[string]string{
		"raw_text":    text,
		"source_file": filepath.Base(up.Filename),
	})
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, userID, dto.ResumeRequest{
		Title:      up.Title,
		Content:    content,
		TargetRole: up.TargetRole,
		Template:   up.Template,
	}, sourceKey)
}

func (uc *ResumeUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*model.Resume, error) {
	resume, err := uc.store.Resumes.FindForUser(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return resume, nil
}

// Update rewrites the resume in place, re-running suggestions when a target role is given.
func (uc *ResumeUsecase) Update(ctx context.Context, userID, id uuid.UUID, req dto.ResumeUpdateRequest) (*ResumeOutcome, error) {
	if len(req.Content) > 0 {
		if err := validContent(req.Content); err != nil {
			return nil, err
		}
	}

	resume, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		resume.Title = strings.TrimSpace(*req.Title)
		if resume.Title == "" {
			resume.Title = model.DefaultResumeTitle
		}
	}
	if len(req.Content) > 0 {
		resume.Content = datatypes.JSON(req.Content)
	}
	if req.Template != nil {
		resume.Template = strings.TrimSpace(*req.Template)
	}

	outcome := &ResumeOutcome{Resume: resume}
	targetRole := strings.TrimSpace(req.TargetRole)
	if targetRole != "" {
		if err := uc.analyze(ctx, outcome, targetRole); err != nil {
			return nil, err
		}
	}
	if err := uc.store.Resumes.Update(ctx, resume); err != nil {
		return nil, fmt.Errorf("update resume: %w", err)
	}
	uc.publishAnalyzed(ctx, outcome, targetRole)
	return outcome, nil
}

func (uc *ResumeUsecase) List(ctx context.Context, userID uuid.UUID) ([]model.Resume, error) {
	return uc.store.Resumes.ListByUser(ctx, userID)
}
