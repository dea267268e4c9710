package app

import (
	"context"
	"strings"
	"time"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
	"github.com/R3MiX9002/my-gemini-app/internal/repository"
)

// ContextService validates and stores the session/context records. It does
// not check that referenced elements exist.
type ContextService struct {
	userRepo     *repository.UserRepository
	sessionRepo  *repository.SessionRepository
	pointRepo    *repository.ContextPointRepository
	elementRepo  *repository.ProjectElementRepository
	relationRepo *repository.RelationshipRepository
	settingRepo  *repository.UserSettingRepository
	now          func() time.Time
}

type AddContextPointInput struct {
	SessionID       uint
	Type            string
	Content         string
	RelatedElements string
}

type AddElementInput struct {
	Path    string
	Type    string
	Summary string
}

type AddRelationshipInput struct {
	FromElementID uint
	ToElementID   uint
	Type          string
}

func NewContextService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	pointRepo *repository.ContextPointRepository,
	elementRepo *repository.ProjectElementRepository,
	relationRepo *repository.RelationshipRepository,
	settingRepo *repository.UserSettingRepository,
) *ContextService {
	return &ContextService{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		pointRepo:    pointRepo,
		elementRepo:  elementRepo,
		relationRepo: relationRepo,
		settingRepo:  settingRepo,
		now:          time.Now,
	}
}

func (s *ContextService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *ContextService) StartSession(ctx context.Context, userID uint) (*model.Session, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	session := &model.Session{UserID: userID, StartTime: s.now()}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ContextService) EndSession(ctx context.Context, sessionID uint, summary string) (*model.Session, error) {
	if sessionID == 0 {
		return nil, ErrInvalidInput
	}
	ok, err := s.sessionRepo.End(ctx, sessionID, strings.TrimSpace(summary), s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.GetSession(ctx, sessionID)
}

func (s *ContextService) GetSession(ctx context.Context, sessionID uint) (*model.Session, error) {
	if sessionID == 0 {
		return nil, ErrInvalidInput
	}
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *ContextService) ListSessions(ctx context.Context, userID uint) ([]model.Session, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.sessionRepo.ListByUserID(ctx, userID)
}

func (s *ContextService) AddContextPoint(ctx context.Context, input AddContextPointInput) (*model.ContextPoint, error) {
	typ := strings.TrimSpace(input.Type)
	if input.SessionID == 0 || typ == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.GetSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	point := &model.ContextPoint{
		SessionID:       input.SessionID,
		Type:            typ,
		Content:         input.Content,
		Timestamp:       s.now(),
		RelatedElements: input.RelatedElements,
	}
	if err := s.pointRepo.Create(ctx, point); err != nil {
		return nil, err
	}
	return point, nil
}

func (s *ContextService) ListContextPoints(ctx context.Context, sessionID uint) ([]model.ContextPoint, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.pointRepo.ListBySessionID(ctx, sessionID)
}

func (s *ContextService) AddElement(ctx context.Context, input AddElementInput) (*model.ProjectElement, error) {
	path := strings.TrimSpace(input.Path)
	typ := strings.TrimSpace(input.Type)
	if path == "" || typ == "" {
		return nil, ErrInvalidInput
	}
	element := &model.ProjectElement{Path: path, Type: typ, Summary: input.Summary}
	if err := s.elementRepo.Create(ctx, element); err != nil {
		return nil, err
	}
	return element, nil
}

func (s *ContextService) GetElement(ctx context.Context, elementID uint) (*model.ProjectElement, error) {
	if elementID == 0 {
		return nil, ErrInvalidInput
	}
	element, err := s.elementRepo.GetByID(ctx, elementID)
	if err != nil {
		return nil, err
	}
	if element == nil {
		return nil, ErrElementNotFound
	}
	return element, nil
}

func (s *ContextService) ListElements(ctx context.Context, elementType string) ([]model.ProjectElement, error) {
	return s.elementRepo.List(ctx, strings.TrimSpace(elementType))
}

func (s *ContextService) AddRelationship(ctx context.Context, input AddRelationshipInput) (*model.Relationship, error) {
	if input.FromElementID == 0 || input.ToElementID == 0 {
		return nil, ErrInvalidInput
	}
	rel := &model.Relationship{
		FromElementID: input.FromElementID,
		ToElementID:   input.ToElementID,
		Type:          strings.TrimSpace(input.Type),
	}
	if err := s.relationRepo.Create(ctx, rel); err != nil {
		return nil, err
	}
	return rel, nil
}

func (s *ContextService) ListRelationships(ctx context.Context, elementID uint) ([]model.Relationship, error) {
	if elementID == 0 {
		return nil, ErrInvalidInput
	}
	return s.relationRepo.ListByElementID(ctx, elementID)
}

func (s *ContextService) PutSetting(ctx context.Context, userID uint, key, value string) (*model.UserSetting, error) {
	key = strings.TrimSpace(key)
	if userID == 0 || key == "" {
		return nil, ErrInvalidInput
	}
	return s.settingRepo.Upsert(ctx, userID, key, value)
}

func (s *ContextService) GetSetting(ctx context.Context, userID uint, key string) (*model.UserSetting, error) {
	key = strings.TrimSpace(key)
	if userID == 0 || key == "" {
		return nil, ErrInvalidInput
	}
	setting, err := s.settingRepo.Get(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, ErrSettingNotFound
	}
	return setting, nil
}

func (s *ContextService) ListSettings(ctx context.Context, userID uint) ([]model.UserSetting, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.settingRepo.ListByUserID(ctx, userID)
}
