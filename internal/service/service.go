package service

import (
	"context"

	"portfolio_cms/internal/logger"
	"portfolio_cms/internal/models"
	"portfolio_cms/internal/repository"
)

type Authorization interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	ParseToken(accessToken string) (string, error)
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Profile exposes the singleton profile document.
type Profile interface {
	GetSingleton(ctx context.Context) (*models.Profile, error)
	UpsertSingleton(ctx context.Context, patch []byte) (*models.Profile, error)
}

// Messages exposes the contact inbox.
type Messages interface {
	Create(ctx context.Context, body []byte) (*models.Message, error)
	List(ctx context.Context) ([]*models.Message, error)
	Delete(ctx context.Context, id string) error
}

// EventLog exposes the append-only activity log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ContentEvent, error)
}

// Stats exposes read-only content counters.
type Stats interface {
	Snapshot(ctx context.Context) (models.ContentStats, error)
}

type DeveloperContent struct {
	Skills   Resource[*models.Skill]
	Projects Resource[*models.Project]
	Services Resource[*models.DeveloperService]
}

type DesignerContent struct {
	Gallery  Resource[*models.GalleryItem]
	Tools    Resource[*models.Tool]
	Services Resource[*models.DesignerService]
}

type CreatorContent struct {
	Sketches Resource[*models.Sketch]
	Books    Resource[*models.Book]
	Thoughts Resource[*models.Thought]
}

type BloggerContent struct {
	Snippets Resource[*models.Snippet]
	Roadmaps Resource[*models.Roadmap]
	Articles Resource[*models.Article]
}

// Service aggregates all sub-services.
type Service struct {
	Developer DeveloperContent
	Designer  DesignerContent
	Creator   CreatorContent
	Blogger   BloggerContent
	Profile   Profile
	Messages  Messages

	EventLog EventLog
	Stats    Stats
	Authorization

	// Importers lists every seedable collection, profile included.
	Importers []Importer
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, auth AuthConfig, log *logger.Logger) *Service {
	docs, events := repos.Documents, repos.EventRepo

	var (
		skills      = NewContentService[models.Skill](models.CollectionSkills, docs, events, log)
		projects    = NewContentService[models.Project](models.CollectionProjects, docs, events, log)
		devServices = NewContentService[models.DeveloperService](models.CollectionDeveloperServices, docs, events, log)
		gallery     = NewContentService[models.GalleryItem](models.CollectionGallery, docs, events, log)
		tools       = NewContentService[models.Tool](models.CollectionTools, docs, events, log)
		desServices = NewContentService[models.DesignerService](models.CollectionDesignerServices, docs, events, log)
		sketches    = NewContentService[models.Sketch](models.CollectionSketches, docs, events, log)
		books       = NewContentService[models.Book](models.CollectionBooks, docs, events, log)
		thoughts    = NewContentService[models.Thought](models.CollectionThoughts, docs, events, log)
		snippets    = NewContentService[models.Snippet](models.CollectionSnippets, docs, events, log)
		roadmaps    = NewContentService[models.Roadmap](models.CollectionRoadmaps, docs, events, log)
		articles    = NewContentService[models.Article](models.CollectionArticles, docs, events, log)
		profile     = NewProfileService(docs, events, log)
		messages    = NewMessageService(docs, events, log)
		importers   = []Importer{skills, projects, devServices, gallery, tools, desServices, sketches, books, thoughts, snippets, roadmaps, articles, profile, messages}
		collections = make([]string, 0, len(importers))
	)
	for _, imp := range importers {
		collections = append(collections, imp.CollectionName())
	}

	return &Service{
		Developer:     DeveloperContent{Skills: skills, Projects: projects, Services: devServices},
		Designer:      DesignerContent{Gallery: gallery, Tools: tools, Services: desServices},
		Creator:       CreatorContent{Sketches: sketches, Books: books, Thoughts: thoughts},
		Blogger:       BloggerContent{Snippets: snippets, Roadmaps: roadmaps, Articles: articles},
		Profile:       profile,
		Messages:      messages,
		EventLog:      NewEventLogService(events),
		Stats:         NewStatsService(docs, events, collections),
		Authorization: NewAuthService(repos.Auth, events, auth, log),
		Importers:     importers,
	}
}
