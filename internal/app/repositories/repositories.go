package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	ContentRepository     *ContentRepository
	DiscussionRepository  *DiscussionRepository
	OpportunityRepository *OpportunityRepository
	CalendarRepository    *CalendarRepository
	ChatRepository        *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		ContentRepository:     NewContentRepository(db),
		DiscussionRepository:  NewDiscussionRepository(db),
		OpportunityRepository: NewOpportunityRepository(db),
		CalendarRepository:    NewCalendarRepository(db),
		ChatRepository:        NewChatRepository(db),
	}
}
