package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/Shyam-123pandey/NITM-content-hub/internal/app/models"
	appRepos "github.com/Shyam-123pandey/NITM-content-hub/internal/app/repositories"
)

const defaultAdminEmail = "admin@nitm.ac.in"

// CreateDefaultData creates the default admin account and the campus-wide
// chat rooms if they don't exist. Failures are collected and reported but
// never abort startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	chatRepo := appRepos.NewChatRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin user --- //
	adminID, err := ensureAdminUser(ctx, userRepo, lgr)
	if err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	// --- Campus-wide chat rooms --- //
	if adminID > 0 {
		if err := ensureDefaultChats(ctx, chatRepo, adminID, lgr); err != nil {
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}

func ensureAdminUser(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) (int64, error) {
	existing, err := userRepo.GetByEmail(ctx, defaultAdminEmail)
	if err == nil {
		return existing.ID, nil
	}

	lgr.Info().Msg("Creating default admin user...")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return 0, err
	}

	admin := &appModels.User{
		Name:     "System Administrator",
		Email:    defaultAdminEmail,
		Password: string(hashedPassword),
		Role:     appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return 0, err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created successfully")
	return admin.ID, nil
}

func ensureDefaultChats(ctx context.Context, chatRepo *appRepos.ChatRepository, adminID int64, lgr zerolog.Logger) error {
	existing, err := chatRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing chats for seeding")
		return err
	}

	names := make(map[string]bool, len(existing))
	for _, chat := range existing {
		names[chat.Name] = true
	}

	defaults := []struct {
		name        string
		chatType    appModels.ChatType
		description string
	}{
		{"Campus Commons", appModels.ChatGeneral, "Open room for the whole campus"},
		{"Achievements Wall", appModels.ChatAchievement, "Share milestones and wins"},
		{"Resource Exchange", appModels.ChatResource, "Notes, papers and study material"},
	}

	var finalErr error
	now := time.Now()
	for _, d := range defaults {
		if names[d.name] {
			continue
		}

		chat := &appModels.Chat{
			Name:        d.name,
			Type:        d.chatType,
			Category:    appModels.ChatCategoryAll,
			Description: d.description,
			IsActive:    true,
		}
		chat.AddMember(adminID, appModels.MemberAdmin, now)
		chat.RecomputeStats()

		if err := chatRepo.Create(ctx, chat); err != nil {
			lgr.Error().Err(err).Str("chat", d.name).Msg("Error creating default chat")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("chat", d.name).Msg("Default chat created")
	}

	return finalErr
}
