package main

import (
	"fmt"
	"time"

	"proposal_governance_system/configs"
	"proposal_governance_system/internal"
	"proposal_governance_system/internal/db"
	"proposal_governance_system/internal/db/models"
	"proposal_governance_system/internal/db/repositories"
	"proposal_governance_system/internal/di"
	"proposal_governance_system/internal/services"

	"github.com/go-co-op/gocron"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

func main() {
	s := gocron.NewScheduler(time.UTC)

	config, err := configs.LoadResolutionServiceConfig()
	logger := di.NewLogger(config.App, config.Logger)

	if err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	logger.Info("config loaded")

	logger.Info("starting db")
	database, err := db.StartDB(config.DB, logger)
	if err != nil {
		logger.Fatalw("failed to start db", "error", err)
	}
	logger.Info("db started")

	s.Cron(config.Schedule.Cron).Do(func() {
		logger.Info("initializing repositories and services")
		proposalRepository := repositories.NewProposalRepository(database)
		voteRepository := repositories.NewVoteRepository(database)
		resolution := services.NewResolutionService(proposalRepository, voteRepository, config.Governance, logger)

		logger.Info("sweeping expired proposals")
		resolved, err := resolution.SweepExpired()
		if err != nil {
			logger.Errorw("failed to sweep proposals", "error", err)
			return
		}

		if len(resolved) == 0 {
			logger.Info("no proposals resolved")
			return
		}

		for _, proposal := range resolved {
			sendNotification(proposal, config, logger)
		}

		logger.Infow("proposals resolved", "count", len(resolved))
	})

	s.StartBlocking()
}

func sendNotification(
	proposal *models.Proposal,
	config configs.ResolutionServiceConfig,
	logger *zap.SugaredLogger,
) {
	if config.Telegram.Token == "" {
		return
	}

	bot, err := tgbotapi.NewBotAPI(config.Telegram.Token)
	if err != nil {
		logger.Errorw("could not create bot", "error", err)
		return
	}

	_, err = bot.Send(notificationMessage(proposal, config.Telegram.AnnouncementChatID))
	if err != nil {
		logger.Errorw("could not send message", "error", err)
	}
}

func notificationMessage(proposal *models.Proposal, chatID int64) tgbotapi.MessageConfig {
	text := fmt.Sprintf(
		"%s: proposal \"%s\" (voting ended %s).",
		proposal.Status.CapitalizedString(),
		proposal.Title,
		internal.Format(proposal.VotingEndDate),
	)
	return tgbotapi.NewMessage(chatID, text)
}
