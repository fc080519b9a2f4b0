// Command seed populates the catalog with demo accounts and sample use
// cases. Intended for development databases; it skips records that already
// exist.
package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/usecase-catalog/internal/auth"
	"github.com/spec-kit/usecase-catalog/internal/config"
	"github.com/spec-kit/usecase-catalog/internal/domain"
	"github.com/spec-kit/usecase-catalog/internal/observability"
	"github.com/spec-kit/usecase-catalog/internal/persistence"
	"github.com/spec-kit/usecase-catalog/internal/repository"
)

type account struct {
	name     string
	email    string
	password string
	role     domain.Role
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	users := repository.NewUserRepository(pg.PoolHandle())
	useCases := repository.NewUseCaseRepository(pg.PoolHandle())

	seedAccounts(ctx, users, cfg.Auth.BcryptCost, logger)
	seedUseCases(ctx, useCases, logger)

	logger.Info("seed complete")
}

func seedAccounts(ctx context.Context, users repository.UserRepository, bcryptCost int, logger *zap.Logger) {
	accounts := []account{
		{name: "Admin", email: "admin@example.com", password: "admin-dev-password", role: domain.RoleAdmin},
		{name: "Editor", email: "editor@example.com", password: "editor-dev-password", role: domain.RoleEditor},
	}

	for _, acc := range accounts {
		if _, err := users.GetByEmail(ctx, acc.email); err == nil {
			logger.Info("account exists, skipping", zap.String("email", acc.email))
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.Fatal("lookup account", zap.Error(err))
		}

		hash, err := auth.HashPassword(acc.password, bcryptCost)
		if err != nil {
			logger.Fatal("hash password", zap.Error(err))
		}
		user := &domain.User{
			Name:         acc.name,
			Email:        acc.email,
			PasswordHash: hash,
			Role:         acc.role,
		}
		if err := users.Create(ctx, user); err != nil {
			logger.Fatal("create account", zap.Error(err))
		}
		logger.Info("created account", zap.String("email", acc.email), zap.String("role", string(acc.role)))
	}
}

func seedUseCases(ctx context.Context, repo repository.UseCaseRepository, logger *zap.Logger) {
	existing, err := repo.List(ctx)
	if err != nil {
		logger.Fatal("list use cases", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("use cases present, skipping sample data", zap.Int("count", len(existing)))
		return
	}

	samples := sampleUseCases()

	// First pass inserts and records the generated ids so the second pass
	// can rewrite the sample cross-references to real ids.
	ids := make([]string, len(samples))
	for i := range samples {
		if err := repo.Create(ctx, &samples[i]); err != nil {
			logger.Fatal("create use case", zap.Error(err))
		}
		ids[i] = samples[i].ID
		logger.Info("created use case", zap.String("title", samples[i].Title))
	}

	for i, related := range sampleRelations() {
		if len(related) == 0 {
			continue
		}
		resolved := make([]string, 0, len(related))
		for _, idx := range related {
			resolved = append(resolved, ids[idx])
		}
		if _, err := repo.Update(ctx, ids[i], repository.UseCaseUpdate{RelatedUseCaseIDs: resolved}); err != nil {
			logger.Fatal("link related use cases", zap.Error(err))
		}
	}
}

func sampleUseCases() []domain.UseCase {
	return []domain.UseCase{
		{
			Title:            "AI-Powered Customer Sentiment Analysis",
			ShortDescription: "Automated analysis of customer feedback across multiple channels using natural language processing to identify trends and sentiment patterns.",
			FullDescription:  "This use case implements an advanced AI system that automatically analyzes customer feedback from various sources including emails, surveys, social media, and support tickets. The system uses natural language processing to identify sentiment patterns, trending topics, and actionable insights, with real-time dashboards and automated alerts for negative sentiment spikes.",
			Department:       domain.DepartmentMarketing,
			Status:           domain.StatusLive,
			OwnerName:        "Sarah Mueller",
			OwnerEmail:       "sarah.mueller@example.com",
			BusinessImpact:   "Reduced response time to customer issues by 45%, improved customer satisfaction scores by 23%.",
			TechnologyStack:  []string{"OpenAI", "Azure", "Python", "Power BI"},
			Tags:             []string{"Marketing", "NLP", "GenAI", "Customer Experience"},
			InternalLinks: domain.InternalLinks{
				Sharepoint: "https://sharepoint.example.com/sentiment-analysis",
				Confluence: "https://confluence.example.com/sentiment",
			},
			ApplicationURL: "https://sentiment.example.com",
		},
		{
			Title:            "Intelligent Document Processing for Procurement",
			ShortDescription: "Automated extraction and processing of supplier invoices and contracts using computer vision and machine learning.",
			FullDescription:  "This procurement automation solution leverages computer vision and machine learning to automatically process incoming supplier documents. The system extracts key information from invoices, purchase orders, and contracts, validates data against existing records, and routes documents for approval.",
			Department:       domain.DepartmentProcurement,
			Status:           domain.StatusMVP,
			OwnerName:        "Thomas Weber",
			OwnerEmail:       "thomas.weber@example.com",
			BusinessImpact:   "Processing time reduced from 4 hours to 15 minutes per document, 98% accuracy rate.",
			TechnologyStack:  []string{"Azure Document Intelligence", "SAP", "Python"},
			Tags:             []string{"Procurement", "OCR", "Automation", "SAP"},
			InternalLinks: domain.InternalLinks{
				Sharepoint: "https://sharepoint.example.com/doc-processing",
			},
		},
		{
			Title:            "Smart Lab Assistant",
			ShortDescription: "AI-powered research assistant that helps scientists find relevant studies, analyze experimental data, and generate research hypotheses.",
			FullDescription:  "The Smart Lab Assistant integrates with the laboratory information management system and provides intelligent assistance throughout the research process: literature search, analysis of experimental results, suggestion of test parameters, and hypothesis generation based on historical data patterns.",
			Department:       domain.DepartmentRnD,
			Status:           domain.StatusEvaluation,
			OwnerName:        "Dr. Anna Schmidt",
			OwnerEmail:       "anna.schmidt@example.com",
			BusinessImpact:   "Early results show 30% faster literature review, 25% reduction in failed experiments.",
			TechnologyStack:  []string{"OpenAI", "Python", "TensorFlow"},
			Tags:             []string{"R&D", "GenAI", "Research", "Innovation"},
			InternalLinks: domain.InternalLinks{
				Demo: "https://demo.example.com/lab-assistant",
			},
		},
		{
			Title:            "Predictive Maintenance for Production Equipment",
			ShortDescription: "Machine learning models that predict equipment failures before they occur, enabling proactive maintenance scheduling.",
			FullDescription:  "This predictive maintenance system uses IoT sensors and machine learning to monitor production equipment in real-time. Predictive models identify patterns that precede equipment failures, and maintenance teams receive automated alerts with failure probability scores and recommended actions.",
			Department:       domain.DepartmentOperations,
			Status:           domain.StatusLive,
			OwnerName:        "Michael Becker",
			OwnerEmail:       "michael.becker@example.com",
			BusinessImpact:   "Unplanned downtime reduced by 62%, maintenance costs decreased by 28%.",
			TechnologyStack:  []string{"Python", "scikit-learn", "Grafana", "IoT"},
			Tags:             []string{"Operations", "IoT", "Predictive Analytics"},
		},
	}
}

// sampleRelations maps each sample (by index) to the samples it references.
func sampleRelations() [][]int {
	return [][]int{
		{1},    // sentiment analysis -> document processing
		{0, 3}, // document processing -> sentiment analysis, predictive maintenance
		{},     // lab assistant
		{1},    // predictive maintenance -> document processing
	}
}
