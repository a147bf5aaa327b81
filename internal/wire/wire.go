// Package wire provides dependency injection for the vaultboard
// application. It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/vaultboard/internal/adapters/sqlite"
	"github.com/example/vaultboard/internal/app"
	"github.com/example/vaultboard/internal/db"
	"github.com/example/vaultboard/internal/ports/primary"
)

var (
	cardService    primary.CardService
	publishService primary.PublishService
	once           sync.Once
)

// CardService returns the singleton CardService instance.
func CardService() primary.CardService {
	once.Do(initServices)
	return cardService
}

// PublishService returns the singleton PublishService instance.
func PublishService() primary.PublishService {
	once.Do(initServices)
	return publishService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	cardRepo := sqlite.NewCardRepository(database)
	stateRepo := sqlite.NewPublishStateRepository(database)
	git := app.NewGitService()

	cardService = app.NewCardService(cardRepo)
	publishService = app.NewPublishService(cardService, cardRepo, stateRepo, git)
}
