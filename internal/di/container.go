package di

import (
	"context"
	"fmt"
	"sync"

	"notes-block-api/internal/auth"
	"notes-block-api/internal/auth/config"
	"notes-block-api/internal/notes"
	"notes-block-api/internal/shared/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Container wires the application modules together with proper lifecycle
// management
type Container struct {
	mu sync.RWMutex
	// Module instances
	AuthModule  *auth.AuthModule
	NotesModule *notes.NotesModule
	// Database connections
	MongoDB *mongo.Database
	// Configuration
	AuthConfig *config.Config
	// Loggers
	Logger    logger.Logger
	ZapLogger *zap.Logger
}

// NewContainer creates a new DI container
func NewContainer(log logger.Logger, zlog *zap.Logger) *Container {
	return &Container{
		Logger:    log,
		ZapLogger: zlog,
	}
}

// InitializeAuth initializes the authentication module
func (c *Container) InitializeAuth(mongoDB *mongo.Database, authConfig *config.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.MongoDB = mongoDB
	c.AuthConfig = authConfig

	authModule, err := auth.NewAuthModule(mongoDB, authConfig, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}

	c.AuthModule = authModule
	return nil
}

// InitializeNotes initializes the notes module. The auth module must be
// initialized first: deleting a user cascades into that user's notes, so
// note removal is registered as an auth cleanup hook here.
func (c *Container) InitializeNotes() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.AuthModule == nil {
		return fmt.Errorf("auth module must be initialized before notes module")
	}
	if c.MongoDB == nil {
		return fmt.Errorf("MongoDB must be initialized before notes module")
	}

	notesModule, err := notes.NewNotesModule(c.MongoDB, c.ZapLogger, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to create notes module: %w", err)
	}

	noteUsecase := notesModule.GetUsecase()
	c.AuthModule.GetUsecase().OnUserDelete(func(ctx context.Context, userID string) error {
		_, err := noteUsecase.DeleteAllNotes(ctx, userID)
		return err
	})

	c.NotesModule = notesModule
	return nil
}

// GetAuthModule returns the auth module instance
func (c *Container) GetAuthModule() *auth.AuthModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthModule
}

// GetNotesModule returns the notes module instance
func (c *Container) GetNotesModule() *notes.NotesModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotesModule
}

// HealthCheck performs a health check on the wired services
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Ping(ctx, nil); err != nil {
			return fmt.Errorf("MongoDB health check failed: %w", err)
		}
	}
	return nil
}

// Close shuts down the container and all its modules
func (c *Container) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.NotesModule != nil {
		if err := c.NotesModule.Stop(); err != nil {
			c.Logger.Errorf("failed to stop notes module: %v", err)
		}
	}
	if c.AuthModule != nil {
		if err := c.AuthModule.Stop(); err != nil {
			c.Logger.Errorf("failed to stop auth module: %v", err)
		}
	}
	if c.MongoDB != nil {
		if err := c.MongoDB.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
		}
	}
	return nil
}
