package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/model"
	"talk-to-legends-be/internal/pkg/logger"
	"talk-to-legends-be/internal/repository/unitofwork"
	"talk-to-legends-be/pkg/database"
	"talk-to-legends-be/pkg/plan"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var nopLogger = logger.NewNopLogger()

// newTestFactory opens a private in-memory database with the full schema.
func newTestFactory(t *testing.T) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.NewSqliteDB(dsn, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return unitofwork.NewRepositoryFactory(db), db
}

func seedUser(t *testing.T, factory unitofwork.RepositoryFactory, tier plan.Tier) *entity.User {
	t.Helper()
	id := uuid.New()
	user := &entity.User{
		Id:           id,
		Email:        id.String()[:8] + "@example.com",
		PasswordHash: "x",
		Plan:         tier,
	}
	require.NoError(t, factory.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), user))
	return user
}

func seedConversation(t *testing.T, factory unitofwork.RepositoryFactory, userId uuid.UUID, legend string, createdAt time.Time) *entity.Conversation {
	t.Helper()
	c := &entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Legend:    legend,
		Title:     "seed",
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	require.NoError(t, factory.NewUnitOfWork(context.Background()).ConversationRepository().Create(context.Background(), c))
	return c
}

func seedMessage(t *testing.T, factory unitofwork.RepositoryFactory, conversationId uuid.UUID, sender entity.Sender, createdAt time.Time) *entity.Message {
	t.Helper()
	m := &entity.Message{
		Id:             uuid.New(),
		ConversationId: conversationId,
		Content:        "seeded message",
		Sender:         sender,
		CreatedAt:      createdAt.UTC(),
	}
	require.NoError(t, factory.NewUnitOfWork(context.Background()).MessageRepository().Create(context.Background(), m))
	return m
}
