package usecase_test

import (
	"context"
	"errors"
	"testing"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendMessage(t *testing.T) {
	receiver := &domain.User{ID: "user2", Name: "Bea Receiver"}

	t.Run("Should fail when user is not authenticated", func(t *testing.T) {
		uc := usecase.NewMessageUsecase(new(MockMessageRepo), new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		_, err := uc.SendMessage(context.Background(), "user2", "hello")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should fail when the recipient does not exist", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewMessageUsecase(new(MockMessageRepo), new(MockNotificationRepo), userRepo, relaxedInvalidator())

		userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		_, err := uc.SendMessage(ctx, "ghost", "hello")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Recipient not found")
	})

	t.Run("Should pair the message with a MESSAGE notification", func(t *testing.T) {
		messageRepo := new(MockMessageRepo)
		notificationRepo := new(MockNotificationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewMessageUsecase(messageRepo, notificationRepo, userRepo, relaxedInvalidator())

		userRepo.On("GetByID", mock.Anything, "user2").Return(receiver, nil)
		messageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil).Once()
		notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Once().Run(func(args mock.Arguments) {
			n := args.Get(1).(*domain.Notification)
			assert.Equal(t, "user2", n.UserID)
			assert.Equal(t, "user1", n.CreatorID)
			assert.Equal(t, domain.NotificationMessage, n.Type)
		})

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		msg, err := uc.SendMessage(ctx, "user2", "hello")
		assert.NoError(t, err)
		assert.Equal(t, "user1", msg.SenderID)
		messageRepo.AssertExpectations(t)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Should deliver the message even when the notification write fails", func(t *testing.T) {
		messageRepo := new(MockMessageRepo)
		notificationRepo := new(MockNotificationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewMessageUsecase(messageRepo, notificationRepo, userRepo, relaxedInvalidator())

		userRepo.On("GetByID", mock.Anything, "user2").Return(receiver, nil)
		messageRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		notificationRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		msg, err := uc.SendMessage(ctx, "user2", "hello")
		assert.NoError(t, err)
		assert.NotNil(t, msg)
	})
}

func TestUnreadCountsDegrade(t *testing.T) {
	t.Run("Should return zero messages for anonymous callers", func(t *testing.T) {
		uc := usecase.NewMessageUsecase(new(MockMessageRepo), new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		count, err := uc.UnreadMessageCount(context.Background())
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Should return zero messages when the count query fails", func(t *testing.T) {
		messageRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(messageRepo, new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		messageRepo.On("CountUnread", mock.Anything, "user1").Return(int64(0), errors.New("db down"))

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		count, err := uc.UnreadMessageCount(ctx)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("Should return zero notifications when the count query fails", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(notificationRepo, relaxedInvalidator())

		notificationRepo.On("CountUnread", mock.Anything, "user1").Return(int64(0), errors.New("db down"))

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		count, err := uc.UnreadCount(ctx)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestMarkNotificationsRead(t *testing.T) {
	t.Run("Should mark only the given ids", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(notificationRepo, relaxedInvalidator())

		notificationRepo.On("MarkRead", mock.Anything, "user1", []string{"n1", "n2"}).Return(nil).Once()

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		err := uc.MarkNotificationsRead(ctx, []string{"n1", "n2"})
		assert.NoError(t, err)
		notificationRepo.AssertExpectations(t)
		notificationRepo.AssertNotCalled(t, "MarkAllRead", mock.Anything, mock.Anything)
	})

	t.Run("Should mark everything when no ids are given", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(notificationRepo, relaxedInvalidator())

		notificationRepo.On("MarkAllRead", mock.Anything, "user1").Return(nil).Once()

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		err := uc.MarkNotificationsRead(ctx, nil)
		assert.NoError(t, err)
		notificationRepo.AssertExpectations(t)
	})
}

func TestToggleFollow(t *testing.T) {
	target := &domain.User{ID: "user2", Name: "Bea Target"}

	t.Run("Should refuse a self-follow", func(t *testing.T) {
		uc := usecase.NewFollowUsecase(new(MockFollowRepo), new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		_, err := uc.ToggleFollow(ctx, "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot follow yourself")
	})

	t.Run("Should follow and notify when not yet following", func(t *testing.T) {
		followRepo := new(MockFollowRepo)
		notificationRepo := new(MockNotificationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewFollowUsecase(followRepo, notificationRepo, userRepo, relaxedInvalidator())

		userRepo.On("GetByID", mock.Anything, "user2").Return(target, nil)
		followRepo.On("Exists", mock.Anything, "user1", "user2").Return(false, nil)
		followRepo.On("Create", mock.Anything, "user1", "user2").Return(nil).Once()
		notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Once().Run(func(args mock.Arguments) {
			n := args.Get(1).(*domain.Notification)
			assert.Equal(t, domain.NotificationFollow, n.Type)
			assert.Equal(t, "user2", n.UserID)
		})

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		following, err := uc.ToggleFollow(ctx, "user2")
		assert.NoError(t, err)
		assert.True(t, following)
		followRepo.AssertExpectations(t)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Should unfollow silently when already following", func(t *testing.T) {
		followRepo := new(MockFollowRepo)
		notificationRepo := new(MockNotificationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewFollowUsecase(followRepo, notificationRepo, userRepo, relaxedInvalidator())

		userRepo.On("GetByID", mock.Anything, "user2").Return(target, nil)
		followRepo.On("Exists", mock.Anything, "user1", "user2").Return(true, nil)
		followRepo.On("Delete", mock.Anything, "user1", "user2").Return(nil).Once()

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		following, err := uc.ToggleFollow(ctx, "user2")
		assert.NoError(t, err)
		assert.False(t, following)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListReadsDegrade(t *testing.T) {
	ctx := authedCtx("user1", domain.RoleStudent, "MIT")

	t.Run("Should return an empty feed when the notification query fails", func(t *testing.T) {
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewNotificationUsecase(notificationRepo, relaxedInvalidator())

		notificationRepo.On("FetchForUser", mock.Anything, "user1").Return(nil, errors.New("db down"))

		notifications, err := uc.GetNotifications(ctx)
		assert.NoError(t, err)
		assert.Empty(t, notifications)
		assert.NotNil(t, notifications)
	})

	t.Run("Should return empty conversations when the query fails", func(t *testing.T) {
		messageRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(messageRepo, new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		messageRepo.On("FetchConversations", mock.Anything, "user1").Return(nil, errors.New("db down"))

		messages, err := uc.GetConversations(ctx)
		assert.NoError(t, err)
		assert.Empty(t, messages)
		assert.NotNil(t, messages)
	})

	t.Run("Should return an empty thread when the query fails", func(t *testing.T) {
		messageRepo := new(MockMessageRepo)
		uc := usecase.NewMessageUsecase(messageRepo, new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		messageRepo.On("FetchThread", mock.Anything, "user1", "user2").Return(nil, errors.New("db down"))

		messages, err := uc.GetThread(ctx, "user2")
		assert.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("Should return an empty network when the query fails", func(t *testing.T) {
		followRepo := new(MockFollowRepo)
		uc := usecase.NewFollowUsecase(followRepo, new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		followRepo.On("FetchNetwork", mock.Anything, "user1").Return(nil, errors.New("db down"))

		users, err := uc.GetNetwork(ctx)
		assert.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Should return empty suggestions when the query fails", func(t *testing.T) {
		followRepo := new(MockFollowRepo)
		uc := usecase.NewFollowUsecase(followRepo, new(MockNotificationRepo), new(MockUserRepo), relaxedInvalidator())

		followRepo.On("FetchSuggestions", mock.Anything, "user1", mock.Anything).Return(nil, errors.New("db down"))

		users, err := uc.GetSuggestedUsers(ctx)
		assert.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Should still require authentication before degrading", func(t *testing.T) {
		uc := usecase.NewNotificationUsecase(new(MockNotificationRepo), relaxedInvalidator())

		_, err := uc.GetNotifications(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
	})
}
