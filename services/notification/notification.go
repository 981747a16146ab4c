package notification

import (
	"context"
	"fmt"

	userRepo "healthhub/database/repository/user"
	"healthhub/utils"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation. It resolves
// device tokens from user records.
type DefaultNotificationService struct {
	Users userRepo.UserRepository
}

// NewDefaultNotificationService wires the push service over the user store.
func NewDefaultNotificationService(users userRepo.UserRepository) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &DefaultNotificationService{Users: users}, nil
}

// SendPush looks up the user's FCM token and delivers a push message. A user
// without a registered device token is not an error worth retrying.
func (s *DefaultNotificationService) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	user, err := s.Users.GetByIDWithProjection(userID, bson.M{"id": 1, "fcmToken": 1})
	if err != nil {
		return fmt.Errorf("could not find user %s: %w", userID, err)
	}
	if user == nil || user.FCMToken == "" {
		utils.GetLogger().Debug("skipping push for user without device token", zap.String("userId", userID))
		return nil
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}

	response, err := utils.GetFCMClient().Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message to %s: %w", userID, err)
	}

	utils.GetLogger().Info("push notification sent",
		zap.String("userId", userID), zap.String("messageId", response))
	return nil
}
