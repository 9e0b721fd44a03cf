package controller

import (
	"context"
	"fmt"

	"github.com/hridoy-islam/attendanceadmin/config"

	"firebase.google.com/go/messaging"
)

// SendPushNotification sends a notification to a specific user's device
func SendPushNotification(token string, title string, body string) error {
	if config.FirebaseApp == nil {
		return fmt.Errorf("firebase is not configured")
	}

	// Get Firebase Messaging client
	client, err := config.FirebaseApp.Messaging(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get Firebase Messaging client: %w", err)
	}

	// Create notification payload
	message := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: token, // The user's FCM token
	}

	// Send the notification
	if _, err := client.Send(context.Background(), message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}
