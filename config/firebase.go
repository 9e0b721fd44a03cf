package config

import (
	"context"
	"log"
	"os"

	firebase "firebase.google.com/go"
	"google.golang.org/api/option"
)

// FirebaseApp is a global variable for the Firebase app instance. It stays
// nil when no credentials are configured; push notifications are then skipped.
var FirebaseApp *firebase.App

// InitializeFirebase initializes Firebase app
func InitializeFirebase() {
	credentials := os.Getenv("FIREBASE_CREDENTIALS")
	if credentials == "" {
		log.Println("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return
	}

	opt := option.WithCredentialsFile(credentials)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Println("Failed to initialize Firebase:", err)
		return
	}

	FirebaseApp = app
	log.Println("Firebase initialized successfully!")
}
