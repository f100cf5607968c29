// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"quotecompare/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FirebaseClients bundles the Firebase services the backend talks to.
type FirebaseClients struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
	Messaging *messaging.Client
}

// Close releases the Firestore connection.
func (f *FirebaseClients) Close() error {
	if f == nil || f.Firestore == nil {
		return nil
	}
	return f.Firestore.Close()
}

// FirebaseInit initializes the Firebase App and its clients. It returns
// (nil, nil) when no credentials are configured so the caller can start in
// mock mode.
func FirebaseInit(ctx context.Context) (*FirebaseClients, error) {
	file, inline, ok := config.FirebaseCredentials()
	if !ok {
		return nil, nil
	}

	projectID := config.AppConfig.FirebaseProjectID
	var opt option.ClientOption
	if file != "" {
		opt = option.WithCredentialsFile(file)
	} else {
		sa, err := config.ParseServiceAccount(inline)
		if err != nil {
			return nil, fmt.Errorf("firebase: %w", err)
		}
		if projectID == "" {
			projectID = sa.ProjectID
		}
		opt = option.WithCredentialsJSON(inline)
	}

	var fbConfig *firebase.Config
	if projectID != "" {
		fbConfig = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Firestore client: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		_ = fsClient.Close()
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	return &FirebaseClients{
		App:       app,
		Auth:      authClient,
		Firestore: fsClient,
		Messaging: msgClient,
	}, nil
}
