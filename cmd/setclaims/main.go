// setclaims - операторская утилита назначения ролей пользователям Firebase.
//
// Каждый аргумент - пара email=role; роль записывается в custom claims
// пользователя (last write wins). Пары применяются последовательно,
// ошибка одной пары не прерывает остальные.
//
// Пример:
//
//	setclaims -credentials serviceAccountKey.json admin@example.com=admin seller@example.com=seller
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/yemsy26/comercio-fenix-v1/internal/claims"
	claimsfirebase "github.com/yemsy26/comercio-fenix-v1/internal/claims/firebase"
	platformlogging "github.com/yemsy26/comercio-fenix-v1/pkg/logging"
)

func main() {
	credentials := flag.String("credentials", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		"path to the service account key file (defaults to GOOGLE_APPLICATION_CREDENTIALS)")
	project := flag.String("project", os.Getenv("FIREBASE_PROJECT_ID"),
		"firebase project id (defaults to FIREBASE_PROJECT_ID)")
	flag.Parse()

	assignments, err := parseAssignments(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Usage: setclaims [-credentials file] [-project id] email=role [email=role ...]\n")
		os.Exit(2)
	}

	logger, err := platformlogging.New(platformlogging.Config{
		ServiceName: "setclaims",
		Env:         "local",
		Level:       os.Getenv("LOG_LEVEL"),
		Format:      os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer platformlogging.Sync(logger)

	ctx := context.Background()

	// Инициализируем Firebase app с service account credentials
	var opts []option.ClientOption
	if *credentials != "" {
		opts = append(opts, option.WithCredentialsFile(*credentials))
	}
	fbCfg := &firebase.Config{}
	if *project != "" {
		fbCfg.ProjectID = *project
	}
	fbApp, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase app: %v", err)
	}

	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to create Firebase auth client: %v", err)
	}

	svc := claims.NewService(logger, claimsfirebase.NewManager(authClient))

	result := svc.Apply(ctx, assignments)
	logger.Info("run finished",
		zap.Int("applied", result.Applied),
		zap.Int("failed", result.Failed),
	)
}

// parseAssignments разбирает аргументы вида email=role
func parseAssignments(args []string) ([]claims.Assignment, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no assignments given")
	}

	assignments := make([]claims.Assignment, 0, len(args))
	for _, arg := range args {
		email, role, ok := strings.Cut(arg, "=")
		if !ok || email == "" || role == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected email=role)", arg)
		}
		assignments = append(assignments, claims.Assignment{
			Email: email,
			Role:  role,
		})
	}
	return assignments, nil
}
