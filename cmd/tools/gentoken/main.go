// Command gentoken mints a local development session token for an existing
// user id, signed with the configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"pathbridge-backend/config"
	"pathbridge-backend/pkg/auth"
)

func main() {
	userID := flag.String("user", "", "user id (subject claim)")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		log.Fatal("gentoken: -user is required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("gentoken: load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("gentoken: JWT_SECRET is not set")
	}

	token, err := auth.SignToken(cfg.JWTSecret, *userID, *email, *ttl)
	if err != nil {
		log.Fatalf("gentoken: sign: %v", err)
	}

	fmt.Println(token)
}
