// Command token mints an access token signed with the configured secret so
// admin and doctor endpoints can be exercised locally.
package main

import (
	"flag"
	"fmt"
	"os"

	"mediquick-api/cmd/bootstrap"
	"mediquick-api/config"
	"mediquick-api/internal/domain/entity"
	"mediquick-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	role := flag.String("role", entity.RoleAdmin, "admin, doctor or patient")
	user := flag.String("user", "", "user id (doctor id for doctors); random when empty")
	email := flag.String("email", "", "email claim")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := bootstrap.NewLogger(cfg.App)

	if cfg.IsProduction() {
		log.Error("Refusing to mint tokens in production")
		os.Exit(1)
	}
	if !entity.IsKnownRole(*role) {
		log.Errorf("Unknown role %q", *role)
		os.Exit(1)
	}

	userID := uuid.New()
	if *user != "" {
		if userID, err = uuid.Parse(*user); err != nil {
			log.Errorf("Invalid user id: %v", err)
			os.Exit(1)
		}
	}

	token, claims, err := jwt.NewJWTService(cfg.JWT).Issue(userID, *email, *role)
	if err != nil {
		log.Errorf("Failed to sign token: %v", err)
		os.Exit(1)
	}

	log.WithFields(logrus.Fields{
		"user_id":    claims.UserID,
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt.Time,
	}).Info("Token issued")
	fmt.Println(token)
}
