package main

import (
	"context"
	"fmt"

	"github.com/jatochnietverkeerd/dd-sub000/internal/model"
	"github.com/jatochnietverkeerd/dd-sub000/internal/repository"
	"github.com/jatochnietverkeerd/dd-sub000/internal/service"
	"github.com/jatochnietverkeerd/dd-sub000/pkg/logger"

	"github.com/spf13/cobra"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the first admin account",
	Long: `Creates an admin account so the back office can be logged into on a
fresh installation. Fails when the username or email already exists.`,
	Example: `  dealerctl seed-admin --username beheer --email beheer@autobedrijf.nl --password geheim123`,
	RunE:    runSeedAdmin,
}

func init() {
	rootCmd.AddCommand(seedAdminCmd)

	seedAdminCmd.Flags().String("username", "admin", "Username for the admin account")
	seedAdminCmd.Flags().String("email", "", "Email for the admin account")
	seedAdminCmd.Flags().String("password", "", "Password for the admin account (min 6 characters)")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")
}

func runSeedAdmin(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("seed-admin")

	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	userService := service.NewUserService(repository.NewUserRepository(db))
	user, err := userService.CreateUser(context.Background(), service.CreateUserRequest{
		Username: username,
		Email:    email,
		Password: password,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info().Str("id", user.ID.String()).Str("username", user.Username).Msg("admin account created")
	fmt.Printf("Admin account %q created (%s)\n", user.Username, user.Email)
	return nil
}
