package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/crewdeck/crewdeck/cmd/crewdeck/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewdeck",
		Short: "Crewdeck admin dashboard",
		Long:  `Crewdeck is a role-aware terminal dashboard for the project, task and employee tracker backend.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewRegisterCommand())
	rootCmd.AddCommand(commands.NewLoginCommand())
	rootCmd.AddCommand(commands.NewLogoutCommand())
	rootCmd.AddCommand(commands.NewOpenCommand())
	rootCmd.AddCommand(commands.NewProjectsCommand())
	rootCmd.AddCommand(commands.NewTasksCommand())
	rootCmd.AddCommand(commands.NewUsersCommand())
	rootCmd.AddCommand(commands.NewProfileCommand())
	rootCmd.AddCommand(commands.NewDevServerCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
