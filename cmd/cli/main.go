package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/surcofin/cajaflow/internal/infrastructure/logger"
	"github.com/surcofin/cajaflow/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cajaflow-cli",
		Short: "CajaFlow CLI tool",
		Long:  `A command line interface for the CajaFlow cash movement API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CajaFlow API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(ratesCmd())
	rootCmd.AddCommand(pendingCmd())
	rootCmd.AddCommand(confirmCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func ratesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Show the current exchange rate snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet("/api/v1/rates/")
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}
}

func pendingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "pending",
		Short: "List pending inflows awaiting conciliation",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := apiGet(fmt.Sprintf("/api/v1/movements/pending?limit=%d", limit))
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of movements to list")

	return cmd
}

func confirmCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "confirm <movement-id>...",
		Short: "Confirm pending inflows by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := confirmPayload(args, actor)
			if err != nil {
				return err
			}

			body, err := apiPost("/api/v1/conciliation/confirm", payload)
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().StringVar(&actor, "by", "", "Name recorded in the audit trail")
	cmd.MarkFlagRequired("by")

	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New(logger.Config{Level: "info", Format: "console"})
			if down {
				return postgres.RunMigrationsDown(databaseURL, path, log)
			}
			return postgres.RunMigrations(databaseURL, path, log)
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Database URL")
	cmd.Flags().StringVar(&path, "path", "migrations", "Migrations directory")
	cmd.Flags().BoolVar(&down, "down", false, "Roll back the last migration instead")

	return cmd
}

func confirmPayload(ids []string, actor string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"movement_ids": ids,
		"confirmed_by": actor,
	})
}

func apiGet(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, body)
	}

	return body, nil
}

func apiPost(path string, payload []byte) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, body)
	}

	return body, nil
}

func printJSON(body []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		// not JSON, print as-is
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(out.String())
	return nil
}
