package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pymebooks-cli",
		Short: "PymeBooks CLI tool",
		Long:  `A command line interface for interacting with the PymeBooks API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PymeBooks API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(clientsCmd())
	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(healthCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the business dashboard",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/api/v1/dashboard")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			var dash map[string]any
			if err := json.Unmarshal(body, &dash); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}
			printJSON(dash)
		},
	}
}

func clientsCmd() *cobra.Command {
	clientsCmd := &cobra.Command{
		Use:   "clients",
		Short: "Client operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/api/v1/clients/")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			var resp struct {
				Items []struct {
					ID    string `json:"id"`
					Name  string `json:"name"`
					Email string `json:"email"`
					TaxID string `json:"tax_id"`
				} `json:"items"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}

			fmt.Printf("%-28s %-30s %-25s %s\n", "ID", "NAME", "EMAIL", "TAX ID")
			for _, c := range resp.Items {
				fmt.Printf("%-28s %-30s %-25s %s\n", c.ID, truncate(c.Name, 30), truncate(c.Email, 25), c.TaxID)
			}
		},
	}

	accountCmd := &cobra.Command{
		Use:   "account <client-id>",
		Short: "Show a client's current account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/api/v1/clients/" + args[0] + "/account")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			var account map[string]any
			if err := json.Unmarshal(body, &account); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}
			printJSON(account)
		},
	}

	clientsCmd.AddCommand(listCmd)
	clientsCmd.AddCommand(accountCmd)
	return clientsCmd
}

func accountsCmd() *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Current-account operations",
	}

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the receivables summary across all clients",
		Run: func(cmd *cobra.Command, args []string) {
			body, err := apiGet("/api/v1/accounts/summary")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}

			var summary map[string]any
			if err := json.Unmarshal(body, &summary); err != nil {
				fmt.Printf("Failed to parse response: %v\n", err)
				os.Exit(1)
			}
			printJSON(summary)
		},
	}

	accountsCmd.AddCommand(summaryCmd)
	return accountsCmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API readiness",
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := apiGet("/ready"); err != nil {
				fmt.Printf("API not ready: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("API ready")
		},
	}
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
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
