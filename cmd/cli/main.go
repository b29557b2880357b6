package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// swappable in tests
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "corebank-cli",
		Short: "CoreBank admin CLI",
		Long:  `A command line interface for operating the CoreBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the CoreBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("COREBANK_TOKEN"), "Bearer token (defaults to COREBANK_TOKEN)")

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(applicationCmd("loans", "Loan application operations"))
	rootCmd.AddCommand(applicationCmd("insurance", "Insurance application operations"))
	rootCmd.AddCommand(hashPasswordCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Authenticate and print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doPost("/api/auth/login", map[string]string{
				"email":    args[0],
				"password": args[1],
			})
			if err != nil {
				return err
			}

			var resp struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}

			fmt.Println(resp.Token)
			return nil
		},
	}
}

// applicationCmd builds the shared command tree for loans and insurance;
// both expose the same list/stats/approve/reject surface.
func applicationCmd(name, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
	}

	var all bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/" + name
			if all {
				path += "/all"
			}
			body, err := doGet(path)
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
	listCmd.Flags().BoolVar(&all, "all", false, "List all applications (admin)")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-status application counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doGet("/api/v1/" + name + "/stats")
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}

	cmd.AddCommand(listCmd, statsCmd, decideCmd(name, "approve"), decideCmd(name, "reject"))
	return cmd
}

func decideCmd(name, decision string) *cobra.Command {
	return &cobra.Command{
		Use:   decision + " <id>",
		Short: decision + " a pending application",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doPost(
				fmt.Sprintf("/api/v1/%s/%s/decide", name, args[0]),
				map[string]string{"decision": decision},
			)
			if err != nil {
				return err
			}
			return printRawJSON(body)
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash, for seeding admin users",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func doGet(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return doRequest(req)
}

func doPost(path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	return doRequest(req)
}

func doRequest(req *http.Request) ([]byte, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed (Status: %d): %s", resp.StatusCode, truncate(string(body), 200))
	}
	return body, nil
}

func printRawJSON(body []byte) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	printJSON(v)
	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
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
