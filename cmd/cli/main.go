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
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string

	// swappable for tests
	bcryptGenerate = bcrypt.GenerateFromPassword
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopledger-cli",
		Short: "ShopLedger CLI tool",
		Long:  `A command line interface for interacting with the ShopLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ShopLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("SHOPLEDGER_TOKEN"), "Bearer token for authenticated endpoints")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		itemsCmd(),
		walletCmd(),
		hashPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username> <password>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/accounts", map[string]string{
				"username": args[0],
				"password": args[1],
			})
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and print a bearer token",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/auth/login", map[string]string{
				"username": args[0],
				"password": args[1],
			})
		},
	}
}

func itemsCmd() *cobra.Command {
	itemsCmd := &cobra.Command{
		Use:   "items",
		Short: "Catalog operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/items", nil)
		},
	}

	var price, stock int64
	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a catalog item (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/admin/items", map[string]any{
				"name":  args[0],
				"price": price,
				"stock": stock,
			})
		},
	}
	createCmd.Flags().Int64Var(&price, "price", 0, "Item price")
	createCmd.Flags().Int64Var(&stock, "stock", 0, "Initial stock")

	buyCmd := &cobra.Command{
		Use:   "buy <item-id>",
		Short: "Purchase one unit of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/items/"+args[0]+"/purchase", nil)
		},
	}

	itemsCmd.AddCommand(listCmd, createCmd, buyCmd)
	return itemsCmd
}

func walletCmd() *cobra.Command {
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show current balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/wallet/balance", nil)
		},
	}

	var amount int64
	spendCmd := &cobra.Command{
		Use:   "spend",
		Short: "Debit an amount from the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/wallet/spend", map[string]int64{"amount": amount})
		},
	}
	spendCmd.Flags().Int64Var(&amount, "amount", 0, "Amount to spend")

	var creditUser string
	var creditAmount int64
	creditCmd := &cobra.Command{
		Use:   "credit",
		Short: "Credit a user's wallet (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodPost, "/admin/wallet/credit", map[string]any{
				"user_id": creditUser,
				"amount":  creditAmount,
			})
		},
	}
	creditCmd.Flags().StringVar(&creditUser, "user", "", "User ID to credit")
	creditCmd.Flags().Int64Var(&creditAmount, "amount", 0, "Amount to credit")

	var limit, offset int
	transactionsCmd := &cobra.Command{
		Use:   "transactions",
		Short: "List ledger entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/wallet/transactions?limit=%d&offset=%d", limit, offset)
			return call(http.MethodGet, path, nil)
		},
	}
	transactionsCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	transactionsCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Reconcile the wallet balance against the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(http.MethodGet, "/wallet/verify", nil)
		},
	}

	walletCmd.AddCommand(balanceCmd, spendCmd, creditCmd, transactionsCmd, verifyCmd)
	return walletCmd
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

// call issues an API request and prints the JSON response.
func call(method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		fmt.Println(string(data))
	} else {
		printJSON(parsed)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}
