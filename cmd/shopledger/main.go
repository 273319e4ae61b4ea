package main

import (
	"os"
)

// @title Shop Ledger API
// @version 1.0
// @description Customer ledgers, invoices, payments with allocations, refunds and aging reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
