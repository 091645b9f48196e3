package main

import (
	"context"
	"log"

	"github.com/api-sage/retail-bank-core/internal/adapter/repository/memory"
	"github.com/api-sage/retail-bank-core/internal/config"
	"github.com/api-sage/retail-bank-core/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	svc := services.NewBankService(
		memory.NewCustomerRepository(),
		memory.NewAccountRepository(),
		cfg,
	)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		log.Fatalf("bank summary: %v", err)
	}

	log.Printf("%s core ready: %d customers, %d accounts", summary.BankName, summary.TotalCustomers, summary.TotalAccounts)
}
