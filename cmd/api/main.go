package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/zinminlatt/ispbill/internal/config"
	"github.com/zinminlatt/ispbill/internal/customer"
	customerStore "github.com/zinminlatt/ispbill/internal/customer/store"
	"github.com/zinminlatt/ispbill/internal/database"
	ispbillHttp "github.com/zinminlatt/ispbill/internal/http"
	customerHandler "github.com/zinminlatt/ispbill/internal/http/customer"
	importHandler "github.com/zinminlatt/ispbill/internal/http/importcsv"
	invoiceHandler "github.com/zinminlatt/ispbill/internal/http/invoice"
	planHandler "github.com/zinminlatt/ispbill/internal/http/plan"
	quarterHandler "github.com/zinminlatt/ispbill/internal/http/quarter"
	relocationHandler "github.com/zinminlatt/ispbill/internal/http/relocation"
	userHandler "github.com/zinminlatt/ispbill/internal/http/user"
	"github.com/zinminlatt/ispbill/internal/importer"
	"github.com/zinminlatt/ispbill/internal/invoice"
	invoiceStore "github.com/zinminlatt/ispbill/internal/invoice/store"
	"github.com/zinminlatt/ispbill/internal/plan"
	planStore "github.com/zinminlatt/ispbill/internal/plan/store"
	"github.com/zinminlatt/ispbill/internal/quarter"
	quarterStore "github.com/zinminlatt/ispbill/internal/quarter/store"
	"github.com/zinminlatt/ispbill/internal/relocation"
	relocationStore "github.com/zinminlatt/ispbill/internal/relocation/store"
	"github.com/zinminlatt/ispbill/internal/user"
	userStore "github.com/zinminlatt/ispbill/internal/user/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	secret := []byte(cfg.Auth.JWTSecret)

	var (
		customerService   = customer.NewService(customerStore.New(db))
		invoiceService    = invoice.NewService(invoiceStore.New(db))
		planService       = plan.NewService(planStore.New(db))
		quarterService    = quarter.NewService(quarterStore.New(db))
		relocationService = relocation.NewService(relocationStore.New(db))
		userService       = user.NewService(userStore.New(db))
		importService     = importer.NewService()
	)

	var (
		customerH   = customerHandler.NewHandler(customerService)
		invoiceH    = invoiceHandler.NewHandler(invoiceService, customerService)
		importH     = importHandler.NewHandler(importService, customerService, quarterService, planService)
		planH       = planHandler.NewHandler(planService)
		quarterH    = quarterHandler.NewHandler(quarterService)
		relocationH = relocationHandler.NewHandler(relocationService)
		userH       = userHandler.NewHandler(userService, secret, cfg.Auth.TokenTTL)
	)

	router := ispbillHttp.New(ispbillHttp.Config{
		JWTSecret:      secret,
		AllowedOrigins: cfg.Origins(),
	}, customerH, invoiceH, importH, planH, quarterH, relocationH, userH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
