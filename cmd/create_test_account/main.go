package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"log"
	"os"

	"asset_bridge/internal/chain"
	"asset_bridge/internal/db"
	"asset_bridge/internal/domain"
	"asset_bridge/internal/repository"
	"asset_bridge/internal/service"
)

func main() {
	// expects DATABASE_URL and JWT_SECRET env vars
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	address := flag.String("address", "0x1111111111111111111111111111111111111111", "account address")
	balance := flag.Int64("balance", 10_000_000, "initial balance to seed")
	flag.Parse()

	if !chain.ValidAddress(*address) {
		log.Fatalf("invalid address %q", *address)
	}
	addr := chain.NormalizeAddress(*address)

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewAccountRepository(pool)
	ctx := context.Background()

	account, err := repo.GetByAddress(ctx, addr)
	if err != nil {
		keyBytes := make([]byte, 32)
		if _, err := rand.Read(keyBytes); err != nil {
			log.Fatalf("generate api key: %v", err)
		}
		account = &domain.Account{
			Address: addr,
			APIKey:  hex.EncodeToString(keyBytes),
		}
		if err := repo.Create(ctx, account); err != nil {
			log.Fatalf("create account failed: %v", err)
		}
		log.Printf("account created address=%s api_key=%s\n", account.Address, account.APIKey)
	} else {
		log.Printf("account already exists address=%s\n", account.Address)
	}

	if *balance > 0 {
		balances := service.NewBalanceService(pool)
		newBalance, err := balances.Credit(ctx, addr, *balance, domain.LedgerSeed, map[string]interface{}{"tool": "create_test_account"})
		if err != nil {
			log.Fatalf("seed balance failed: %v", err)
		}
		log.Printf("balance seeded address=%s balance=%d\n", addr, newBalance)
	}

	// initialize JWT and print token
	service.InitJWT()
	token, err := service.GenerateJWT(addr)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("jwt=%s\n", token)
}
