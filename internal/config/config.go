package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const defaultBankName = "Retail Bank"
const defaultAdminKey = "admin123"
const defaultEmployeePIN = "1111"
const defaultMaxPINAttempts = 3
const defaultSavingsInterestRate = "0.02"
const defaultSavingsMinimumBalance = "100"
const defaultCheckingOverdraftLimit = "500"
const defaultOverdraftFee = "25"

// Config carries the operational parameters of a bank instance. AdminKey and
// EmployeePIN are exact-match shared secrets (a known-weak scheme kept for
// behavioral compatibility); scoping them here instead of package globals
// keeps their lifecycle tied to the running instance.
type Config struct {
	BankName               string
	AdminKey               string
	EmployeePIN            string
	MaxPINAttempts         int
	SavingsInterestRate    decimal.Decimal
	SavingsMinimumBalance  decimal.Decimal
	CheckingOverdraftLimit decimal.Decimal
	OverdraftFee           decimal.Decimal
}

func Load() (Config, error) {
	cfg := Config{
		BankName:    envOrDefault("BANK_NAME", defaultBankName),
		AdminKey:    envOrDefault("BANK_ADMIN_KEY", defaultAdminKey),
		EmployeePIN: envOrDefault("BANK_EMPLOYEE_PIN", defaultEmployeePIN),
	}

	attempts := envOrDefault("BANK_MAX_PIN_ATTEMPTS", "")
	if attempts == "" {
		cfg.MaxPINAttempts = defaultMaxPINAttempts
	} else {
		n, err := strconv.Atoi(attempts)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid BANK_MAX_PIN_ATTEMPTS %q", attempts)
		}
		cfg.MaxPINAttempts = n
	}

	var err error
	if cfg.SavingsInterestRate, err = envDecimal("BANK_SAVINGS_INTEREST_RATE", defaultSavingsInterestRate); err != nil {
		return Config{}, err
	}
	if cfg.SavingsMinimumBalance, err = envDecimal("BANK_SAVINGS_MINIMUM_BALANCE", defaultSavingsMinimumBalance); err != nil {
		return Config{}, err
	}
	if cfg.CheckingOverdraftLimit, err = envDecimal("BANK_CHECKING_OVERDRAFT_LIMIT", defaultCheckingOverdraftLimit); err != nil {
		return Config{}, err
	}
	if cfg.OverdraftFee, err = envDecimal("BANK_OVERDRAFT_FEE", defaultOverdraftFee); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envDecimal(key, fallback string) (decimal.Decimal, error) {
	raw := envOrDefault(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}
