package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB     *sql.DB
	Report ReportSettings
}

// ReportSettings are the fixed business parameters of the accounts
// transactions report.
type ReportSettings struct {
	ReferenceCurrencyID   int64
	ReferenceCurrencyName string
	ReservedAccountID     int64         // house account, excluded from all reporting
	ResetDate             time.Time     // nothing before this date ever appears
	ReportTimeout         time.Duration
}

var AppConfig *Config

// resetDateDefault is the ledger cutover date agreed with accounts.
const resetDateDefault = "2025-10-01"

func InitDB() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := envOr("DB_HOST", "localhost")
	port := envIntOr("DB_PORT", 5432)
	user := envOr("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := envOr("DB_NAME", "alfalah")
	sslmode := envOr("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=30",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB:     db,
		Report: loadReportSettings(),
	}
	log.Println("Database connected successfully")
}

func loadReportSettings() ReportSettings {
	resetDate, err := time.Parse("2006-01-02", envOr("REPORT_RESET_DATE", resetDateDefault))
	if err != nil {
		log.Printf("Invalid REPORT_RESET_DATE, falling back to %s: %v", resetDateDefault, err)
		resetDate, _ = time.Parse("2006-01-02", resetDateDefault)
	}

	return ReportSettings{
		ReferenceCurrencyID:   int64(envIntOr("REPORT_REFERENCE_CURRENCY_ID", 1)),
		ReferenceCurrencyName: envOr("REPORT_REFERENCE_CURRENCY", "AED"),
		ReservedAccountID:     int64(envIntOr("REPORT_RESERVED_ACCOUNT_ID", 4)),
		ResetDate:             resetDate,
		ReportTimeout:         time.Duration(envIntOr("REPORT_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetReportSettings returns the report parameters loaded at startup.
func GetReportSettings() ReportSettings {
	return AppConfig.Report
}
