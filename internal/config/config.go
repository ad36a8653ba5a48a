package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"sme-exchange-backend/internal/domain/scoring"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Seed data
	SeedCompanies  int
	InitialCredits int

	// Matching-engine knobs; defaults come from scoring.DefaultPolicy.
	StrongGap          float64
	ModerateGap        float64
	MinSwapImprovement float64
	ValueTolerance     float64
	ZeroCashTolerance  float64
	InclusionBonus     float64
	InclusionScoreCut  float64
	OverlookedBonus    float64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvFloat(k string, d float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return d
}

func Load() *Config {
	p := scoring.DefaultPolicy()
	return &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "sme_exchange"),
		MySQLUser: getenv("MYSQL_USER", "sme_exchange"),
		MySQLPass: getenv("MYSQL_PASS", "sme_exchange"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		SeedCompanies:  getenvInt("SEED_COMPANIES", 60),
		InitialCredits: getenvInt("INITIAL_CREDITS", 100),

		StrongGap:          getenvFloat("SCORE_STRONG_GAP", p.StrongGap),
		ModerateGap:        getenvFloat("SCORE_MODERATE_GAP", p.ModerateGap),
		MinSwapImprovement: getenvFloat("SWAP_MIN_IMPROVEMENT", p.MinSwapImprovement),
		ValueTolerance:     getenvFloat("SWAP_VALUE_TOLERANCE", p.ValueTolerance),
		ZeroCashTolerance:  getenvFloat("SWAP_ZERO_CASH_TOLERANCE", p.ZeroCashTolerance),
		InclusionBonus:     getenvFloat("SWAP_INCLUSION_BONUS", p.InclusionBonusScore),
		InclusionScoreCut:  getenvFloat("SWAP_INCLUSION_SCORE_CUT", p.InclusionScoreCut),
		OverlookedBonus:    getenvFloat("SWAP_OVERLOOKED_BONUS", p.OverlookedBonusScore),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.ModerateGap <= 0 || c.StrongGap <= c.ModerateGap {
		return errors.New("gap thresholds must satisfy 0 < SCORE_MODERATE_GAP < SCORE_STRONG_GAP")
	}
	if c.ValueTolerance <= 0 || c.ZeroCashTolerance <= 0 {
		return errors.New("swap tolerances must be positive")
	}
	return nil
}

// Policy projects the engine knobs into a scoring.Policy.
func (c *Config) Policy() scoring.Policy {
	return scoring.Policy{
		StrongGap:            c.StrongGap,
		ModerateGap:          c.ModerateGap,
		MinSwapImprovement:   c.MinSwapImprovement,
		ValueTolerance:       c.ValueTolerance,
		ZeroCashTolerance:    c.ZeroCashTolerance,
		InclusionBonusScore:  c.InclusionBonus,
		InclusionScoreCut:    c.InclusionScoreCut,
		OverlookedBonusScore: c.OverlookedBonus,
	}
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
