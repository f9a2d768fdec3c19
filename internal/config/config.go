package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// HTTPConfig holds the outbound HTTP client configuration
type HTTPConfig struct {
	Timeout         time.Duration `mapstructure:"timeout"`
	UserAgent       string        `mapstructure:"user_agent"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

// TzKTConfig holds the TzKT indexer and downloader configuration
type TzKTConfig struct {
	APIURL       string        `mapstructure:"api_url"`
	CacheDir     string        `mapstructure:"cache_dir"`
	BatchSize    int           `mapstructure:"batch_size"`
	RequestPause time.Duration `mapstructure:"request_pause"`
	ShowProgress bool          `mapstructure:"show_progress"`
}

// VendorsConfig holds vendor API configurations. An empty URL disables the vendor.
type VendorsConfig struct {
	TzProfilesURL   string `mapstructure:"tzprofiles_url"`
	TezosDomainsURL string `mapstructure:"tezosdomains_url"`
	PageSize        int    `mapstructure:"page_size"`
}

// BigmapsConfig holds the bigmap ids the users table is built from
type BigmapsConfig struct {
	HENSwaps           []int64 `mapstructure:"hen_swaps"`
	HENRoyalties       int64   `mapstructure:"hen_royalties"`
	HENRegistries      int64   `mapstructure:"hen_registries"`
	HENSubjktsMetadata int64   `mapstructure:"hen_subjkts_metadata"`
	TeiaSwaps          int64   `mapstructure:"teia_swaps"`
	TokenLedger        int64   `mapstructure:"token_ledger"`
	Votes              int64   `mapstructure:"votes"`
}

// ContractsConfig holds the contract addresses of the analysis
type ContractsConfig struct {
	// Platform are the marketplaces whose activity counts as platform activity
	Platform      []string      `mapstructure:"platform"`
	CollabFactory string        `mapstructure:"collab_factory"`
	Bigmaps       BigmapsConfig `mapstructure:"bigmaps"`
}

// ListsConfig holds the locations of the community lists, local files or URLs
type ListsConfig struct {
	Restricted    string `mapstructure:"restricted"`
	WashTraders   string `mapstructure:"wash_traders"`
	Contributions string `mapstructure:"contributions"`
	Directory     string `mapstructure:"directory"`
}

// PollsConfig holds the community poll configuration
type PollsConfig struct {
	Allowed []string `mapstructure:"allowed"`
	// Highlighted is the poll reported in the users table vote column
	Highlighted string `mapstructure:"highlighted"`
}

// SnapshotConfig bounds the analysed chain state. Zero levels mean the chain head.
type SnapshotConfig struct {
	MaxLevel          uint64  `mapstructure:"max_level"`
	TokenBalanceLevel uint64  `mapstructure:"token_balance_level"`
	TokenDecimals     float64 `mapstructure:"token_decimals"`
}

// ScalingConfig holds the per user scaling decision table
type ScalingConfig struct {
	Base          float64 `mapstructure:"base"`
	Profiled      float64 `mapstructure:"profiled"`
	Verified      float64 `mapstructure:"verified"`
	Contributor   float64 `mapstructure:"contributor"`
	MinActiveDays int     `mapstructure:"min_active_days"`
	MinVoteCount  int     `mapstructure:"min_vote_count"`
	MinMoneySpent float64 `mapstructure:"min_money_spent"`
}

// DistributionConfig holds the token allocation configuration
type DistributionConfig struct {
	TotalAmount    float64            `mapstructure:"total_amount"`
	TreasuryAmount float64            `mapstructure:"treasury_amount"`
	Weights        map[string]float64 `mapstructure:"weights"`
	Scaling        ScalingConfig      `mapstructure:"scaling"`
}

// DropConfig holds the token drop configuration
type DropConfig struct {
	Decimals  int32 `mapstructure:"decimals"`
	BatchSize int   `mapstructure:"batch_size"`
	// ClaimContract is the drop contract whose claims are reported, empty skips the report
	ClaimContract   string `mapstructure:"claim_contract"`
	ClaimEntrypoint string `mapstructure:"claim_entrypoint"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize int `mapstructure:"pool_size"`
}

// TeiaUsersConfig holds configuration for teia-users
type TeiaUsersConfig struct {
	BaseConfig `mapstructure:",squash"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	TzKT       TzKTConfig      `mapstructure:"tzkt"`
	Worker     WorkerConfig    `mapstructure:"worker"`
	Vendors    VendorsConfig   `mapstructure:"vendors"`
	Contracts  ContractsConfig `mapstructure:"contracts"`
	Lists      ListsConfig     `mapstructure:"lists"`
	Polls      PollsConfig     `mapstructure:"polls"`
	Snapshot   SnapshotConfig  `mapstructure:"snapshot"`
	OutputDir  string          `mapstructure:"output_dir"`
	CheckOrder bool            `mapstructure:"check_order"`
	// StatsFrom is the first day of the activity series (YYYY-MM-DD)
	StatsFrom string         `mapstructure:"stats_from"`
	Persist   bool           `mapstructure:"persist"`
	Database  DatabaseConfig `mapstructure:"database"`
}

// TokenDistributionConfig holds configuration for token-distribution
type TokenDistributionConfig struct {
	BaseConfig   `mapstructure:",squash"`
	UsersFile    string             `mapstructure:"users_file"`
	OutputDir    string             `mapstructure:"output_dir"`
	Distribution DistributionConfig `mapstructure:"distribution"`
	Drop         DropConfig         `mapstructure:"drop"`
	HTTP         HTTPConfig         `mapstructure:"http"`
	TzKT         TzKTConfig         `mapstructure:"tzkt"`
	Persist      bool               `mapstructure:"persist"`
	Database     DatabaseConfig     `mapstructure:"database"`
}

// VoteResultsConfig holds configuration for vote-results
type VoteResultsConfig struct {
	BaseConfig  `mapstructure:",squash"`
	HTTP        HTTPConfig `mapstructure:"http"`
	TzKT        TzKTConfig `mapstructure:"tzkt"`
	Poll        string     `mapstructure:"poll"`
	IPFSGateway string     `mapstructure:"ipfs_gateway"`
	VotesBigmap int64      `mapstructure:"votes_bigmap"`
	// UsersFile restricts the tally to the non restricted users of a users table, empty accepts every voter
	UsersFile string `mapstructure:"users_file"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
}

// LoadTeiaUsersConfig loads configuration for teia-users
func LoadTeiaUsersConfig(configFile string, envPath string) (*TeiaUsersConfig, error) {
	v := configureViper("teia-users", configFile, envPath)

	// Set defaults
	setHTTPDefaults(v)
	setTzKTDefaults(v)
	setDatabaseDefaults(v)
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("vendors.tzprofiles_url", "https://indexer.tzprofiles.com/v1/graphql")
	v.SetDefault("vendors.tezosdomains_url", "https://api.tezos.domains/graphql")
	v.SetDefault("vendors.page_size", 1000)
	v.SetDefault("contracts.platform", []string{"KT1PHubm9HtyQEJ4BBpMTVomq6mhbfNZ9z5w"})
	v.SetDefault("contracts.collab_factory", "KT1DoyD6kr8yLK8mRBFusyKYJUk2ZxNHKP1N")
	v.SetDefault("contracts.bigmaps.hen_swaps", []int64{523, 6072})
	v.SetDefault("contracts.bigmaps.hen_royalties", 522)
	v.SetDefault("contracts.bigmaps.hen_registries", 3919)
	v.SetDefault("contracts.bigmaps.hen_subjkts_metadata", 3921)
	v.SetDefault("contracts.bigmaps.teia_swaps", 90366)
	v.SetDefault("contracts.bigmaps.token_ledger", 515)
	v.SetDefault("contracts.bigmaps.votes", 64367)
	v.SetDefault("lists.restricted", "config/lists/restricted.json")
	v.SetDefault("lists.wash_traders", "config/lists/wash_traders.json")
	v.SetDefault("snapshot.token_decimals", 1_000_000)
	v.SetDefault("output_dir", "data")
	v.SetDefault("check_order", true)
	v.SetDefault("stats_from", "2021-03-01")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config TeiaUsersConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Persist {
		if err := config.Database.Validate(); err != nil {
			return nil, err
		}
	}

	return &config, nil
}

// LoadTokenDistributionConfig loads configuration for token-distribution
func LoadTokenDistributionConfig(configFile string, envPath string) (*TokenDistributionConfig, error) {
	v := configureViper("token-distribution", configFile, envPath)

	// Set defaults
	setHTTPDefaults(v)
	setTzKTDefaults(v)
	setDatabaseDefaults(v)
	v.SetDefault("users_file", "data/teia_users.csv")
	v.SetDefault("output_dir", "data")
	v.SetDefault("distribution.total_amount", 5_500_000)
	v.SetDefault("distribution.treasury_amount", 350_000)
	v.SetDefault("distribution.scaling.base", 1)
	v.SetDefault("distribution.scaling.profiled", 2)
	v.SetDefault("distribution.scaling.verified", 3)
	v.SetDefault("distribution.scaling.contributor", 3)
	v.SetDefault("distribution.scaling.min_active_days", 14)
	v.SetDefault("distribution.scaling.min_vote_count", 1)
	v.SetDefault("distribution.scaling.min_money_spent", 1000)
	v.SetDefault("drop.decimals", 6)
	v.SetDefault("drop.batch_size", 500)
	v.SetDefault("drop.claim_entrypoint", "claim")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config TokenDistributionConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.UsersFile == "" {
		return nil, errors.New("users_file is required")
	}
	if config.Drop.BatchSize <= 0 {
		return nil, errors.New("drop.batch_size must be positive")
	}
	if config.Persist {
		if err := config.Database.Validate(); err != nil {
			return nil, err
		}
	}

	return &config, nil
}

// LoadVoteResultsConfig loads configuration for vote-results
func LoadVoteResultsConfig(configFile string, envPath string) (*VoteResultsConfig, error) {
	v := configureViper("vote-results", configFile, envPath)

	// Set defaults
	setHTTPDefaults(v)
	setTzKTDefaults(v)
	v.SetDefault("ipfs_gateway", "https://ipfs.io/ipfs")
	v.SetDefault("votes_bigmap", 64367)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config VoteResultsConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setHTTPDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", "60s")
	v.SetDefault("http.user_agent", "teia-analytics")
	v.SetDefault("http.initial_interval", "2s")
	v.SetDefault("http.max_interval", "30s")
	v.SetDefault("http.max_elapsed_time", "2m")
}

func setTzKTDefaults(v *viper.Viper) {
	v.SetDefault("tzkt.api_url", "https://api.tzkt.io")
	v.SetDefault("tzkt.cache_dir", "data/cache")
	v.SetDefault("tzkt.batch_size", 10000)
	v.SetDefault("tzkt.request_pause", "1s")
	v.SetDefault("tzkt.show_progress", true)
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

// readConfig reads the config file, falling back to environment variables when there is none
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Program-specific directory (e.g., cmd/teia-users/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("TEIA_ANALYTICS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// HTTP
		"http.timeout",
		"http.user_agent",
		"http.initial_interval",
		"http.max_interval",
		"http.max_elapsed_time",
		// TzKT
		"tzkt.api_url",
		"tzkt.cache_dir",
		"tzkt.batch_size",
		"tzkt.request_pause",
		"tzkt.show_progress",
		// Vendors
		"vendors.tzprofiles_url",
		"vendors.tezosdomains_url",
		"vendors.page_size",
		// Contracts
		"contracts.platform",
		"contracts.collab_factory",
		// Lists
		"lists.restricted",
		"lists.wash_traders",
		"lists.contributions",
		"lists.directory",
		// Polls
		"polls.allowed",
		"polls.highlighted",
		// Snapshot
		"snapshot.max_level",
		"snapshot.token_balance_level",
		"snapshot.token_decimals",
		// Distribution
		"distribution.total_amount",
		"distribution.treasury_amount",
		"drop.decimals",
		"drop.batch_size",
		"drop.claim_contract",
		"drop.claim_entrypoint",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Program specific
		"worker.pool_size",
		"output_dir",
		"users_file",
		"check_order",
		"stats_from",
		"persist",
		"poll",
		"ipfs_gateway",
		"votes_bigmap",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-program local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// Validate checks the fields required to open a connection
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
