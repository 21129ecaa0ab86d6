package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/LittleBiggler/pgsanity/internal/config"
	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
)

// GranularConnFlags represents connection parameters from CLI flags.
// These follow PostgreSQL standard flag conventions (-h, -p, -U, -d).
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use one of these methods instead:
//  1. $PGPASSWORD or $DB_PASSWORD environment variable
//  2. .pgpass file (PostgreSQL standard)
//  3. Connection string with embedded password
type GranularConnFlags struct {
	Host     string
	Port     int
	Username string
	Database string
	SSLMode  string
}

// IsEmpty returns true if no connection-related granular flags were provided.
// Database is excluded because it may override the connection string database.
func (g *GranularConnFlags) IsEmpty() bool {
	return g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == ""
}

// CloudFlags represents cloud IAM authentication CLI flags. Any non-empty
// field switches the connection away from standard password authentication.
// Secrets are never accepted as flags; AZURE_CLIENT_SECRET comes from the
// environment only.
type CloudFlags struct {
	Azure          bool   // Use Azure Entra ID (DefaultAzureCredential chain)
	AzureTenantID  string // Overrides AZURE_TENANT_ID
	AzureClientID  string // Overrides AZURE_CLIENT_ID
	AWSRegion      string // Enables AWS RDS IAM auth, overrides AWS_REGION
	GoogleInstance string // Enables Cloud SQL IAM auth (project:region:instance)
}

// EnvVars is a snapshot of the environment variables pgsanity honors.
// PG* names follow libpq; DB_* names are the legacy flat names some
// deployments of this tool already use. PG* wins when both are set.
type EnvVars struct {
	PGHOST       string
	PGPORT       string
	PGUSER       string
	PGPASSWORD   string
	PGDATABASE   string
	PGSSLMODE    string
	DATABASE_URL string

	DBHost     string // DB_HOST
	DBPort     string // DB_PORT
	DBUser     string // DB_USER
	DBPassword string // DB_PASSWORD
	DBName     string // DB_NAME

	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
	AWS_REGION          string

	// Last-resort username fallbacks, matching libpq's use of the OS user.
	OSUser     string // USER (Unix)
	OSUsername string // USERNAME (Windows)
}

// LoadFromEnvironment snapshots the relevant environment variables.
// Components never read the environment directly; they receive this snapshot.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		PGHOST:              os.Getenv("PGHOST"),
		PGPORT:              os.Getenv("PGPORT"),
		PGUSER:              os.Getenv("PGUSER"),
		PGPASSWORD:          os.Getenv("PGPASSWORD"),
		PGDATABASE:          os.Getenv("PGDATABASE"),
		PGSSLMODE:           os.Getenv("PGSSLMODE"),
		DATABASE_URL:        os.Getenv("DATABASE_URL"),
		DBHost:              os.Getenv("DB_HOST"),
		DBPort:              os.Getenv("DB_PORT"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              os.Getenv("DB_NAME"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
		AWS_REGION:          os.Getenv("AWS_REGION"),
		OSUser:              os.Getenv("USER"),
		OSUsername:          os.Getenv("USERNAME"),
	}
}

// ResolveConnectionParams resolves connection parameters using
// PostgreSQL-standard precedence:
//
//  1. Connection string flag (--connection) - if provided, parse and use directly
//  2. Granular flags (-h, -p, -U, -d) - if any provided, build config from flags
//  3. Environment variables (PGHOST... then DB_HOST...) - fallback if no flags
//  4. DATABASE_URL environment variable - fallback if no granular params
//  5. pgsanity.yaml project config
//  6. Defaults (localhost:5432, prefer SSL, database "postgres")
//
// Cloud IAM flags or environment credentials switch the AuthMethod and attach
// the relevant parameters; CLI flags take precedence over environment.
//
// Returns an error if BOTH --connection and granular flags are provided, to
// prevent ambiguity about user intent.
func ResolveConnectionParams(
	connStringFlag string,
	granularFlags *GranularConnFlags,
	cloudFlags *CloudFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*pgsanity.ConnectionConfig, error) {
	if granularFlags == nil {
		granularFlags = &GranularConnFlags{}
	}
	if cloudFlags == nil {
		cloudFlags = &CloudFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	if connStringFlag != "" && !granularFlags.IsEmpty() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n" +
				"Choose one approach:\n" +
				"  1. Connection string: --connection \"postgresql://user@localhost:5432/postgres\"\n" +
				"  2. Granular flags: -h localhost -p 5432 -U myuser -d mydb\n" +
				"  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser",
		)
	}

	var cfg *pgsanity.ConnectionConfig
	var err error

	switch {
	case connStringFlag != "":
		cfg, err = resolveFromConnectionString(connStringFlag, envVars)
	case granularFlags.IsEmpty() && envVars.DATABASE_URL != "":
		cfg, err = resolveFromConnectionString(envVars.DATABASE_URL, envVars)
	default:
		cfg, err = resolveFromGranularParams(granularFlags, envVars, projectConfig)
	}
	if err != nil {
		return nil, err
	}

	applyCloudAuth(cfg, cloudFlags, envVars, projectConfig)

	return cfg, nil
}

// applyCloudAuth switches the AuthMethod when cloud credentials are present.
// Precedence within one provider: flag > env var > pgsanity.yaml. When more
// than one provider is configured, explicit flags win over environment.
func applyCloudAuth(cfg *pgsanity.ConnectionConfig, flags *CloudFlags, env *EnvVars, projectConfig *config.ProjectConfig) {
	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	googleInstance := firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance)
	awsRegion := firstNonEmpty(flags.AWSRegion, env.AWS_REGION, pc.AWSRegion)
	azureTenant := firstNonEmpty(flags.AzureTenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
	azureClient := firstNonEmpty(flags.AzureClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)

	switch {
	case flags.GoogleInstance != "" || (pc.AuthMethod == "google" && googleInstance != ""):
		cfg.AuthMethod = pgsanity.AuthMethodGoogleIAM
		cfg.GoogleInstance = googleInstance
	case flags.AWSRegion != "" || pc.AuthMethod == "aws":
		cfg.AuthMethod = pgsanity.AuthMethodAWSIAM
		cfg.AWSRegion = awsRegion
	case flags.Azure || flags.AzureTenantID != "" || flags.AzureClientID != "" ||
		azureTenant != "" || azureClient != "" || pc.AuthMethod == "azure":
		cfg.AuthMethod = pgsanity.AuthMethodAzureEntraID
		cfg.AzureTenantID = azureTenant
		cfg.AzureClientID = azureClient
		cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
	}
}

// resolveFromConnectionString parses a connection string, applying environment
// fallbacks for parameters the string leaves unset (libpq behavior).
func resolveFromConnectionString(connStr string, envVars *EnvVars) (*pgsanity.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w", err)
	}

	if cfg.SSLMode == "" && envVars != nil && envVars.PGSSLMODE != "" {
		cfg.SSLMode = envVars.PGSSLMODE
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "prefer"
	}
	if cfg.Password == "" && envVars != nil {
		cfg.Password = firstNonEmpty(envVars.PGPASSWORD, envVars.DBPassword)
	}

	return cfg, nil
}

// resolveFromGranularParams builds a ConnectionConfig from flags, environment
// variables, and the project config, in that order of precedence.
func resolveFromGranularParams(
	flags *GranularConnFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*pgsanity.ConnectionConfig, error) {
	cfg := &pgsanity.ConnectionConfig{
		AuthMethod:       pgsanity.AuthMethodStandard,
		AdditionalParams: make(map[string]string),
	}

	var pc config.ConnectionConfig
	if projectConfig != nil {
		pc = projectConfig.Connection
	}

	// Host: flag > PGHOST > DB_HOST > pgsanity.yaml > default
	cfg.Host = firstNonEmpty(flags.Host, envVars.PGHOST, envVars.DBHost, pc.Host, "localhost")

	// Port: flag > PGPORT > DB_PORT > pgsanity.yaml > default
	switch {
	case flags.Port != 0:
		cfg.Port = flags.Port
	case envVars.PGPORT != "" || envVars.DBPort != "":
		raw := firstNonEmpty(envVars.PGPORT, envVars.DBPort)
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid port value %q: must be an integer", raw)
		}
		cfg.Port = port
	case pc.Port != 0:
		cfg.Port = pc.Port
	default:
		cfg.Port = 5432
	}

	// Username: flag > PGUSER > DB_USER > pgsanity.yaml > current OS user
	cfg.Username = firstNonEmpty(flags.Username, envVars.PGUSER, envVars.DBUser, pc.Username,
		envVars.OSUser, envVars.OSUsername)

	cfg.Password = firstNonEmpty(envVars.PGPASSWORD, envVars.DBPassword)

	// Database: flag > PGDATABASE > DB_NAME > pgsanity.yaml > default
	cfg.Database = firstNonEmpty(flags.Database, envVars.PGDATABASE, envVars.DBName, pc.Database,
		pgsanity.DefaultManagementDB)

	// SSLMode: flag > PGSSLMODE > pgsanity.yaml > default
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, envVars.PGSSLMODE, pc.SSLMode, "prefer")

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
