package pgsanity

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScanParameters contains all caller-supplied inputs for one scan invocation.
// Constructed per invocation; not persisted.
type ScanParameters struct {
	// ActiveStatus is the subscription status label treated as "active".
	ActiveStatus string

	// ExpiredStatus is the subscription status label treated as "expired".
	ExpiredStatus string

	// SampleLimit is the requested maximum number of sample rows per check.
	// Values outside [1, MaxSampleLimit] are clamped, never rejected:
	// anything < 1 (including the zero value) becomes DefaultSampleLimit,
	// anything above MaxSampleLimit becomes MaxSampleLimit.
	SampleLimit int
}

// Normalize returns a copy with defaults applied and the sample limit clamped
// into its safe range. The original value is never an error condition.
func (p ScanParameters) Normalize() ScanParameters {
	if p.ActiveStatus == "" {
		p.ActiveStatus = DefaultActiveStatus
	}
	if p.ExpiredStatus == "" {
		p.ExpiredStatus = DefaultExpiredStatus
	}
	p.SampleLimit = ClampSampleLimit(p.SampleLimit, DefaultSampleLimit, MaxSampleLimit)
	return p
}

// Value returns the bind value for the named parameter and whether it exists.
// Parameter names match the placeholders declared by check definitions.
func (p ScanParameters) Value(name string) (any, bool) {
	switch name {
	case "active_status":
		return p.ActiveStatus, true
	case "expired_status":
		return p.ExpiredStatus, true
	case "sample_limit":
		return p.SampleLimit, true
	default:
		return nil, false
	}
}

// RowRecord is one sampled row: column name to scalar (or nil for NULL).
// The shape is check-specific, not a single global schema.
type RowRecord map[string]any

// Issue is the result of running one check: the exact total violation count
// plus a bounded sample of offending rows. Immutable after construction.
type Issue struct {
	// Check matches exactly one CheckDefinition ID and is unique within a
	// ScanResult.
	Check string `json:"check"`

	// N is the exact total violation count, produced by the check's count
	// query independently of the sample. Never inferred from sample length.
	N int64 `json:"n"`

	// Sample holds up to the clamped sample limit of violating rows, in the
	// check's documented deterministic order.
	Sample []RowRecord `json:"sample"`
}

// ScanResult is the outcome of one full catalog scan. Issues appear in
// catalog declaration order, one per executed check.
type ScanResult struct {
	// ScanID uniquely identifies this scan invocation.
	ScanID uuid.UUID `json:"scan_id"`

	// StartedAt is when the scan began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the total wall-clock time of the scan.
	Duration time.Duration `json:"duration"`

	// Issues holds one entry per check, in catalog order.
	Issues []Issue `json:"issues"`
}

// MarshalJSON renders Duration in its human-readable form ("1.5s") rather
// than raw nanoseconds, since the scan report is read by people.
func (r ScanResult) MarshalJSON() ([]byte, error) {
	type plain ScanResult
	return json.Marshal(struct {
		plain
		Duration string `json:"duration"`
	}{plain(r), r.Duration.String()})
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use.
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used;
	// otherwise the DefaultAzureCredential chain applies.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AWS RDS IAM authentication.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name
	// (project:region:instance) for Google IAM authentication.
	GoogleInstance string
}

// Validate checks that the ConnectionConfig has the fields its auth method
// requires. Returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Host == "" && c.AuthMethod != AuthMethodGoogleIAM {
		errs = append(errs, fmt.Errorf("host is required: %w", ErrInvalidConfig))
	}
	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database is required: %w", ErrInvalidConfig))
	}
	if c.AuthMethod == AuthMethodAWSIAM && c.AWSRegion == "" {
		errs = append(errs, fmt.Errorf("AWS IAM auth requires a region: %w", ErrInvalidConfig))
	}
	if c.AuthMethod == AuthMethodGoogleIAM && c.GoogleInstance == "" {
		errs = append(errs, fmt.Errorf("Google IAM auth requires an instance name: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}
