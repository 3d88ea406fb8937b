// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Billing  BillingConfig  `mapstructure:"billing"`
	Vendors  VendorConfig   `mapstructure:"vendors"`
	AWS      AWSConfig      `mapstructure:"aws"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Driver   DriverConfig   `mapstructure:"driver"`
	Registry RegistryConfig `mapstructure:"registry"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// BillingConfig holds settings for the payment-processor integration.
type BillingConfig struct {
	Stripe struct {
		APIKey   string `mapstructure:"api_key"`
		Timeout  int    `mapstructure:"timeout"`   // milliseconds
		CacheTTL int    `mapstructure:"cache_ttl"` // seconds
	} `mapstructure:"stripe"`
}

// VendorConfig holds the vendor routing table and dispatch settings.
// The keys of Routes are exactly the supported vendor identifiers.
type VendorConfig struct {
	Routes          map[string]string `mapstructure:"routes"`
	Timeout         int               `mapstructure:"timeout"` // milliseconds
	ValidatePayload bool              `mapstructure:"validate_payload"`
}

// AWSConfig holds the cloud control-plane resource names.
type AWSConfig struct {
	Region              string `mapstructure:"region"`
	AutoScalingGroup    string `mapstructure:"autoscaling_group"`
	DesiredCapacity     int32  `mapstructure:"desired_capacity"`
	LoadBalancer        string `mapstructure:"load_balancer"`
	LaunchConfiguration string `mapstructure:"launch_configuration"`
	// TargetGroupARN is optional; when empty the load balancer's ARN is
	// passed to the target-group modification call (upstream behavior).
	TargetGroupARN  string `mapstructure:"target_group_arn"`
	HealthCheckPort string `mapstructure:"health_check_port"`
	SNS             struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig selects the user-record store backing the billing checker.
// "static" serves a fixed record; "postgres" reads from the users table.
type StoreConfig struct {
	UserStore string `mapstructure:"user_store"`
}

// AuditConfig holds settings for the Elasticsearch task audit trail.
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Index   string `mapstructure:"index"`
}

// DriverConfig carries the example inputs the runner feeds each task.
type DriverConfig struct {
	UserID         string                 `mapstructure:"user_id"`
	SubscriptionID string                 `mapstructure:"subscription_id"`
	Vendor         string                 `mapstructure:"vendor"`
	Endpoint       string                 `mapstructure:"endpoint"`
	Payload        map[string]interface{} `mapstructure:"payload"`
	Headers        map[string]string      `mapstructure:"headers"`
}

// RegistryConfig points at the task registry file.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
