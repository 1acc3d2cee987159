package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SMSConfig struct {
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type SecurityConfig struct {
	JWTSecret     string `yaml:"jwt_secret"`
	AdminUsername string `yaml:"admin_username"`
	AdminPassword string `yaml:"admin_password"`
	// Echo raw OTP codes in API responses. Test environments only,
	// never enable in production.
	DebugRevealCodes bool `yaml:"debug_reveal_codes"`
	OTPTTLMinutes    int  `yaml:"otp_ttl_minutes"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		DryRun       bool   `yaml:"dry_run"`
	} `yaml:"email"`
	SMS      SMSConfig      `yaml:"sms"`
	Security SecurityConfig `yaml:"security"`
}

func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.Security.OTPTTLMinutes) * time.Minute
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Security.OTPTTLMinutes == 0 {
		cfg.Security.OTPTTLMinutes = 5
	}
	return &cfg
}
