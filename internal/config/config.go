// Package config loads and validates the service configuration: a YAML file
// with environment-variable overrides for everything deployment-specific.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the root of the YAML file.
type Config struct {
	Service ServiceConf `yaml:"service" validate:"required"`
	AWS     AWSConf     `yaml:"aws"`
	Tables  TablesConf  `yaml:"tables"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

type ServiceConf struct {
	Name string `yaml:"name" validate:"required,hostname_rfc1123"`
	Port int    `yaml:"port" validate:"required,gte=1,lte=65535"`
}

type AWSConf struct {
	Region string `yaml:"region" validate:"required"`
	// Endpoint overrides the DynamoDB endpoint, for dynamodb-local.
	Endpoint string `yaml:"endpoint"`
}

// TablesConf names the four collections. Defaults match the original
// production tables.
type TablesConf struct {
	Clients    string `yaml:"clients" validate:"required"`
	Vendedores string `yaml:"vendedores" validate:"required"`
	Events     string `yaml:"events" validate:"required"`
	Messages   string `yaml:"messages" validate:"required"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Namespace string `yaml:"namespace"`
}

// Load reads the YAML file, applies defaults and env overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "leads-api"
	}
	if c.Service.Port == 0 {
		c.Service.Port = 8080
	}
	if c.AWS.Region == "" {
		c.AWS.Region = "us-east-1"
	}
	if c.Tables.Clients == "" {
		c.Tables.Clients = "clients"
	}
	if c.Tables.Vendedores == "" {
		c.Tables.Vendedores = "vendedores-dev"
	}
	if c.Tables.Events == "" {
		c.Tables.Events = "eventsv2"
	}
	if c.Tables.Messages == "" {
		c.Tables.Messages = "chat_mensaje"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

func (c *Config) applyEnv() {
	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.Endpoint, "DYNAMODB_ENDPOINT")
	setString(&c.Tables.Clients, "CLIENT_TABLE_NAME")
	setString(&c.Tables.Vendedores, "VENDEDORES_TABLE_NAME")
	setString(&c.Tables.Events, "EVENT_TABLE_NAME")
	setString(&c.Tables.Messages, "MESSAGES_TABLE_NAME")
	setString(&c.Metrics.Datadog.Addr, "DD_AGENT_ADDR")

	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Service.Port = p
		}
	}
}

func setString(dst *string, envVar string) {
	if v := os.Getenv(envVar); v != "" {
		*dst = v
	}
}
