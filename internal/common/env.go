package common

import (
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "~/.taskpanel.yaml"
	DefaultLogPath    = "./logs/taskpanel.log"

	ReadPathReloadTask = "reloadtask"
	ReadPathLegacyTask = "task"

	DefaultStartLabel = "Start task"
	DefaultCheckLabel = "Check status"
)

// Config is the deployment configuration. It is read from a YAML file and
// then overridden by environment variables.
type Config struct {
	ServerURL  string            `yaml:"server_url"`
	ReadPath   string            `yaml:"read_path"` // reloadtask or task (legacy deployments)
	Timezone   string            `yaml:"timezone"`
	TLS        TLSConfig         `yaml:"tls"`
	Session    SessionConfig     `yaml:"session"`
	Headers    map[string]string `yaml:"headers"`
	Properties Properties        `yaml:"properties"`
	LogPath    string            `yaml:"log_path"`
	ListenAddr string            `yaml:"listen_addr"`
	KeyPath    string            `yaml:"key_path"`  // server TLS key
	CertPath   string            `yaml:"cert_path"` // server TLS certificate
}

type TLSConfig struct {
	CACert     string `yaml:"ca_cert"`
	ClientCert string `yaml:"client_cert"`
	ClientKey  string `yaml:"client_key"`
}

// SessionConfig carries the ambient session cookie that every control-plane
// request sends along.
type SessionConfig struct {
	CookieName  string `yaml:"cookie_name"`
	CookieValue string `yaml:"cookie_value"`
}

// Properties are the panel layout properties owned by the host.
type Properties struct {
	TaskID       string `yaml:"task_id" json:"task_id"`
	SecondTaskID string `yaml:"second_task_id" json:"second_task_id"`
	ProxyPrefix  string `yaml:"proxy_prefix" json:"proxy_prefix"`
	StartLabel   string `yaml:"start_label" json:"start_label"`
	CheckLabel   string `yaml:"check_label" json:"check_label"`
}

func (p Properties) PrimaryTaskID() string {
	return strings.TrimSpace(p.TaskID)
}

// TaskIDs returns the primary id followed by the second id when one is set.
func (p Properties) TaskIDs() []string {
	ids := []string{p.PrimaryTaskID()}
	if second := strings.TrimSpace(p.SecondTaskID); second != "" {
		ids = append(ids, second)
	}
	return ids
}

func (p Properties) StartButtonLabel() string {
	return blankAs(p.StartLabel, DefaultStartLabel)
}

func (p Properties) CheckButtonLabel() string {
	return blankAs(p.CheckLabel, DefaultCheckLabel)
}

var config Config

func GetConfig() Config {
	return config
}

func InitConf(path string) error {
	c, err := LoadConfig(path)
	if err != nil {
		return err
	}
	config = c
	return nil
}

// LoadConfig reads the YAML file at path (a missing file is fine) and applies
// the environment overrides on top.
func LoadConfig(path string) (Config, error) {
	var c Config
	if path == "" {
		path = getEnv("TASKPANEL_CONFIG", DefaultConfigPath)
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return c, errors.Wrapf(err, "expand config path %s", path)
	}
	data, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, errors.Wrapf(err, "parse config %s", expanded)
		}
	case os.IsNotExist(err):
	default:
		return c, errors.Wrapf(err, "read config %s", expanded)
	}

	c.ServerURL = strings.TrimRight(getEnv("SERVER_URL", c.ServerURL), "/")
	c.ReadPath = getEnv("READ_PATH", blankAs(c.ReadPath, ReadPathReloadTask))
	c.Timezone = getEnv("TIMEZONE", blankAs(c.Timezone, "Local"))
	c.TLS.CACert = getEnv("CA_CERT_PATH", c.TLS.CACert)
	c.LogPath = getEnv("LOG_PATH", blankAs(c.LogPath, DefaultLogPath))
	c.ListenAddr = getEnv("LISTEN_ADDR", blankAs(c.ListenAddr, ":8080"))
	c.KeyPath = getEnv("KEY_PATH", c.KeyPath)
	c.CertPath = getEnv("CERT_PATH", c.CertPath)
	c.Properties.TaskID = getEnv("TASK_ID", c.Properties.TaskID)
	c.Properties.SecondTaskID = getEnv("SECOND_TASK_ID", c.Properties.SecondTaskID)
	c.Properties.ProxyPrefix = getEnv("PROXY_PREFIX", c.Properties.ProxyPrefix)

	if c.ReadPath != ReadPathReloadTask && c.ReadPath != ReadPathLegacyTask {
		return c, errors.Errorf("read_path must be %q or %q, got %q", ReadPathReloadTask, ReadPathLegacyTask, c.ReadPath)
	}
	return c, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func blankAs(v, d string) string {
	if strings.TrimSpace(v) == "" {
		return d
	}
	return v
}
