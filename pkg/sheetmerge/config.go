// Package sheetmerge wires the spreadsheet, drive and mail backends to the
// batch engine for each of the tool's operations.
package sheetmerge

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default column names, used when the config file leaves them unset.
const (
	DefaultRecipientColumn = "Email"
	DefaultStatusColumn    = "Status"
	DefaultFilenameColumn  = "FileName"
	DefaultURLColumn       = "URL"
	DefaultFolderColumn    = "FolderName"
)

// DefaultSMTPPort is the submission port used when the config leaves the
// SMTP port unset.
const DefaultSMTPPort = 587

// Columns names the sheet columns each operation reads and writes.
type Columns struct {
	Recipient string `yaml:"recipient"`
	Status    string `yaml:"status"`
	Filename  string `yaml:"filename"`
	URL       string `yaml:"url"`
	Folder    string `yaml:"folder"`
}

// SMTPConfig configures the outgoing mail endpoint.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	// Password comes from the SMTP_PASSWORD environment variable, never
	// from the config file.
	Password string `yaml:"-"`
}

// IMAPConfig configures the IMAP draft source.
type IMAPConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Mailbox  string `yaml:"mailbox"`
	// Password comes from the IMAP_PASSWORD environment variable.
	Password string `yaml:"-"`
}

// DraftsConfig selects where message templates come from: a local drafts
// directory or an IMAP Drafts mailbox. Dir wins when both are set.
type DraftsConfig struct {
	Dir  string      `yaml:"dir"`
	IMAP *IMAPConfig `yaml:"imap"`
}

// DriveConfig names the template file to copy and the destination directory
// for copies, folders and listings.
type DriveConfig struct {
	Template    string `yaml:"template"`
	Destination string `yaml:"destination"`
}

// Config is the tool's yaml configuration file. Every optional field has an
// explicit default applied once, at load time, before any operation runs.
type Config struct {
	Spreadsheet string       `yaml:"spreadsheet"`
	Sheet       string       `yaml:"sheet"`
	Columns     Columns      `yaml:"columns"`
	Drafts      DraftsConfig `yaml:"drafts"`
	SMTP        SMTPConfig   `yaml:"smtp"`
	Drive       DriveConfig  `yaml:"drive"`
}

// LoadConfig reads the yaml config at path, fills defaults and validates it
// at the boundary. A .env file in the working directory, when present,
// supplies SMTP_PASSWORD and IMAP_PASSWORD.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Columns.Recipient == "" {
		c.Columns.Recipient = DefaultRecipientColumn
	}
	if c.Columns.Status == "" {
		c.Columns.Status = DefaultStatusColumn
	}
	if c.Columns.Filename == "" {
		c.Columns.Filename = DefaultFilenameColumn
	}
	if c.Columns.URL == "" {
		c.Columns.URL = DefaultURLColumn
	}
	if c.Columns.Folder == "" {
		c.Columns.Folder = DefaultFolderColumn
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = DefaultSMTPPort
	}
	c.SMTP.Password = os.Getenv("SMTP_PASSWORD")
	if c.Drafts.IMAP != nil {
		if c.Drafts.IMAP.Mailbox == "" {
			c.Drafts.IMAP.Mailbox = "Drafts"
		}
		c.Drafts.IMAP.Password = os.Getenv("IMAP_PASSWORD")
	}
}

func (c *Config) validate() error {
	if c.Spreadsheet == "" {
		return fmt.Errorf("config: spreadsheet path is required")
	}
	return nil
}
