package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the typed view over the viper configuration.
type Config struct {
	Classifier Classifier `mapstructure:"classifier"`
	Paylah     Paylah     `mapstructure:"paylah"`
	CreditCard CreditCard `mapstructure:"credit_card"`
	Archive    Archive    `mapstructure:"archive"`
	Database   Database   `mapstructure:"database"`
}

// Classifier holds the literals used to recognise a statement.
type Classifier struct {
	PrefixLength       int    `mapstructure:"prefix_length"`
	PaylahFilenameGlob string `mapstructure:"paylah_filename_glob"`
	CashbackPhrase     string `mapstructure:"cashback_phrase"`
	CreditCardPhrase   string `mapstructure:"credit_card_phrase"`
	AccountPhrase      string `mapstructure:"account_phrase"`
	PaylahPhrase       string `mapstructure:"paylah_phrase"`
	CreditCardNumber   string `mapstructure:"credit_card_number"`
}

// ReferenceWidth is the width of a reference number glued to its amount,
// selected by the reference's leading characters.
type ReferenceWidth struct {
	Prefix string `mapstructure:"prefix"`
	Width  int    `mapstructure:"width"`
}

type Paylah struct {
	WalletNumber          string           `mapstructure:"wallet_number"`
	Method                string           `mapstructure:"method"`
	Starter               string           `mapstructure:"starter"`
	TransactionsStart     string           `mapstructure:"transactions_start"`
	TransactionsEnd       string           `mapstructure:"transactions_end"`
	TableEnd              string           `mapstructure:"table_end"`
	Disclaimer            string           `mapstructure:"disclaimer"`
	ReferencePrefix       string           `mapstructure:"reference_prefix"`
	ReferenceWidths       []ReferenceWidth `mapstructure:"reference_widths"`
	DefaultReferenceWidth int              `mapstructure:"default_reference_width"`
	HeaderArea            []float64        `mapstructure:"header_area"`
	FirstPageArea         []float64        `mapstructure:"first_page_area"`
	ContinuationArea      []float64        `mapstructure:"continuation_area"`
	Columns               []float64        `mapstructure:"columns"`
}

// StarterLine is the line that arms the transaction scan for this wallet.
func (p Paylah) StarterLine() string {
	if strings.Contains(p.Starter, "%s") {
		return fmt.Sprintf(p.Starter, p.WalletNumber)
	}
	return p.Starter + p.WalletNumber
}

type CreditCard struct {
	TransactionsStart string `mapstructure:"transactions_start"`
	TransactionsEnd   string `mapstructure:"transactions_end"`
}

// Archive describes where processed statements are filed. LocalDir is the
// mounted network share; GCSBucket takes precedence when set.
type Archive struct {
	Share     string `mapstructure:"share"`
	LocalDir  string `mapstructure:"local_dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	GCSPrefix string `mapstructure:"gcs_prefix"`
}

type Database struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

var envBindings = map[string]string{
	"classifier.credit_card_number": "POSB_CREDIT_CARD_NUMBER",
	"paylah.wallet_number":          "PAYLAH_WALLET_NUMBER",
	"archive.share":                 "NAS_ADDR01_SMB",
	"archive.local_dir":             "NAS_ADDR01_LOCAL",
	"archive.gcs_bucket":            "PBSM_GCS_BUCKET",
	"database.url":                  "DATABASE_URL",
}

// BindEnv maps the environment variables the statements tooling has always
// used onto their config keys.
func BindEnv(v *viper.Viper) {
	for key, env := range envBindings {
		v.BindEnv(key, env)
	}
}

// ReadDefaults loads DefaultYAML into v.
func ReadDefaults(v *viper.Viper) error {
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewBufferString(DefaultYAML)); err != nil {
		return fmt.Errorf("failed to read embedded config: %w", err)
	}
	return nil
}

// Load decodes v into a Config and fills in defaults for zero values.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Classifier.PrefixLength <= 0 {
		cfg.Classifier.PrefixLength = 1000
	}
	if cfg.Paylah.Method == "" {
		cfg.Paylah.Method = "text"
	}
	if cfg.Paylah.Method != "text" && cfg.Paylah.Method != "table" {
		return nil, fmt.Errorf("invalid paylah.method %q: expected text or table", cfg.Paylah.Method)
	}
	if cfg.Paylah.DefaultReferenceWidth <= 0 {
		cfg.Paylah.DefaultReferenceWidth = 23
	}
	for _, area := range [][]float64{cfg.Paylah.HeaderArea, cfg.Paylah.FirstPageArea, cfg.Paylah.ContinuationArea} {
		if len(area) != 0 && len(area) != 4 {
			return nil, fmt.Errorf("invalid paylah area %v: expected [top, left, bottom, right]", area)
		}
	}

	return &cfg, nil
}

// Default returns the embedded configuration with environment bindings
// applied.
func Default() (*Config, error) {
	v := viper.New()
	BindEnv(v)
	if err := ReadDefaults(v); err != nil {
		return nil, err
	}
	return Load(v)
}
