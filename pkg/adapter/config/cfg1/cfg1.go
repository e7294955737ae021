// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/bikeshare/pkg/adapter/config/settings"
	"github.com/momeni/bikeshare/pkg/adapter/config/vers"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/migration"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/schemarp"
	"github.com/momeni/bikeshare/pkg/adapter/restful/gin"
	"github.com/momeni/bikeshare/pkg/core/log"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/pricing"
	"github.com/momeni/bikeshare/pkg/core/repo"
	"github.com/momeni/bikeshare/pkg/core/usecase/loansuc"
	"github.com/momeni/bikeshare/pkg/core/usecase/migrationuc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. It is preferred to implement Config with primitive fields
// or other structs which are defined locally, not models or structs
// which are defined in lower layers, so the configuration can be
// versioned and kept intact while other layers can change freely.
type Config struct {
	Database Database // PostgreSQL database connection settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Logging  Logging  // Default slog handler settings
	Usecases Usecases // Configuration settings for supported use cases

	// Vers contains the configuration file and database schema version
	// strings corresponding to this Config instance and its Database
	// target.
	Vers vers.Config `yaml:",inline"`
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(
	ctx context.Context, r repo.Role,
) (migrationuc.ClosablePool, error) {
	p, err := c.Database.ConnectionPool(ctx, r, c.SchemaVersion())
	if err != nil {
		return nil, fmt.Errorf(
			"%s@%s:%d/%s: %w",
			r, c.Database.Host, c.Database.Port, c.Database.Name, err,
		)
	}
	return p, nil
}

// NewSchemaRepo instantiates a fresh Schema repository.
func (c *Config) NewSchemaRepo() repo.Schema {
	return schemarp.New()
}

// SchemaInitializer creates a repo.SchemaInitializer instance which
// wraps the given `tx` transaction argument and can be used to create
// the tables of the configured database schema version.
func (c *Config) SchemaInitializer(tx repo.Tx) (
	repo.SchemaInitializer, error,
) {
	return migration.NewInitializer(tx, c.SchemaVersion())
}

// SchemaVersion returns the database schema version as recorded in
// the configuration file.
func (c *Config) SchemaVersion() model.SemVer {
	return c.Vers.Versions.Database
}

// NewLoansUseCase instantiates a loans use case which uses the `p`
// connection pool and the `loans` and `transports` repositories.
// Pricing rules and the maximum loan duration are taken from the
// Usecases.Loans settings.
func (c *Config) NewLoansUseCase(
	p repo.Pool, loans repo.Loans, transports repo.Transports,
) (*loansuc.UseCase, error) {
	return c.Usecases.Loans.NewUseCase(p, loans, transports)
}

// Database contains the database related configuration settings.
type Database struct {
	Host    string // domain name or IP address of the DBMS server
	Port    int    // port number of the DBMS server
	Name    string // database name, like bikeshare
	PassDir string `yaml:"pass-dir"` // path of the passwords dir
}

// ConnectionPool creates a database connection pool for the `r` role
// using the connection information which are kept in the `d` settings.
// The .pgpass file in the d.PassDir folder is checked for the password
// which should conform with the pgpass format with lines like this:
//
//	host:port:dbname:role:password
//
// Connections use the schema of the `sv` major version by default.
func (d Database) ConnectionPool(
	ctx context.Context, r repo.Role, sv model.SemVer,
) (*postgres.Pool, error) {
	path := filepath.Join(d.PassDir, ".pgpass")
	u, err := d.ConnectionURL(r, path, migrationuc.SchemaName(sv.Major()))
	if err != nil {
		return nil, fmt.Errorf("using %q pass-file: %w", path, err)
	}
	return postgres.NewPool(ctx, u)
}

// ConnectionURL returns the database connection URL embedding the host,
// port, role name, database name, search path, and password value.
// These items are directly taken from the `d` settings, but the role
// name which is specified by the `r` argument, the `schema` which is
// used as the search path, and the password value which is read from
// the given `path` file. Returned URL has the postgresql scheme.
// The `path` file may contain empty or `#`-commented lines in addition
// to the password specifying lines.
func (d Database) ConnectionURL(
	r repo.Role, path, schema string,
) (string, error) {
	passLines, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pass-file: %w", err)
	}
	prfx := fmt.Sprintf("%s:%d:%s:%s:", d.Host, d.Port, d.Name, r)
	var pass string
	for _, line := range strings.Split(string(passLines), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		if strings.HasPrefix(line, prfx) {
			pass = line[len(prfx):]
			break
		}
	}
	if pass == "" {
		return "", errors.New("no matching password line")
	}
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(string(r), pass),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: url.Values{"search_path": {schema}}.Encode(),
	}
	return u.String(), nil
}

// ValidateAndNormalize validates the database settings and fills the
// optional pass-dir with the current directory.
func (d *Database) ValidateAndNormalize() error {
	switch {
	case d.Host == "":
		return errors.New("host is empty")
	case d.Port <= 0 || d.Port > 65535:
		return fmt.Errorf("port %d is out of range", d.Port)
	case d.Name == "":
		return errors.New("name is empty")
	}
	if d.PassDir == "" {
		d.PassDir = "."
	}
	return nil
}

// Gin contains the gin-gonic related configuration settings.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized.
type Gin struct {
	Logger   *bool // Whether to register the request logger middleware
	Recovery *bool // Whether to register the recovery middleware
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if g.Logger != nil && *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if g.Recovery != nil && *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Logging contains the settings of the default slog handler.
type Logging struct {
	Format *string // text or json
	Level  *string // debug, info, warn, or error
}

// Setup installs the default slog handler which writes to `w`.
func (l Logging) Setup(w io.Writer) error {
	var format, level string
	if l.Format != nil {
		format = *l.Format
	}
	if l.Level != nil {
		level = *l.Level
	}
	return log.Setup(w, format, level)
}

// Usecases contains the configuration settings for all use cases.
type Usecases struct {
	Loans Loans // loans use cases related settings
}

// Loans contains the configuration settings for the loans use cases.
type Loans struct {
	// MaxDuration is the longest acceptable planned loan duration.
	// A nil value lets the use cases layer select a default value.
	MaxDuration *settings.Duration `yaml:"max-duration"`
	// MinMaxDuration is the inclusive minimum acceptable value
	// for the MaxDuration setting.
	// A missing value indicates that there is no lower bound.
	MinMaxDuration *settings.Duration `yaml:"max-duration-minimum"`
	// MaxMaxDuration is the inclusive maximum acceptable value
	// for the MaxDuration setting.
	// A missing value indicates that there is no upper bound.
	MaxMaxDuration *settings.Duration `yaml:"max-duration-maximum"`

	Pricing Pricing // per transport type pricing rules
}

// NewUseCase instantiates a new loans use case based on the settings
// in the `l` struct.
func (l Loans) NewUseCase(
	p repo.Pool, loans repo.Loans, transports repo.Transports,
) (*loansuc.UseCase, error) {
	e, err := pricing.New(l.Pricing.Table())
	if err != nil {
		return nil, fmt.Errorf("creating pricing engine: %w", err)
	}
	opts := make([]loansuc.Option, 0, 1)
	if l.MaxDuration != nil {
		opts = append(opts, loansuc.WithMaxDuration(l.MaxDuration.Std()))
	}
	return loansuc.New(p, loans, transports, e, opts...)
}

// Pricing contains the pricing rules table. A nil Default selects the
// standard default rule and nil Rules select the standard rules of
// the known transport types. An empty Rules mapping makes all types
// to be priced by the Default rule.
type Pricing struct {
	Default *Rule
	Rules   map[string]Rule
}

// Table builds the pricing rules table of the `p` settings.
func (p Pricing) Table() *pricing.Table {
	def := pricing.StandardDefault()
	if p.Default != nil {
		def = p.Default.model()
	}
	if p.Rules == nil {
		return pricing.NewTable(def, pricing.StandardRules())
	}
	rules := make(map[string]pricing.Rule, len(p.Rules))
	for typ, r := range p.Rules {
		rules[typ] = r.model()
	}
	return pricing.NewTable(def, rules)
}

// ValidateAndNormalize validates all rules and fills their empty
// currencies with the default rule currency.
func (p *Pricing) ValidateAndNormalize() error {
	if p.Default != nil {
		if err := p.Default.Validate(); err != nil {
			return fmt.Errorf("default: %w", err)
		}
	}
	cur := pricing.StandardDefault().Currency
	if p.Default != nil {
		if p.Default.Currency == "" {
			p.Default.Currency = cur
		}
		cur = p.Default.Currency
	}
	for typ, r := range p.Rules {
		if typ == pricing.DefaultType {
			return fmt.Errorf(
				"%q rule must be set as pricing.default", typ,
			)
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rule %q: %w", typ, err)
		}
		if r.Currency == "" {
			r.Currency = cur
			p.Rules[typ] = r
		}
	}
	return nil
}

// Rule is the pricing rule of one transport type.
type Rule struct {
	BaseRate      float64 `yaml:"base-rate"`
	PerMinuteRate float64 `yaml:"per-minute-rate"`
	Currency      string  `yaml:"currency,omitempty"`
}

// Validate ensures that rates of the `r` rule are not negative.
func (r Rule) Validate() error {
	switch {
	case r.BaseRate < 0:
		return fmt.Errorf("negative base-rate: %v", r.BaseRate)
	case r.PerMinuteRate < 0:
		return fmt.Errorf(
			"negative per-minute-rate: %v", r.PerMinuteRate,
		)
	}
	return nil
}

func (r Rule) model() pricing.Rule {
	return pricing.Rule{
		BaseRate:      r.BaseRate,
		PerMinuteRate: r.PerMinuteRate,
		Currency:      r.Currency,
	}
}

// Load function loads, validates, and normalizes the configuration
// settings from the `data` yaml document. Unknown keys are rejected
// in order to catch the misspelled settings.
func Load(ctx context.Context, data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	c := &Config{}
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(ctx); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace nil values with their
// default values. An out-of-range max-duration is clamped to its
// boundaries and reported as a warning.
func (c *Config) ValidateAndNormalize(ctx context.Context) error {
	if err := c.Vers.Validate(Version); err != nil {
		return fmt.Errorf("config version: %w", err)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	settings.Nil2Zero(&c.Gin.Logger)
	settings.Nil2Zero(&c.Gin.Recovery)
	settings.Nil2Default(&c.Logging.Format, "text")
	settings.Nil2Default(&c.Logging.Level, "info")
	l := &c.Usecases.Loans
	if l.MaxDuration != nil && *l.MaxDuration <= 0 {
		return fmt.Errorf("max-duration (%s) is not positive", l.MaxDuration)
	}
	if err := settings.VerifyRange(
		"max-duration", &l.MaxDuration, l.MinMaxDuration, l.MaxMaxDuration,
	); err != nil {
		if err.InvalidRange {
			return err
		}
		log.Warn(
			ctx, "max-duration is clamped",
			log.Valuer("configured", *err.Value),
			log.Valuer("clamped", *l.MaxDuration),
		)
	}
	if err := l.Pricing.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating pricing settings: %w", err)
	}
	return nil
}

// Marshal serializes the `c` settings as a yaml document.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
