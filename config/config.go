// Package config loads the INI configuration file of the form templater and decodes
// it into the typed settings used by the authorization client.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"

	fterrors "github.com/go-sharp/formtemplater/errors"
)

const (
	SectionAuth   = "auth"
	SectionClient = "client"
	SectionCLI    = "cli"

	DefaultTimeout = 30 * time.Second
)

// Sections maps a section name to its options, exactly as read from the file.
type Sections map[string]map[string]string

// Get returns the value of option in section.
func (s Sections) Get(section, option string) (string, bool) {
	opts, ok := s[section]
	if !ok {
		return "", false
	}
	v, ok := opts[option]
	return v, ok
}

// Config is the decoded configuration file.
type Config struct {
	Auth   Auth
	Client Client
	CLI    CLI
}

// Auth holds the [auth] section. The authorization flow relies on browser
// consent, so these values are accepted but never used.
type Auth struct {
	Email    string
	Password string
}

// Client holds the oauth2 client registration from the [client] section.
type Client struct {
	ID          string
	Secret      string
	RedirectURI string
}

// CLI holds the optional [cli] section.
type CLI struct {
	OpenBrowser bool
	Timeout     time.Duration
}

// Load reads the INI file at path. A missing or unparsable file yields an
// empty mapping, absent keys are reported later by Decode.
//
// Values are kept literally with two exceptions the ini parser cannot turn
// off: a value wrapped in backticks or in triple double quotes is returned
// without them.
func Load(log *zap.SugaredLogger, path string) Sections {
	sections := Sections{}

	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:        true,
		IgnoreContinuation:         true,
		PreserveSurroundedQuote:    true,
		AllowPythonMultilineValues: true,
	}, path)
	if err != nil {
		log.Warnw("Could not read config file", "path", path, "error", err)
		return sections
	}

	defaults := map[string]string{}
	if def, err := f.GetSection(ini.DefaultSection); err == nil {
		for _, k := range def.Keys() {
			defaults[k.Name()] = k.Value()
		}
	}

	for _, s := range f.Sections() {
		if s.Name() == ini.DefaultSection {
			continue
		}
		opts := make(map[string]string, len(defaults)+len(s.Keys()))
		for k, v := range defaults {
			opts[k] = v
		}
		for _, k := range s.Keys() {
			opts[k.Name()] = k.Value()
		}
		sections[s.Name()] = opts
	}

	log.Debugw("Loaded config file", "path", path, "sections", sections.Names())
	return sections
}

// Decode validates sections and converts them into a Config. Every absent
// required key is named in the returned error.
func Decode(sections Sections) (*Config, error) {
	var missing []string
	required := func(section, option string) string {
		v, ok := sections.Get(section, option)
		if !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, section+"."+option)
		}
		return v
	}

	cfg := &Config{
		Client: Client{
			ID:          required(SectionClient, "id"),
			Secret:      required(SectionClient, "secret"),
			RedirectURI: required(SectionClient, "redirect_uri"),
		},
		CLI: CLI{Timeout: DefaultTimeout},
	}
	if len(missing) > 0 {
		return nil, fterrors.ErrConfigMissing.WithMessage(strings.Join(missing, ", "))
	}

	cfg.Auth.Email, _ = sections.Get(SectionAuth, "email")
	cfg.Auth.Password, _ = sections.Get(SectionAuth, "password")

	if v, ok := sections.Get(SectionCLI, "open_browser"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, fterrors.ErrConfigInvalid.WithMessageAndError("cli.open_browser", err)
		}
		cfg.CLI.OpenBrowser = b
	}
	if v, ok := sections.Get(SectionCLI, "timeout"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, fterrors.ErrConfigInvalid.WithMessageAndError("cli.timeout", err)
		}
		if d <= 0 {
			return nil, fterrors.ErrConfigInvalid.WithMessage(fmt.Sprintf("cli.timeout must be positive, got %v", d))
		}
		cfg.CLI.Timeout = d
	}

	return cfg, nil
}

// Names returns the section names in sorted order.
func (s Sections) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
