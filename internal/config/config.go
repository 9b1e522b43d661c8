package config

import (
	"crypto/rand"
	"errors"
	"io/fs"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. HXTITLE_VARIANT.
const EnvPrefix = "HXTITLE"

// Mount variants.
const (
	VariantEager = "eager"
	VariantLazy  = "lazy"
)

// Config keys, shared by flags, env and defaults.
const (
	KeyAddr     = "addr"
	KeyKey      = "key"
	KeyVariant  = "variant"
	KeyStyle    = "style"
	KeyTarget   = "target"
	KeyPage     = "page"
	KeyHTMXURL  = "htmx_url"
	KeyLogLevel = "log_level"
	KeyText     = "text"
)

// DefaultText is what the bootstrap mounts unless told otherwise.
const DefaultText = "Is this thing on?"

// Config is the resolved configuration for every command.
type Config struct {
	Addr     string
	Key      string
	Variant  string
	Style    string
	Target   string
	Page     string
	HTMXURL  string
	LogLevel string
	Text     string
}

// validTarget limits attachment ids to characters that need no escaping
// in an attribute or a CSS selector.
var validTarget = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_:.-]*$`)

// Defaults holds the value of every key when neither a flag nor the
// environment sets it.
var Defaults = map[string]string{
	KeyAddr:     ":8080",
	KeyKey:      "",
	KeyVariant:  VariantEager,
	KeyStyle:    "",
	KeyTarget:   "root",
	KeyPage:     "",
	KeyHTMXURL:  "https://unpkg.com/htmx.org@2.0.4",
	KeyLogLevel: "info",
	KeyText:     DefaultText,
}

// New returns a viper instance with defaults and env binding applied.
// Callers bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	for key, val := range Defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads files into the process environment. A missing file is
// not an error; with no arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return serr.Wrap(err, "failed to load env file "+f)
		}
	}
	return nil
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Addr:     v.GetString(KeyAddr),
		Key:      v.GetString(KeyKey),
		Variant:  strings.ToLower(strings.TrimSpace(v.GetString(KeyVariant))),
		Style:    strings.TrimSpace(v.GetString(KeyStyle)),
		Target:   strings.TrimSpace(v.GetString(KeyTarget)),
		Page:     v.GetString(KeyPage),
		HTMXURL:  v.GetString(KeyHTMXURL),
		LogLevel: v.GetString(KeyLogLevel),
		Text:     v.GetString(KeyText),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that do not depend on other packages. Style keys
// are checked when the title is built.
func (c Config) Validate() error {
	switch c.Variant {
	case VariantEager, VariantLazy:
	default:
		return serr.New("variant must be " + VariantEager + " or " + VariantLazy + ", got " + c.Variant)
	}
	if c.Target == "" {
		return serr.New("target (attachment point id) must not be empty")
	}
	if !validTarget.MatchString(c.Target) {
		return serr.New("target must be a single element id (letters, digits, _ : . -), got " + c.Target)
	}
	if c.Variant == VariantLazy && c.HTMXURL == "" {
		return serr.New("htmx_url is required for the lazy variant")
	}
	return nil
}

// Lazy reports whether the lazy variant is selected.
func (c Config) Lazy() bool {
	return c.Variant == VariantLazy
}

// KeyBytes returns the props key, or 32 random bytes when none is set.
func (c Config) KeyBytes() ([]byte, error) {
	if c.Key != "" {
		return []byte(c.Key), nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, serr.Wrap(err, "failed to generate props key")
	}
	return key, nil
}
