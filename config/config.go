package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultUpstreamTimeout    = 15 * time.Second
	defaultListingPageSize    = 20
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// WordPress describes the upstream deployment every non-trivial operation
	// is delegated to.
	WordPress *WordPressConfig `json:"wordpress" yaml:"wordpress"`

	// Store configures the embedded local store that mirrors durable
	// client-side state (sessions, carts, visited vendors).
	Store *StoreConfig `json:"store" yaml:"store"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	Cart *CartConfig `json:"cart" yaml:"cart"`

	Listings *ListingsConfig `json:"listings" yaml:"listings"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	// QRCode configuration for storefront share codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for visit event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// WordPressConfig holds the upstream base URL and the REST namespaces the
// client consumes. Namespaces default to the stock plugin routes.
type WordPressConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Timeout bounds every upstream call. The legacy front-end had no timeout
	// at all, which left loading states hanging forever on a stalled request.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	Namespaces struct {
		Core   string `json:"core" yaml:"core"`     // wp/v2
		GeoDir string `json:"geodir" yaml:"geodir"` // geodir/v2
		Auth   string `json:"auth" yaml:"auth"`     // shoplocal-api/v1
		Custom string `json:"custom" yaml:"custom"` // custom-api/v1
	} `json:"namespaces" yaml:"namespaces"`
}

// StoreConfig defines the embedded sqlite store location.
type StoreConfig struct {
	// Path to the sqlite database file. ":memory:" keeps everything ephemeral.
	Path string `json:"path" yaml:"path"`
}

// AuthConfig defines session and credential handling behavior.
type AuthConfig struct {
	// SealKey is the 64-char hex key (32 bytes) used to seal stored Basic
	// credentials at rest. Empty disables credential storage entirely and the
	// profile-sync path degrades to local-only updates.
	SealKey string `json:"sealKey" yaml:"sealKey"`

	// AllowMockSocialLogin preserves the legacy offline-demo behavior where a
	// failed social-login exchange fabricates a placeholder local identity.
	// Off by default: the failure surfaces as a typed error instead.
	AllowMockSocialLogin bool `json:"allowMockSocialLogin" yaml:"allowMockSocialLogin"`
}

// CartConfig defines the pricing constants for cart totals.
type CartConfig struct {
	FreeShippingOver float64 `json:"freeShippingOver" yaml:"freeShippingOver"`
	ShippingFee      float64 `json:"shippingFee" yaml:"shippingFee"`
	TaxRate          float64 `json:"taxRate" yaml:"taxRate"`
}

// ListingsConfig bounds listing fetches.
type ListingsConfig struct {
	// PageSize is the single page fetched for the dashboard. Author filtering
	// happens on this page only; listings beyond it are not seen.
	PageSize int `json:"pageSize" yaml:"pageSize"`
}

type GoogleOAuthConfig struct {
	ClientID string `json:"clientId" yaml:"clientId"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for visit event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: WORDPRESS_BASEURL -> wordpress.baseUrl (not wordpress.baseurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	applyDefaults(cfg)

	if cfg.WordPress == nil || cfg.WordPress.BaseURL == "" {
		return nil, errors.New("wordpress.baseUrl is required")
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.WordPress != nil {
		if cfg.WordPress.Timeout <= 0 {
			cfg.WordPress.Timeout = defaultUpstreamTimeout
		}
		ns := &cfg.WordPress.Namespaces
		if ns.Core == "" {
			ns.Core = "wp/v2"
		}
		if ns.GeoDir == "" {
			ns.GeoDir = "geodir/v2"
		}
		if ns.Auth == "" {
			ns.Auth = "shoplocal-api/v1"
		}
		if ns.Custom == "" {
			ns.Custom = "custom-api/v1"
		}
	}

	if cfg.Cart == nil {
		cfg.Cart = &CartConfig{}
	}
	if cfg.Cart.FreeShippingOver <= 0 {
		cfg.Cart.FreeShippingOver = 500
	}
	if cfg.Cart.ShippingFee <= 0 {
		cfg.Cart.ShippingFee = 25
	}
	if cfg.Cart.TaxRate <= 0 {
		cfg.Cart.TaxRate = 0.08
	}

	if cfg.Listings == nil {
		cfg.Listings = &ListingsConfig{}
	}
	if cfg.Listings.PageSize <= 0 {
		cfg.Listings.PageSize = defaultListingPageSize
	}

	if cfg.Store == nil {
		cfg.Store = &StoreConfig{Path: "shoplocal.db"}
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "shoplocal.db"
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
