package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/violenttestpen/lightbench/clock"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Iterations       uint    `mapstructure:"iterations" validate:"min=1"`
	Unit             string  `mapstructure:"unit" validate:"oneof=ns ticks ms s"`
	Warmup           int     `mapstructure:"warmup" validate:"min=0"`
	ProgressInterval uint    `mapstructure:"progressInterval" validate:"min=1"`
	ContinueOnError  bool    `mapstructure:"continueOnError"`
	Logging          Logging `mapstructure:"logging"`
	Output           Output  `mapstructure:"output"`
}

type Logging struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
}

type Output struct {
	NoColor    bool       `mapstructure:"noColor"`
	Prometheus Prometheus `mapstructure:"prometheus"`
	InfluxDB   InfluxDB   `mapstructure:"influxdb"`
}

type Prometheus struct {
	// Textfile is where metrics are written after the run. Empty disables
	// the Prometheus output.
	Textfile  string `mapstructure:"textfile"`
	Namespace string `mapstructure:"namespace" validate:"required"`
}

type InfluxDB struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host" validate:"required_if=Enabled true"`
	Token   string `mapstructure:"token" validate:"required_if=Enabled true"`
	Org     string `mapstructure:"org" validate:"required_if=Enabled true"`
	Bucket  string `mapstructure:"bucket" validate:"required_if=Enabled true"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("iterations", 1000)
	v.SetDefault("unit", "ms")
	v.SetDefault("warmup", 10)
	v.SetDefault("progressInterval", 1000000)
	v.SetDefault("continueOnError", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("output.noColor", false)
	v.SetDefault("output.prometheus.namespace", "lightbench")
	v.SetDefault("output.influxdb.enabled", false)
}

// New returns a viper instance with defaults and LIGHTBENCH_ environment
// overrides applied, ready to have flags bound to it.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("lightbench")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Read loads the configuration file at path into v. With an empty path,
// lightbench.yaml is looked up in the working directory and its absence is
// not an error.
func Read(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName("lightbench")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading configuration file")
		}
		logrus.Debug("no configuration file found, using defaults")
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Debug("configuration file loaded")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	config.Unit = strings.ToLower(strings.TrimSpace(config.Unit))
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "unable to validate configuration")
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fe.Error())
	}
	return errors.Wrap(ErrInvalidConfig, strings.Join(msgs, "; "))
}

// TimeUnit returns the configured measurement unit.
func (c *Config) TimeUnit() (clock.TimeUnit, error) {
	return clock.ParseUnit(c.Unit)
}

// LogLevel returns the configured logrus level.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
