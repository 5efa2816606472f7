// Package config loads the bridge configuration from defaults, an optional
// rcdrive.yaml file, RCDRIVE_ environment variables and command-line flags,
// in increasing order of precedence. The curve toggles stay live: a config
// file change flips them between cycles without a restart, the software
// equivalent of flipping physical dip switches.
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rcdrive/rcdrive/internal/pipeline"
	"github.com/rcdrive/rcdrive/internal/receiver"
	"github.com/rcdrive/rcdrive/internal/sink"
)

const envPrefix = "RCDRIVE"

// Defaults. The blend endpoints encode tuned driving feel: slightly below 0
// lets the knob under-shape for low-grip setups, 1.5 over-shapes for high
// grip. Keep them named, never inline the literals.
const (
	DefaultListenAddr   = ":8080"
	DefaultPollHz       = 100
	DefaultStartupDelay = 500 // milliseconds before cycle 0
	DefaultDebug        = false

	DefaultSteeringChannel = 0
	DefaultThrottleChannel = 1
	DefaultBlendChannel    = 2
	DefaultModeChannel     = 3

	DefaultDeadzone         = 25
	DefaultSteeringExponent = 1.64
	DefaultBlendMin         = -0.1
	DefaultBlendMax         = 1.5
	DefaultModeThreshold    = 0
	DefaultModeHysteresis   = 50
	DefaultButtonThreshold  = 500

	DefaultSteeringExpo     = true
	DefaultAcceleratorCurve = true
	DefaultBrakeCurve       = true
)

// buttonSpec is the config-file shape of one button mapping.
type buttonSpec struct {
	Channel   int    `mapstructure:"channel"`
	Index     int    `mapstructure:"index"`
	Key       string `mapstructure:"key"`
	Threshold int    `mapstructure:"threshold"`
}

// Config is the loaded configuration. Everything except the curve toggles is
// fixed for the process lifetime; the toggles are re-readable between cycles.
type Config struct {
	ListenAddr   string
	PollHz       int
	StartupDelay int // milliseconds
	Debug        bool

	Pipeline pipeline.Settings

	mu      sync.RWMutex
	toggles pipeline.Toggles
}

// CurveToggles returns the current curve enable switches. Called once per
// cycle by the control loop.
func (c *Config) CurveToggles() pipeline.Toggles {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.toggles
}

// Load parses flags, environment and the optional config file.
func Load(args []string) (*Config, error) {
	v := viper.New()

	flags := pflag.NewFlagSet("rcdrive", pflag.ContinueOnError)
	flags.String("listen", DefaultListenAddr, "monitor HTTP listen address")
	flags.Int("poll-hz", DefaultPollHz, "control loop rate")
	flags.Int("deadzone", DefaultDeadzone, "deadzone around channel rest")
	flags.Float64("steering-exponent", DefaultSteeringExponent, "steering curve exponent")
	flags.Bool("debug", DefaultDebug, "log every emitted value")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	v.SetDefault("listen", DefaultListenAddr)
	v.SetDefault("poll-hz", DefaultPollHz)
	v.SetDefault("startup-delay-ms", DefaultStartupDelay)
	v.SetDefault("debug", DefaultDebug)

	v.SetDefault("channels.steering", DefaultSteeringChannel)
	v.SetDefault("channels.throttle", DefaultThrottleChannel)
	v.SetDefault("channels.blend", DefaultBlendChannel)
	v.SetDefault("channels.mode", DefaultModeChannel)

	v.SetDefault("deadzone", DefaultDeadzone)
	v.SetDefault("steering-exponent", DefaultSteeringExponent)
	v.SetDefault("blend.min", DefaultBlendMin)
	v.SetDefault("blend.max", DefaultBlendMax)
	v.SetDefault("mode.threshold", DefaultModeThreshold)
	v.SetDefault("mode.hysteresis", DefaultModeHysteresis)

	v.SetDefault("curves.steering-expo", DefaultSteeringExpo)
	v.SetDefault("curves.accelerator", DefaultAcceleratorCurve)
	v.SetDefault("curves.brake", DefaultBrakeCurve)

	v.SetDefault("buttons", []map[string]any{
		{"channel": 4, "index": 0, "key": string(sink.KeySpace), "threshold": DefaultButtonThreshold},
		{"channel": 5, "index": 1, "key": string(sink.KeyEnter), "threshold": DefaultButtonThreshold},
	})

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("rcdrive")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	} else {
		log.Printf("Config file loaded: %s", v.ConfigFileUsed())
	}

	pollHz := v.GetInt("poll-hz")
	if pollHz <= 0 {
		pollHz = DefaultPollHz
	}

	// A non-positive exponent would shape center stick into full lock
	// (Pow(0, 0) == 1); refuse it rather than drive with it.
	exponent := v.GetFloat64("steering-exponent")
	if exponent <= 0 {
		return nil, fmt.Errorf("steering-exponent must be > 0, got %v", exponent)
	}

	cfg := &Config{
		ListenAddr:   v.GetString("listen"),
		PollHz:       pollHz,
		StartupDelay: v.GetInt("startup-delay-ms"),
		Debug:        v.GetBool("debug"),
		Pipeline: pipeline.Settings{
			SteeringChannel:  receiver.Channel(v.GetInt("channels.steering")),
			ThrottleChannel:  receiver.Channel(v.GetInt("channels.throttle")),
			BlendChannel:     receiver.Channel(v.GetInt("channels.blend")),
			ModeChannel:      receiver.Channel(v.GetInt("channels.mode")),
			Deadzone:         v.GetInt("deadzone"),
			SteeringExponent: exponent,
			BlendMin:         v.GetFloat64("blend.min"),
			BlendMax:         v.GetFloat64("blend.max"),
			ModeThreshold:    v.GetInt("mode.threshold"),
			ModeHysteresis:   v.GetInt("mode.hysteresis"),
		},
	}

	var buttons []buttonSpec
	if err := v.UnmarshalKey("buttons", &buttons); err != nil {
		return nil, err
	}
	for _, b := range buttons {
		key := sink.Key(b.Key)
		if !sink.ValidKey(key) {
			return nil, fmt.Errorf("unknown key %q for button on channel %d", b.Key, b.Channel)
		}
		cfg.Pipeline.Buttons = append(cfg.Pipeline.Buttons, pipeline.ButtonSpec{
			Channel:   receiver.Channel(b.Channel),
			Index:     b.Index,
			Key:       key,
			Threshold: b.Threshold,
		})
	}

	cfg.toggles = readToggles(v)

	// Re-read the toggles when the config file changes so physical-switch
	// style tuning works without restarting the bridge.
	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(fsnotify.Event) {
			t := readToggles(v)
			cfg.mu.Lock()
			cfg.toggles = t
			cfg.mu.Unlock()
			log.Printf("Curve toggles reloaded: expo=%v accel=%v brake=%v",
				t.SteeringExpo, t.AcceleratorCurve, t.BrakeCurve)
		})
		v.WatchConfig()
	}

	return cfg, nil
}

func readToggles(v *viper.Viper) pipeline.Toggles {
	return pipeline.Toggles{
		SteeringExpo:     v.GetBool("curves.steering-expo"),
		AcceleratorCurve: v.GetBool("curves.accelerator"),
		BrakeCurve:       v.GetBool("curves.brake"),
	}
}
