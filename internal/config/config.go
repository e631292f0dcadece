// Package config provides Viper-based configuration loading for the shooter
// character runtime.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Switch policies accepted by CharacterConfig.SwitchPolicy.
const (
	// SwitchPolicyDrop rejects a weapon switch while another is in flight.
	SwitchPolicyDrop = "drop"
	// SwitchPolicyQueue retargets an in-flight switch to the latest request.
	SwitchPolicyQueue = "queue"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CharacterConfig holds tuning for the character action state machine.
type CharacterConfig struct {
	// DampTimeLocomotion smooths the Movement animator parameter.
	DampTimeLocomotion time.Duration `mapstructure:"damp_time_locomotion"`
	// DampTimeAiming smooths the Aiming animator parameter.
	DampTimeAiming time.Duration `mapstructure:"damp_time_aiming"`
	// FireBlend is the cross-fade time for fire and empty-fire animations.
	FireBlend time.Duration `mapstructure:"fire_blend"`
	// CursorLocked is the cursor lock state at startup.
	CursorLocked bool `mapstructure:"cursor_locked"`
	// StartingIndex is the inventory index equipped at startup.
	StartingIndex int `mapstructure:"starting_index"`
	// Loadout is the ordered list of weapon IDs carried. Empty means every
	// registered weapon in ID order.
	Loadout []string `mapstructure:"loadout"`
	// SwitchPolicy is "drop" or "queue".
	SwitchPolicy string `mapstructure:"switch_policy"`
	// LatchTimeout force-releases an in-flight action older than this.
	// Zero disables the watchdog.
	LatchTimeout time.Duration `mapstructure:"latch_timeout"`
}

// ContentConfig locates weapon definitions and hook scripts on disk.
type ContentConfig struct {
	WeaponsDir string `mapstructure:"weapons_dir"`
	// ScriptsDir is the root of the Lua hook tree; empty disables scripting.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// WatchScripts enables hot reload of ScriptsDir.
	WatchScripts bool `mapstructure:"watch_scripts"`
	// ScriptInstructionLimit caps opcodes per hook call; 0 uses the default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// AnimationConfig holds clip lengths for the simulated animation player.
type AnimationConfig struct {
	Reload      time.Duration `mapstructure:"reload"`
	ReloadEmpty time.Duration `mapstructure:"reload_empty"`
	Inspect     time.Duration `mapstructure:"inspect"`
	Holster     time.Duration `mapstructure:"holster"`
}

// TickConfig holds the fixed-rate tick driver settings.
type TickConfig struct {
	// Rate is the number of ticks per second.
	Rate int `mapstructure:"rate"`
}

// Interval returns the duration of one tick.
//
// Precondition: Rate > 0.
// Postcondition: Returns time.Second / Rate.
func (t TickConfig) Interval() time.Duration {
	return time.Second / time.Duration(t.Rate)
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Character CharacterConfig `mapstructure:"character"`
	Content   ContentConfig   `mapstructure:"content"`
	Animation AnimationConfig `mapstructure:"animation"`
	Tick      TickConfig      `mapstructure:"tick"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCharacter(c.Character); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateAnimation(c.Animation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateTick(c.Tick); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCharacter(c CharacterConfig) error {
	var errs []string
	if c.DampTimeLocomotion < 0 {
		errs = append(errs, "character.damp_time_locomotion must not be negative")
	}
	if c.DampTimeAiming < 0 {
		errs = append(errs, "character.damp_time_aiming must not be negative")
	}
	if c.FireBlend < 0 {
		errs = append(errs, "character.fire_blend must not be negative")
	}
	if c.StartingIndex < 0 {
		errs = append(errs, fmt.Sprintf("character.starting_index must be >= 0, got %d", c.StartingIndex))
	}
	if len(c.Loadout) > 0 && c.StartingIndex >= len(c.Loadout) {
		errs = append(errs, fmt.Sprintf("character.starting_index %d is outside a loadout of %d", c.StartingIndex, len(c.Loadout)))
	}
	seen := make(map[string]bool, len(c.Loadout))
	for _, id := range c.Loadout {
		if id == "" {
			errs = append(errs, "character.loadout must not contain empty IDs")
			continue
		}
		if seen[id] {
			errs = append(errs, fmt.Sprintf("character.loadout lists %q more than once", id))
		}
		seen[id] = true
	}
	if c.SwitchPolicy != SwitchPolicyDrop && c.SwitchPolicy != SwitchPolicyQueue {
		errs = append(errs, fmt.Sprintf("character.switch_policy must be one of [drop, queue], got %q", c.SwitchPolicy))
	}
	if c.LatchTimeout < 0 {
		errs = append(errs, "character.latch_timeout must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	if c.WeaponsDir == "" {
		return errors.New("content.weapons_dir must not be empty")
	}
	if c.WatchScripts && c.ScriptsDir == "" {
		return errors.New("content.watch_scripts requires content.scripts_dir")
	}
	if c.ScriptInstructionLimit < 0 {
		return fmt.Errorf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit)
	}
	return nil
}

func validateAnimation(a AnimationConfig) error {
	var errs []string
	clips := map[string]time.Duration{
		"reload":       a.Reload,
		"reload_empty": a.ReloadEmpty,
		"inspect":      a.Inspect,
		"holster":      a.Holster,
	}
	for _, name := range []string{"reload", "reload_empty", "inspect", "holster"} {
		if clips[name] <= 0 {
			errs = append(errs, fmt.Sprintf("animation.%s must be > 0", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateTick(t TickConfig) error {
	if t.Rate < 1 || t.Rate > 1000 {
		return fmt.Errorf("tick.rate must be 1-1000, got %d", t.Rate)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SHOOTER_ prefix
	v.SetEnvPrefix("SHOOTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance populated only with default values.
//
// Postcondition: LoadFromViper(Defaults()) succeeds.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("character.damp_time_locomotion", "150ms")
	v.SetDefault("character.damp_time_aiming", "300ms")
	v.SetDefault("character.fire_blend", "50ms")
	v.SetDefault("character.cursor_locked", true)
	v.SetDefault("character.starting_index", 0)
	v.SetDefault("character.switch_policy", SwitchPolicyDrop)
	v.SetDefault("character.latch_timeout", "0s")

	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.scripts_dir", "")
	v.SetDefault("content.watch_scripts", false)
	v.SetDefault("content.script_instruction_limit", 0)

	v.SetDefault("animation.reload", "2s")
	v.SetDefault("animation.reload_empty", "2500ms")
	v.SetDefault("animation.inspect", "3s")
	v.SetDefault("animation.holster", "500ms")

	v.SetDefault("tick.rate", 60)
}
