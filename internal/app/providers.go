// Package app assembles the character runtime from configuration. The
// dependency graph is declared for google/wire in wire.go; wire_gen.go holds
// the generated injector.
package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/shooter/internal/config"
	"github.com/cory-johannsen/shooter/internal/game/animation"
	"github.com/cory-johannsen/shooter/internal/game/character"
	"github.com/cory-johannsen/shooter/internal/game/input"
	"github.com/cory-johannsen/shooter/internal/game/inventory"
	"github.com/cory-johannsen/shooter/internal/game/weapon"
	"github.com/cory-johannsen/shooter/internal/observability"
	"github.com/cory-johannsen/shooter/internal/scripting"
)

// CharacterID identifies the one character an App drives in log output.
type CharacterID string

// App is a fully wired character runtime.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	ID        CharacterID
	Registry  *weapon.Registry
	Scripts   *scripting.Manager
	Inventory *inventory.Inventory
	Player    *animation.Player
	Character *character.Character
	Router    *input.Router
}

// Step advances the character by dt and then the simulated animator, so
// completions reported by the animator are seen on the next Step.
//
// Precondition: dt >= 0.
func (a *App) Step(dt time.Duration) {
	a.Character.Tick(dt)
	a.Player.Advance(dt)
}

// ProvideLogger builds the root logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideCharacterID assigns a fresh identifier.
func ProvideCharacterID() CharacterID {
	return CharacterID(uuid.NewString())
}

// ProvideRegistry loads every weapon definition under content.weapons_dir.
func ProvideRegistry(cfg *config.Config, logger *zap.Logger) (*weapon.Registry, error) {
	start := time.Now()
	records, err := weapon.LoadRecords(cfg.Content.WeaponsDir)
	if err != nil {
		return nil, fmt.Errorf("ProvideRegistry: %w", err)
	}
	reg := weapon.NewRegistry()
	for _, r := range records {
		if err := reg.Register(r); err != nil {
			return nil, fmt.Errorf("ProvideRegistry: %w", err)
		}
	}
	logger.Info("weapons loaded",
		zap.Int("count", reg.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return reg, nil
}

// ProvideScripts loads the hook tree under content.scripts_dir. It returns a
// nil Manager when scripting is disabled.
func ProvideScripts(cfg *config.Config, logger *zap.Logger) (*scripting.Manager, func(), error) {
	if cfg.Content.ScriptsDir == "" {
		return nil, func() {}, nil
	}
	mgr := scripting.NewManager(cfg.Content.ScriptInstructionLimit, logger.Named("scripting"))
	if err := mgr.LoadDir(cfg.Content.ScriptsDir); err != nil {
		mgr.Close()
		return nil, nil, fmt.Errorf("ProvideScripts: %w", err)
	}
	return mgr, mgr.Close, nil
}

// ProvideHooks selects script hooks when scripting is enabled and fill-to-
// capacity behaviour otherwise.
func ProvideHooks(mgr *scripting.Manager) weapon.Hooks {
	if mgr == nil {
		return weapon.FillHooks{}
	}
	return scripting.NewWeaponHooks(mgr)
}

// ProvideInventory builds the configured loadout and equips the starting
// weapon.
func ProvideInventory(cfg *config.Config, reg *weapon.Registry, hooks weapon.Hooks, logger *zap.Logger) (*inventory.Inventory, error) {
	weapons, err := reg.Loadout(cfg.Character.Loadout, hooks)
	if err != nil {
		return nil, fmt.Errorf("ProvideInventory: %w", err)
	}
	inv := inventory.New(weapons)
	if w := inv.Init(cfg.Character.StartingIndex); w == nil {
		logger.Warn("starting index out of range; nothing equipped",
			zap.Int("starting_index", cfg.Character.StartingIndex),
			zap.Int("loadout", inv.Len()),
		)
	}
	return inv, nil
}

// ProvidePlayer builds the simulated animator.
func ProvidePlayer(cfg *config.Config) *animation.Player {
	return animation.NewPlayer(cfg.Animation)
}

// ProvideSink logs every notification before it reaches the animator.
func ProvideSink(player *animation.Player, logger *zap.Logger, id CharacterID) animation.Sink {
	return animation.NewLoggedSink(player, observability.Component(logger, "animation", string(id)))
}

// ProvideCharacter builds the character and binds the animator's completion
// callbacks to it.
func ProvideCharacter(
	cfg *config.Config,
	inv *inventory.Inventory,
	sink animation.Sink,
	player *animation.Player,
	logger *zap.Logger,
	id CharacterID,
) *character.Character {
	c := character.New(inv, sink,
		character.SettingsFromConfig(cfg.Character),
		observability.Component(logger, "character", string(id)),
	)
	player.Bind(c)
	return c
}

// ProvideRouter routes input events onto the character.
func ProvideRouter(c *character.Character, logger *zap.Logger, id CharacterID) *input.Router {
	return input.NewRouter(c, observability.Component(logger, "input", string(id)))
}
