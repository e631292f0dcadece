package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// globalKey is the reserved key for scripts at the root of the script tree.
// CallHook falls back to this VM when a weapon has none of its own.
const globalKey = "__global__"

// Manager owns one sandboxed LState per weapon plus a shared global one.
//
// The script tree is laid out as:
//
//	<root>/*.lua             global hooks, used by every weapon
//	<root>/<weaponID>/*.lua  hooks for one weapon
//
// Manager is safe for concurrent use. Calls are serialised; Reload swaps the
// whole set of VMs at once so a hook never sees a half-loaded tree.
type Manager struct {
	mu        sync.Mutex
	states    map[string]*lua.LState
	instLimit int
	logger    *zap.Logger
	root      string
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil. instLimit <= 0 uses
// DefaultInstructionLimit.
func NewManager(instLimit int, logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{
		states:    make(map[string]*lua.LState),
		instLimit: instLimit,
		logger:    logger,
	}
}

// LoadDir loads the script tree at root, replacing anything loaded before.
// On error the previously loaded scripts stay in place.
//
// Precondition: root must be a readable directory.
func (m *Manager) LoadDir(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("scripting: reading script root %q: %w", root, err)
	}

	states := make(map[string]*lua.LState)
	closeAll := func() {
		for _, L := range states {
			L.Close()
		}
	}

	L, err := m.loadFiles(globalKey, root)
	if err != nil {
		return err
	}
	states[globalKey] = L

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		L, err := m.loadFiles(e.Name(), filepath.Join(root, e.Name()))
		if err != nil {
			closeAll()
			return err
		}
		states[e.Name()] = L
	}

	m.mu.Lock()
	old := m.states
	m.states = states
	m.root = root
	m.mu.Unlock()
	for _, L := range old {
		L.Close()
	}

	m.logger.Info("scripts loaded", zap.String("root", root), zap.Int("weapons", len(states)-1))
	return nil
}

// Reload reloads the tree last passed to LoadDir.
func (m *Manager) Reload() error {
	m.mu.Lock()
	root := m.root
	m.mu.Unlock()
	if root == "" {
		return nil
	}
	return m.LoadDir(root)
}

// Root returns the tree last loaded, or "".
func (m *Manager) Root() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

func (m *Manager) loadFiles(key, dir string) (*lua.LState, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading script dir %q for %q: %w", dir, key, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	L := NewSandboxedState()
	m.registerModules(L, key)
	for _, path := range files {
		path := path
		err := Bounded(L, m.instLimit, func() error { return L.DoFile(path) })
		if err != nil {
			L.Close()
			return nil, fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}
	return L, nil
}

// HasHook reports whether hook is defined for weaponID, either in its own
// scripts or globally.
func (m *Manager) HasHook(weaponID, hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, fn := m.lookup(weaponID, hook)
	return fn != lua.LNil
}

// lookup finds hook in the weapon's VM, then the global VM.
// Precondition: m.mu is held.
func (m *Manager) lookup(weaponID, hook string) (*lua.LState, lua.LValue) {
	for _, key := range []string{weaponID, globalKey} {
		L := m.states[key]
		if L == nil {
			continue
		}
		if fn := L.GetGlobal(hook); fn.Type() == lua.LTFunction {
			return L, fn
		}
	}
	return nil, lua.LNil
}

// CallHook calls the named Lua global function for weaponID, falling back to
// the global scripts. Returns LNil when the hook is not defined. Lua runtime
// errors, including an exhausted instruction budget, are logged at Warn and
// never propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(weaponID, hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()

	L, fn := m.lookup(weaponID, hook)
	if L == nil {
		return lua.LNil
	}

	err := Bounded(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("weapon", weaponID),
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret
}

// Close releases every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, L := range m.states {
		L.Close()
	}
	m.states = make(map[string]*lua.LState)
}
