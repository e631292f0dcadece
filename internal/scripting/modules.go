package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerModules installs the engine table into L:
//
//	engine.log.debug(msg) / info(msg) / warn(msg)
//	engine.scope         "__global__" or the weapon ID the VM belongs to
func (m *Manager) registerModules(L *lua.LState, key string) {
	logger := m.logger.With(zap.String("script_scope", key))

	log := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": logger.Debug,
		"info":  logger.Info,
		"warn":  logger.Warn,
	} {
		fn := fn
		L.SetField(log, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1))
			return 0
		}))
	}

	engine := L.NewTable()
	L.SetField(engine, "log", log)
	L.SetField(engine, "scope", lua.LString(key))
	L.SetGlobal("engine", engine)
}
