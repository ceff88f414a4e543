package debugger

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/m68kdbg/internal/m68k"
)

// ScriptEngine evaluates breakpoint condition scripts and named macros
// written in Lua, generalizing debug_monitor.go's fixed macros map into an
// embeddable scripting language: a condition script returns true or false
// to gate a breakpoint the same way a Condition does, but can express
// comparisons across several registers or memory locations at once.
type ScriptEngine struct {
	macros map[string]string
}

func NewScriptEngine() *ScriptEngine {
	return &ScriptEngine{macros: make(map[string]string)}
}

// DefineMacro stores a named Lua snippet for later invocation by RunMacro.
func (s *ScriptEngine) DefineMacro(name, body string) {
	s.macros[name] = body
}

// EvalCondition runs a Lua expression with the target's registers exposed
// as globals (D0-D7, A0-A6, PC, SR, USP) plus a peek(addr, size) helper,
// and reports whether the expression evaluated truthy.
func (s *ScriptEngine) EvalCondition(script string, ctx TaskContext, cpu *m68k.CPU) (bool, error) {
	L := lua.NewState()
	defer L.Close()
	installRegisterGlobals(L, ctx)
	L.SetGlobal("peek", L.NewFunction(func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		size := L.OptInt(2, 1)
		var v uint32
		switch size {
		case 2:
			v = uint32(cpu.Read16(addr))
		case 4:
			v = cpu.Read32(addr)
		default:
			v = uint32(cpu.Read8(addr))
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	if err := L.DoString("return " + script); err != nil {
		return false, fmt.Errorf("debugger: condition script: %w", err)
	}
	return lua.LVAsBool(L.Get(-1)), nil
}

// RunMacro executes a previously defined macro for its side effects
// (logging, recording a trace line); no return value is expected.
func (s *ScriptEngine) RunMacro(name string, ctx TaskContext) error {
	body, ok := s.macros[name]
	if !ok {
		return fmt.Errorf("debugger: macro %q not defined", name)
	}
	L := lua.NewState()
	defer L.Close()
	installRegisterGlobals(L, ctx)
	return L.DoString(body)
}

func installRegisterGlobals(L *lua.LState, ctx TaskContext) {
	for i := range ctx.D {
		L.SetGlobal(fmt.Sprintf("D%d", i), lua.LNumber(ctx.D[i]))
	}
	for i := range ctx.A {
		L.SetGlobal(fmt.Sprintf("A%d", i), lua.LNumber(ctx.A[i]))
	}
	L.SetGlobal("PC", lua.LNumber(ctx.PC))
	L.SetGlobal("SR", lua.LNumber(ctx.SR))
	L.SetGlobal("USP", lua.LNumber(ctx.USP))
}
