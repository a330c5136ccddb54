package codegen

import (
	"fmt"

	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/wasm"
	"github.com/wasmjit-go/wazm/wasm/code"
)

// Personality selects the exception-handling ABI a ModuleEmitter
// targets. The two values name the personality routine the unwinder
// calls, matching the vocabulary used throughout compiler/codegen and
// the runtime package's unwind tables.
type Personality int

const (
	PersonalitySEH Personality = iota
	PersonalityItanium
)

// ModuleEmitter lowers a decoded WebAssembly module into a backend IR
// Module: one ir.Function per function definition, sharing the
// module's declared personality and calling convention.
type ModuleEmitter struct {
	personality Personality
	scope       *code.StaticScope
	wmod        *wasm.Module
	out         *ir.Module
	funcs       []*ir.Function // indexed by global function index; imports are host-convention declarations without a body
}

func NewModuleEmitter(m *wasm.Module, personality Personality) *ModuleEmitter {
	irPersonality := ir.PersonalitySEH
	if personality == PersonalityItanium {
		irPersonality = ir.PersonalityItanium
	}
	return &ModuleEmitter{
		personality: personality,
		scope:       code.NewStaticScope(m),
		wmod:        m,
		out:         ir.NewModule(moduleName(m), irPersonality),
	}
}

func moduleName(m *wasm.Module) string {
	if names, err := m.Names(); err == nil {
		for _, sub := range names.Entries {
			if mod, ok := sub.(*wasm.ModuleNameSubsection); ok && mod.Name != "" {
				return mod.Name
			}
		}
	}
	return "module"
}

func functionName(m *wasm.Module, funcidx uint32) (string, bool) {
	names, err := m.Names()
	if err != nil {
		return "", false
	}
	for _, sub := range names.Entries {
		fns, ok := sub.(*wasm.FunctionNamesSubsection)
		if !ok {
			continue
		}
		for _, n := range fns.Names {
			if n.Index == funcidx {
				return n.Name, true
			}
		}
	}
	return "", false
}

func (m *ModuleEmitter) personalityTypeInfo() string {
	if m.personality == PersonalityItanium {
		return "_ZTIPv" // catches any pointer-to-exception-object payload
	}
	return ""
}

func (m *ModuleEmitter) lowering() ExceptionLowering {
	if m.personality == PersonalityItanium {
		return LandingPadLowering{}
	}
	return FuncletLowering{}
}

// Compile lowers every function definition in the module, in order,
// and returns the finished backend IR module.
func (m *ModuleEmitter) Compile() (*ir.Module, error) {
	importedFuncs := len(m.scope.ImportedFunctions)

	// m.funcs is indexed by the global function index space (imports
	// first, then definitions), matching GetFunctionSignature's own
	// indexing, so a call site can look up any callee by its raw
	// funcidx without having to know how many imports precede it.
	m.funcs = make([]*ir.Function, importedFuncs)

	if m.wmod.Import != nil {
		funcidx := uint32(0)
		for _, entry := range m.wmod.Import.Entries {
			imp, ok := entry.Type.(wasm.FuncImport)
			if !ok {
				continue
			}
			sig, ok := m.scope.GetType(imp.Type)
			if !ok {
				return nil, wasm.ValidationError("unknown imported function signature")
			}
			// An import has no body to translate; it is declared as an
			// opaque native address under its own calling convention,
			// per the module calling convention's leading-argument ABI
			// still applying to the wasm-visible part of its signature.
			fn := ir.NewFunction(entry.ModuleName+"."+entry.FieldName, irSignature(sig), nil, ir.CallingConventionHost)
			m.out.DeclareFunction(fn)
			m.funcs[funcidx] = fn
			funcidx++
		}
	}

	if m.wmod.Function != nil {
		for i := range m.wmod.Function.Types {
			funcidx := uint32(importedFuncs + i)
			name := fmt.Sprintf("f%d", funcidx)
			if n, ok := functionName(m.wmod, funcidx); ok {
				name = n
			}
			sig, ok := m.scope.GetFunctionSignature(funcidx)
			if !ok {
				return nil, wasm.ValidationError("unknown function signature")
			}
			fn := ir.NewFunction(name, irSignature(sig), nil, ir.CallingConventionModule)
			m.out.DeclareFunction(fn)
			m.funcs = append(m.funcs, fn)
		}
	}

	if m.wmod.Code != nil {
		for i, body := range m.wmod.Code.Bodies {
			funcidx := uint32(importedFuncs + i)
			sig, ok := m.scope.GetFunctionSignature(funcidx)
			if !ok {
				return nil, wasm.ValidationError("unknown function signature")
			}
			m.scope.SetFunction(sig, body)

			tr := newTranslator(m, m.funcs[funcidx], sig, body, m.scope)
			if err := tr.translate(); err != nil {
				return nil, fmt.Errorf("function %d: %w", funcidx, err)
			}
		}
	}

	m.out.FinalizeDebugInfo()
	return m.out, nil
}
