package compile

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/wasmjit-go/wazm/compiler/codegen"
	"github.com/wasmjit-go/wazm/compiler/source/golang"
	"github.com/wasmjit-go/wazm/internal/ir"
	"github.com/wasmjit-go/wazm/load"
	"github.com/wasmjit-go/wazm/wasm"
)

// Command implements `warp compile`: decode a module and translate it.
// The default target, "ir", runs the module emitter (compiler/codegen)
// and prints the resulting backend IR — native code emission is out of
// scope (see SPEC_FULL.md §1 Non-goals), so this prints IR rather than a
// binary or executable artifact. The "go" target keeps the teacher's
// original whole-program Go-source backend (compiler/source/golang)
// reachable as an alternate, independent compilation strategy rather
// than retiring it once the default target changed.
func Command() *cobra.Command {
	var outputPath string
	var itanium bool
	var target string
	var packageName string
	var isCommand bool
	var format bool
	var useRawPointers bool
	var noInternalThreads bool

	command := &cobra.Command{
		Use:   "compile [path to module]",
		Short: "Translate a WebAssembly module to backend IR or Go source",
		Long:  "Translate a WebAssembly module's functions into the backend IR (default) or Go source (--target go)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}

			mod, err := load.LoadFile(args[0])
			if err != nil {
				return err
			}

			switch target {
			case "", "ir":
				return compileIR(mod, outputPath, itanium)
			case "go":
				return compileGo(mod, args[0], outputPath, packageName, isCommand, format, useRawPointers, noInternalThreads)
			default:
				return errors.New("unknown --target: expected 'ir' or 'go'")
			}
		},
	}

	command.PersistentFlags().StringVarP(&outputPath, "out", "o", "", "the path for the output file. Defaults to stdout for --target ir, or the input name + .go for --target go")
	command.PersistentFlags().StringVar(&target, "target", "ir", "the compilation target: 'ir' (backend IR) or 'go' (Go source)")
	command.PersistentFlags().BoolVar(&itanium, "itanium", false, "--target ir: true to target the landing-pad (Itanium) exception ABI instead of the funclet (SEH) ABI")
	command.PersistentFlags().StringVar(&packageName, "pkg", "", "--target go: the name of the generated package")
	command.PersistentFlags().BoolVarP(&isCommand, "cmd", "c", true, "--target go: true to automatically detect WASI commands")
	command.PersistentFlags().BoolVarP(&format, "format", "f", false, "--target go: true to gofmt the generated source code")
	command.PersistentFlags().BoolVar(&useRawPointers, "raw-pointers", false, "--target go: true to compile loads and stores to raw pointer accesses")
	command.PersistentFlags().BoolVar(&noInternalThreads, "no-internal-threads", false, "--target go: true to elide stack depth tracking in generated code")

	return command
}

func compileIR(mod *wasm.Module, outputPath string, itanium bool) error {
	personality := codegen.PersonalitySEH
	if itanium {
		personality = codegen.PersonalityItanium
	}

	emitter := codegen.NewModuleEmitter(mod, personality)
	out, err := emitter.Compile()
	if err != nil {
		return err
	}

	var dest io.Writer
	switch outputPath {
	case "", "-":
		dest = os.Stdout
	default:
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dest = f
	}

	w := bufio.NewWriter(dest)
	defer w.Flush()

	return ir.Fprint(w, out)
}

func compileGo(mod *wasm.Module, inputPath, outputPath, packageName string, isCommand, format, useRawPointers, noInternalThreads bool) error {
	if isCommand != (packageName == "") {
		return errors.New("exactly one of --pkg and --cmd must be specified")
	}

	baseName := filepath.Base(inputPath)
	baseName = baseName[:len(baseName)-len(filepath.Ext(baseName))]

	var dest io.Writer
	switch outputPath {
	case "":
		f, err := os.Create(baseName + ".go")
		if err != nil {
			return err
		}
		defer f.Close()
		dest = f
	case "-":
		dest = os.Stdout
	default:
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		dest = f
	}

	w := bufio.NewWriter(dest)
	defer w.Flush()
	dest = w

	if format {
		dest = golang.Format(dest)
	}

	modName := ""
	if names, err := mod.Names(); err == nil {
		for _, entry := range names.Entries {
			if m, ok := entry.(*wasm.ModuleNameSubsection); ok {
				modName = m.Name
			}
		}
	}
	if modName == "" {
		modName = baseName
	}

	options := golang.Options{
		UseRawPointers:    useRawPointers,
		NoInternalThreads: noInternalThreads,
	}
	if !isCommand {
		return golang.CompileModule(dest, packageName, modName, mod, &options)
	}
	return golang.CompileCommand(dest, modName, mod, &options)
}
