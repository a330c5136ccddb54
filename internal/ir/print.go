package ir

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes m in a readable textual form, one function per blank-line-
// separated section, each basic block labeled and each instruction shown
// as `%result:type = op "intrinsic" args -> targets` (absent parts
// left out). This has no bearing on translation
// correctness; it exists so cmd/warp's compile subcommand has something
// to print, the same role wasm/trace plays for the bytecode decoder.
func Fprint(w io.Writer, m *Module) error {
	fmt.Fprintf(w, "module %s", m.Name)
	if m.Personality != nil {
		fmt.Fprintf(w, " personality %s", m.Personality.Name)
	}
	fmt.Fprintln(w)

	for _, fn := range m.Functions {
		fmt.Fprintln(w)
		if err := fprintFunction(w, fn); err != nil {
			return err
		}
	}
	return nil
}

func fprintFunction(w io.Writer, fn *Function) error {
	params := make([]string, len(fn.Sig.Params))
	for i, t := range fn.Sig.Params {
		params[i] = t.String()
	}
	results := make([]string, len(fn.Sig.Results))
	for i, t := range fn.Sig.Results {
		results[i] = t.String()
	}
	fmt.Fprintf(w, "func %s(%s) (%s):\n", fn.Name, strings.Join(params, ", "), strings.Join(results, ", "))

	for _, b := range fn.Blocks {
		if err := fprintBlock(w, b); err != nil {
			return err
		}
	}
	return nil
}

func fprintBlock(w io.Writer, b *BasicBlock) error {
	params := make([]string, len(b.Params))
	for i, p := range b.Params {
		params[i] = p.String() + ":" + p.Type().String()
	}
	fmt.Fprintf(w, "  %s(%s):\n", b, strings.Join(params, ", "))

	for _, instr := range b.Instructions {
		fmt.Fprintf(w, "    %s\n", fprintInstruction(instr))
	}
	return nil
}

func fprintInstruction(i *Instruction) string {
	var sb strings.Builder
	if i.Result != nil {
		fmt.Fprintf(&sb, "%s:%s = ", i.Result, i.Result.Type())
	}
	fmt.Fprintf(&sb, "%s", opcodeName(i.Opcode))
	if i.Intrinsic != "" {
		fmt.Fprintf(&sb, " %q", i.Intrinsic)
	}

	args := make([]string, len(i.Args))
	for j, a := range i.Args {
		args[j] = a.String()
	}
	if len(args) > 0 {
		fmt.Fprintf(&sb, " %s", strings.Join(args, ", "))
	}

	for _, t := range i.Targets {
		fmt.Fprintf(&sb, " -> %s", t)
	}
	if i.Default != nil {
		fmt.Fprintf(&sb, " default %s", i.Default)
	}
	return sb.String()
}

func opcodeName(op Opcode) string {
	names := [...]string{
		"iconst", "fconst", "vconst",
		"iadd", "isub", "imul", "udiv", "sdiv", "urem", "srem",
		"band", "bor", "bxor", "shl", "lshr", "ashr",
		"fadd", "fsub", "fmul", "fdiv", "fmin", "fmax", "fcopysign", "fneg", "fabs",
		"icmp", "fcmp",
		"clz", "ctz", "popcnt",
		"ceil", "floor", "trunc", "nearest", "sqrt",
		"iextend", "itrunc", "fp_to_int", "fp_to_int_sat", "int_to_fp", "fpromote", "fdemote", "bitcast",
		"vsplat", "vunop", "vbinop", "vbitselect",
		"local.alloca", "local.load", "local.store",
		"load", "store", "atomic.load", "atomic.store", "atomic.rmw", "atomic.cmpxchg",
		"global.load", "global.store",
		"call", "call_indirect", "invoke",
		"call_intrinsic",
		"select",
		"local.escape",
		"jump", "branch", "switch", "return", "unreachable",
		"catchswitch", "catchret", "landingpad", "resume",
	}
	if int(op) < len(names) {
		return names[op]
	}
	return fmt.Sprintf("op(%d)", op)
}
