package codegen

import "github.com/wasmjit-go/wazm/internal/ir"

// LandingPadLowering implements ExceptionLowering on the landing-pad
// model used by __gxx_personality_v0: a single landingpad instruction
// receives the in-flight exception, and the handler chain is an
// ordinary sequence of type-match branches ending in either a matched
// clause or a resume of the unwind.
type LandingPadLowering struct{}

type landingpadClause struct {
	tagIndex uint32
	catchAll bool
	bb       *ir.BasicBlock
}

type landingpadState struct {
	unwind  *ir.BasicBlock
	clauses []landingpadClause
	exn     *ir.Value
}

func (s *landingpadState) UnwindBlock() *ir.BasicBlock { return s.unwind }

// Try materializes the landingpad eagerly: every catch clause's body,
// emitted before this try's EndTry runs, needs st.exn to read the
// caught payload. Only the clause dispatch chain is deferred to
// EndTry, once every clause is known.
func (LandingPadLowering) Try(t *translator) TryHandle {
	unwind := t.fn.AllocateBasicBlock()
	saved := t.b.InsertionBlock()

	t.fn.Append(unwind)
	t.b.SetInsertionPoint(unwind)
	exn := t.b.LandingPad(t.module.personalityTypeInfo(), ir.TypeI64)

	t.b.SetInsertionPoint(saved)
	return &landingpadState{unwind: unwind, exn: exn}
}

func (LandingPadLowering) Catch(t *translator, h TryHandle, tagIndex uint32, tagTypes []ir.Type) (*ir.BasicBlock, []*ir.Value) {
	st := h.(*landingpadState)
	clauseBB := t.fn.AllocateBasicBlock()
	st.clauses = append(st.clauses, landingpadClause{tagIndex: tagIndex, bb: clauseBB})

	t.fn.Append(clauseBB)
	t.b.SetInsertionPoint(clauseBB)
	t.b.CallIntrinsic("rt.itanium.begin_catch", []*ir.Value{st.exn}, nil)

	bound := make([]*ir.Value, len(tagTypes))
	for i, ty := range tagTypes {
		bound[i] = t.b.CallIntrinsic("rt.itanium.catch_value", []*ir.Value{
			st.exn,
			t.b.Iconst32(int32(i)),
		}, []ir.Type{ty})[0]
	}
	return clauseBB, bound
}

func (LandingPadLowering) CatchAll(t *translator, h TryHandle) *ir.BasicBlock {
	st := h.(*landingpadState)
	clauseBB := t.fn.AllocateBasicBlock()
	st.clauses = append(st.clauses, landingpadClause{catchAll: true, bb: clauseBB})

	t.fn.Append(clauseBB)
	t.b.SetInsertionPoint(clauseBB)
	t.b.CallIntrinsic("rt.itanium.begin_catch", []*ir.Value{st.exn}, nil)
	return clauseBB
}

func (LandingPadLowering) Throw(t *translator, tagIndex uint32, args []*ir.Value) {
	throwArgs := append([]*ir.Value{t.b.Iconst32(int32(tagIndex))}, args...)
	t.b.CallIntrinsic("rt.itanium.throw", throwArgs, nil)
	t.emitTrap(TrapUncaughtException)
}

func (LandingPadLowering) Rethrow(t *translator, h TryHandle) {
	st := h.(*landingpadState)
	t.b.CallIntrinsic("rt.itanium.end_catch", nil, nil)
	t.b.Resume(st.exn)
}

// EndTry appends to the landingpad block that Try already emitted and
// chains a type-match branch per clause. catch_all, if present, terminates the chain
// unconditionally in place of the trailing resume.
func (LandingPadLowering) EndTry(t *translator, h TryHandle) {
	st := h.(*landingpadState)

	t.b.SetInsertionPoint(st.unwind)

	for _, c := range st.clauses {
		if c.catchAll {
			t.b.Jump(c.bb, nil)
			return
		}
		matched := t.b.CallIntrinsic("rt.itanium.matches", []*ir.Value{
			st.exn,
			t.b.Iconst32(int32(c.tagIndex)),
		}, []ir.Type{ir.TypeI1})[0]

		next := t.fn.AllocateBasicBlock()
		t.b.Branch(matched, c.bb, next, nil)
		t.fn.Append(next)
		t.b.SetInsertionPoint(next)
	}
	t.b.Resume(st.exn)
}

func (LandingPadLowering) EndCatch(t *translator, h TryHandle) {
	t.b.CallIntrinsic("rt.itanium.end_catch", nil, nil)
}
