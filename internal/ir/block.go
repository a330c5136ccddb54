package ir

import "strconv"

// BasicBlock is a single-entry, single-exit sequence of Instructions
// ending in a terminator. Params double as phi nodes: every predecessor
// edge supplies one incoming value per param via AddIncoming.
type BasicBlock struct {
	id   int
	fn   *Function
	name string

	Params       []*Value
	Instructions []*Instruction

	// incoming[i] holds, for Params[i], one value per predecessor edge
	// recorded so far. preds lists each distinct predecessor block
	// once, by identity, however many edges it contributes.
	incoming [][]*Value
	preds    []*BasicBlock

	sealed bool
}

func (b *BasicBlock) String() string {
	if b.name != "" {
		return b.name
	}
	return "block" + strconv.Itoa(b.id)
}

// AddParam declares a new phi of the given type at the head of the
// block and returns its value handle.
func (b *BasicBlock) AddParam(fn *Function, typ Type) *Value {
	v := fn.newValue(typ, nil)
	b.Params = append(b.Params, v)
	b.incoming = append(b.incoming, nil)
	return v
}

// AddIncoming records the value supplied by one predecessor edge for
// the phi at the given index. Called once per predecessor per phi.
func (b *BasicBlock) AddIncoming(paramIndex int, pred *BasicBlock, val *Value) {
	val = coerceToCanonicalTypeIfVector(b.fn, b.Params[paramIndex].Type(), val)
	b.incoming[paramIndex] = append(b.incoming[paramIndex], val)
	for _, p := range b.preds {
		if p == pred {
			return
		}
	}
	b.preds = append(b.preds, pred)
}

// HasIncoming reports whether the phi at paramIndex has received at
// least one incoming edge.
func (b *BasicBlock) HasIncoming(paramIndex int) bool {
	return len(b.incoming[paramIndex]) > 0
}

// IncomingCount reports how many predecessor edges have fed the phi at
// paramIndex so far, e.g. 2 for an if/else merge or a loop header that
// has seen one back-edge.
func (b *BasicBlock) IncomingCount(paramIndex int) int {
	return len(b.incoming[paramIndex])
}

func (b *BasicBlock) addInstruction(i *Instruction) {
	i.block = b
	b.Instructions = append(b.Instructions, i)
}

// Terminator returns the block's terminating instruction, or nil if the
// block has not yet been closed.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Instructions) == 0 {
		return nil
	}
	last := b.Instructions[len(b.Instructions)-1]
	if !last.Opcode.IsTerminator() {
		return nil
	}
	return last
}
