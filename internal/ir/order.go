package ir

import (
	"github.com/oleiade/lane"
)

type dfsFrame struct {
	block BlockID
	next  int
}

// Postorder returns the blocks reachable from the entry in depth-first
// postorder: every block appears after all of its successors except those
// reached through a back edge.
//
// The walk is iterative so deep CFGs cannot overflow the goroutine stack.
// Successors are explored in the order they are listed.
func (f *Func) Postorder() []BlockID {
	entry := f.Block(f.entry)
	if entry == nil || entry.removed {
		return nil
	}

	st := lane.NewStack()
	vis := map[BlockID]bool{entry.ID: true}
	ret := make([]BlockID, 0, len(f.layout))

	for st.Push(&dfsFrame{block: entry.ID}); !st.Empty(); {
		top := st.Head().(*dfsFrame)
		succs := f.blocks[top.block].Succs

		// descend into the next unvisited successor
		pushed := false
		for top.next < len(succs) {
			s := succs[top.next]
			top.next++
			if b := f.Block(s); b == nil || b.removed {
				continue
			}
			if !vis[s] {
				vis[s] = true
				st.Push(&dfsFrame{block: s})
				pushed = true
				break
			}
		}

		// all successors done, emit the block
		if !pushed {
			st.Pop()
			ret = append(ret, top.block)
		}
	}
	return ret
}

// ReversePostorder returns Postorder reversed.
func (f *Func) ReversePostorder() []BlockID {
	po := f.Postorder()
	for i, j := 0, len(po)-1; i < j; i, j = i+1, j-1 {
		po[i], po[j] = po[j], po[i]
	}
	return po
}

// Layout returns the live blocks in layout order.
func (f *Func) Layout() []BlockID {
	ret := make([]BlockID, len(f.layout))
	copy(ret, f.layout)
	return ret
}
