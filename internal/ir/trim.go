package ir

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/oleiade/lane"
)

// Reachable returns the set of blocks reachable from the entry block.
func (f *Func) Reachable() mapset.Set[BlockID] {
	vis := mapset.NewThreadUnsafeSet[BlockID]()
	entry := f.Block(f.entry)
	if entry == nil || entry.removed {
		return vis
	}

	q := lane.NewQueue()
	vis.Add(entry.ID)

	for q.Enqueue(entry.ID); !q.Empty(); {
		id := q.Dequeue().(BlockID)
		for _, s := range f.blocks[id].Succs {
			if b := f.Block(s); b == nil || b.removed {
				continue
			}
			if vis.Add(s) {
				q.Enqueue(s)
			}
		}
	}
	return vis
}

// Trim removes every block that cannot be reached from the entry block and
// returns the removed blocks in layout order.
//
// The reachable set is computed in full before the graph is touched. Edges
// from removed blocks are unlinked from their successors, and join points in
// surviving blocks drop the incoming values that flowed along those edges.
func Trim(f *Func) []BlockID {
	reach := f.Reachable()

	// collect first, mutate afterwards
	var dead []BlockID
	for _, id := range f.layout {
		if !reach.Contains(id) {
			dead = append(dead, id)
		}
	}
	if len(dead) == 0 {
		return nil
	}

	gone := mapset.NewThreadUnsafeSet[BlockID](dead...)
	for _, id := range dead {
		f.blocks[id].removed = true
	}

	// unlink the survivors from the removed blocks
	for _, id := range f.layout {
		b := f.blocks[id]
		if b.removed {
			continue
		}
		b.Preds = dropBlocks(b.Preds, gone)
		for _, i := range b.Instrs {
			ins := f.instrs[i]
			if !ins.IsJoin() {
				continue
			}
			kept := ins.Incoming[:0]
			for _, in := range ins.Incoming {
				if !gone.Contains(in.Pred) {
					kept = append(kept, in)
				}
			}
			ins.Incoming = kept
		}
	}

	// removed blocks no longer own any edges
	for _, id := range dead {
		f.blocks[id].Succs = nil
		f.blocks[id].Preds = nil
	}

	f.layout = dropBlocks(f.layout, gone)
	return dead
}

func dropBlocks(list []BlockID, gone mapset.Set[BlockID]) []BlockID {
	ret := list[:0]
	for _, id := range list {
		if !gone.Contains(id) {
			ret = append(ret, id)
		}
	}
	return ret
}
