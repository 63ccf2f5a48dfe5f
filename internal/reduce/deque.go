package reduce

import "github.com/jcorbin/filo/internal/item"

// deque holds pending items with the front at the end of the slice, so that
// popping the front and pushing a run back onto it are both cheap.
type deque struct {
	rev []item.Program
}

func newDeque(items []item.Program) *deque {
	var dq deque
	dq.pushFront(items...)
	return &dq
}

func (dq *deque) len() int { return len(dq.rev) }

// at returns the i-th item from the front.
func (dq *deque) at(i int) item.Program { return dq.rev[len(dq.rev)-1-i] }

func (dq *deque) popFront() item.Program {
	i := len(dq.rev) - 1
	it := dq.rev[i]
	dq.rev[i] = item.Program{}
	dq.rev = dq.rev[:i]
	return it
}

// pushFront puts items onto the front, keeping their order.
func (dq *deque) pushFront(items ...item.Program) {
	for i := len(items) - 1; i >= 0; i-- {
		dq.rev = append(dq.rev, items[i])
	}
}

// drop removes n items from the front.
func (dq *deque) drop(n int) {
	end := len(dq.rev) - n
	for i := end; i < len(dq.rev); i++ {
		dq.rev[i] = item.Program{}
	}
	dq.rev = dq.rev[:end]
}

// window is a view of some items, indexed from the front.
type window interface {
	len() int
	at(i int) item.Program
}

type sliceWindow []item.Program

func (sw sliceWindow) len() int              { return len(sw) }
func (sw sliceWindow) at(i int) item.Program { return sw[i] }
