package trigger

import "github.com/milk9111/loopdeloop/terrain"

// Contact is one actor's latest touch on a trigger.
type Contact struct {
	Actor terrain.Source
	Hit   terrain.Hit

	entered bool
}

// registry double-buffers contacts: committed holds actors known at the end
// of the last update, pending collects the actors notified this tick.
type registry struct {
	committed []Contact
	pending   []Contact
}

func indexOf(list []Contact, actor terrain.Source) int {
	for i := range list {
		if list[i].Actor == actor {
			return i
		}
	}
	return -1
}

// notify records actor for this tick and reports whether it is new.
func (r *registry) notify(actor terrain.Source, hit terrain.Hit) bool {
	if indexOf(r.pending, actor) >= 0 {
		return false
	}
	if indexOf(r.committed, actor) >= 0 {
		r.pending = append(r.pending, Contact{Actor: actor, Hit: hit})
		return false
	}
	c := Contact{Actor: actor, Hit: hit, entered: true}
	r.committed = append(r.committed, c)
	r.pending = append(r.pending, c)
	return true
}

func (r *registry) empty() bool {
	return len(r.committed) == 0 && len(r.pending) == 0
}

func (r *registry) contains(actor terrain.Source) bool {
	return indexOf(r.committed, actor) >= 0
}

// update fires exit for committed actors that were not notified this tick
// and stay for the rest, skipping actors that entered this tick. Pending
// then becomes committed.
func (r *registry) update(stay, exit func(Contact)) {
	if r.empty() {
		return
	}
	for _, c := range r.committed {
		i := indexOf(r.pending, c.Actor)
		if i < 0 {
			exit(c)
			continue
		}
		if !r.pending[i].entered {
			stay(r.pending[i])
		}
	}

	old := r.committed
	r.committed = r.pending
	for i := range r.committed {
		r.committed[i].entered = false
	}
	clear(old)
	r.pending = old[:0]
}

func (r *registry) actors() []terrain.Source {
	out := make([]terrain.Source, 0, len(r.committed))
	for _, c := range r.committed {
		out = append(out, c.Actor)
	}
	return out
}
