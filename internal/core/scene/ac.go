package scene

// automaton is a byte level Aho-Corasick matcher over the lowercased keyword lists
// A fixed 256-way transition table per node keeps the scan free of map lookups

type node struct {
	// next[b] is the child state, -1 when absent
	next [256]int32
	fail int32
	out  []int // term ids ending here, including those reached through fail links
}

type automaton struct {
	nodes []node
}

func newNode() node {
	var n node
	for i := range n.next {
		n.next[i] = -1
	}
	return n
}

func newAutomaton() *automaton {
	return &automaton{nodes: []node{newNode()}}
}

// add inserts term under id; empty terms are ignored
func (a *automaton) add(term string, id int) {
	if term == "" {
		return
	}
	state := int32(0)
	for i := 0; i < len(term); i++ {
		b := term[i]
		nxt := a.nodes[state].next[b]
		if nxt == -1 {
			nxt = int32(len(a.nodes))
			a.nodes[state].next[b] = nxt
			a.nodes = append(a.nodes, newNode())
		}
		state = nxt
	}
	a.nodes[state].out = append(a.nodes[state].out, id)
}

// build computes fail links breadth first and merges outputs along them
func (a *automaton) build() {
	q := make([]int32, 0, len(a.nodes))
	for b := range 256 {
		if s := a.nodes[0].next[b]; s != -1 {
			a.nodes[s].fail = 0
			q = append(q, s)
		}
	}

	for qi := 0; qi < len(q); qi++ {
		r := q[qi]
		for b := range 256 {
			s := a.nodes[r].next[b]
			if s == -1 {
				continue
			}
			q = append(q, s)

			f := a.nodes[r].fail
			for f != 0 && a.nodes[f].next[b] == -1 {
				f = a.nodes[f].fail
			}
			if nxt := a.nodes[f].next[b]; nxt != -1 {
				a.nodes[s].fail = nxt
			} else {
				a.nodes[s].fail = 0
			}
			a.nodes[s].out = append(a.nodes[s].out, a.nodes[a.nodes[s].fail].out...)
		}
	}
}

// scan marks hit[id] for every term occurring anywhere in text
func (a *automaton) scan(text string, hit []bool) {
	state := int32(0)
	for i := 0; i < len(text); i++ {
		b := text[i]
		for state != 0 && a.nodes[state].next[b] == -1 {
			state = a.nodes[state].fail
		}
		if nxt := a.nodes[state].next[b]; nxt != -1 {
			state = nxt
		}
		for _, id := range a.nodes[state].out {
			hit[id] = true
		}
	}
}
