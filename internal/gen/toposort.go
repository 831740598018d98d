package gen

import (
	"errors"
	"fmt"
	"sort"
)

// ExecutionOrder returns node ids in an order that respects every edge.
//
// When several nodes are ready, the one listed first wins, so the result is
// deterministic. Edges to unknown ids and cycles are errors.
func ExecutionOrder(nodes []Node) ([]string, error) {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := index[n.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", n.ID)
		}

		index[n.ID] = i
	}

	indeg := make([]int, len(nodes))
	succ := make([][]int, len(nodes))

	for i, n := range nodes {
		for _, next := range n.NextTasks {
			j, ok := index[next.ID]
			if !ok {
				return nil, fmt.Errorf("node %q points to unknown node %q", n.ID, next.ID)
			}

			indeg[j]++
			succ[i] = append(succ[i], j)
		}
	}

	var ready []int

	for i := range nodes {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]string, 0, len(nodes))

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, nodes[i].ID)

		for _, j := range succ[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != len(nodes) {
		return nil, errors.New("task graph has a cycle")
	}

	return order, nil
}
