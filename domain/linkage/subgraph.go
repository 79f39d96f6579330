package linkage

import (
	"fmt"

	apperrors "riskreport-backend/pkg/errors"
)

// GraphSize summarizes the size of the full graph a subgraph was cut from.
type GraphSize struct {
	Nodes int `json:"nodes"`
	Links int `json:"links"`
}

// SubgraphResult is the bounded neighborhood around a center node: every
// node reachable within the hop bound, and every link with both endpoints in
// that set. Node order is first-visited (center first, then BFS discovery
// order); link order is acceptance order. Both are deterministic for
// identical inputs.
type SubgraphResult struct {
	Nodes             []Node    `json:"nodes"`
	Links             []Link    `json:"links"`
	CenterNode        string    `json:"center_node"`
	Degree            int       `json:"degree"`
	TotalNodes        int       `json:"total_nodes"`
	TotalLinks        int       `json:"total_links"`
	OriginalGraphSize GraphSize `json:"original_graph_size"`
}

// adjEntry records one traversable direction of a link.
type adjEntry struct {
	neighbor string
	link     int // index into the full link list
}

// ExtractSubgraph derives the induced subgraph of radius degree around
// centerID. Traversal is undirected regardless of the semantic direction a
// link carries. A degree below 1 is clamped to 1. The inputs are never
// mutated; the result references the caller's node and link values.
//
// Fails with an invalid-graph error when either input list is empty, and
// with a not-found error when centerID matches no node.
func ExtractSubgraph(nodes []Node, links []Link, centerID string, degree int) (*SubgraphResult, error) {
	if len(nodes) == 0 || len(links) == 0 {
		return nil, apperrors.NewInvalidGraphError("linkage graph has no nodes or no links")
	}

	if degree < 1 {
		degree = 1
	}

	// id -> node index, built once so neighbor resolution never rescans the
	// node list
	nodeByID := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, dup := nodeByID[n.ID]; !dup {
			nodeByID[n.ID] = i
		}
	}

	if _, ok := nodeByID[centerID]; !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("center node %q", centerID))
	}

	// Register both directions for every link so traversal is undirected.
	adjacency := make(map[string][]adjEntry, len(nodes))
	for i, l := range links {
		if l.Source == "" || l.Target == "" {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("link %d is missing a source or target identifier", i))
		}
		adjacency[l.Source] = append(adjacency[l.Source], adjEntry{neighbor: l.Target, link: i})
		adjacency[l.Target] = append(adjacency[l.Target], adjEntry{neighbor: l.Source, link: i})
	}

	type queueItem struct {
		id    string
		depth int
	}

	visited := map[string]bool{centerID: true}
	order := []string{centerID}

	linkTaken := make(map[int]bool)            // link index already accepted
	seenFingerprint := make(map[string]bool)   // exact-duplicate suppression
	var accepted []int

	// accept pulls in every incident link of a freshly visited node whose
	// far endpoint is already in the visited set. Running this at discovery
	// time gives the progressive acceptance rule: a link between two frontier
	// nodes lands when its second endpoint is reached.
	accept := func(id string) {
		for _, e := range adjacency[id] {
			if linkTaken[e.link] || !visited[e.neighbor] {
				continue
			}
			fp := links[e.link].fingerprint()
			linkTaken[e.link] = true
			if seenFingerprint[fp] {
				continue
			}
			seenFingerprint[fp] = true
			accepted = append(accepted, e.link)
		}
	}

	accept(centerID) // self-loops on the center

	queue := []queueItem{{id: centerID, depth: 0}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		// Nodes at the hop bound are kept but not expanded.
		if current.depth == degree {
			continue
		}

		for _, e := range adjacency[current.id] {
			if visited[e.neighbor] {
				continue
			}
			if _, known := nodeByID[e.neighbor]; !known {
				// Link endpoint absent from the node list; nothing to
				// include, skip the dangling reference.
				continue
			}
			visited[e.neighbor] = true
			order = append(order, e.neighbor)
			accept(e.neighbor)
			queue = append(queue, queueItem{id: e.neighbor, depth: current.depth + 1})
		}
	}

	subNodes := make([]Node, 0, len(order))
	for _, id := range order {
		subNodes = append(subNodes, nodes[nodeByID[id]])
	}

	subLinks := make([]Link, 0, len(accepted))
	for _, i := range accepted {
		subLinks = append(subLinks, links[i])
	}

	return &SubgraphResult{
		Nodes:      subNodes,
		Links:      subLinks,
		CenterNode: centerID,
		Degree:     degree,
		TotalNodes: len(subNodes),
		TotalLinks: len(subLinks),
		OriginalGraphSize: GraphSize{
			Nodes: len(nodes),
			Links: len(links),
		},
	}, nil
}

// Extract is a convenience wrapper over ExtractSubgraph for a loaded graph.
func (g *Graph) Extract(centerID string, degree int) (*SubgraphResult, error) {
	return ExtractSubgraph(g.Nodes, g.Links, centerID, degree)
}
