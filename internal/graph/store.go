package graph

import (
	"fmt"
	"sync"

	"github.com/govlayer/backend/internal/domain"
)

// Context is the governance neighborhood of one decision, partitioned by
// node type.
type Context struct {
	Decision  *domain.Node  `json:"decision"`
	Actors    []domain.Node `json:"actors"`
	Policies  []domain.Node `json:"policies"`
	Risks     []domain.Node `json:"risks"`
	Resources []domain.Node `json:"resources"`
	Edges     []domain.Edge `json:"edges"`
	Depth     int           `json:"traversal_depth"`
}

// Stats summarizes store contents for health reporting.
type Stats struct {
	Tenants int            `json:"tenants"`
	Nodes   int            `json:"nodes"`
	Edges   int            `json:"edges"`
	ByType  map[string]int `json:"nodes_by_type"`
}

type tenantGraph struct {
	nodes map[string]domain.Node
	edges []domain.Edge
}

// Store is the in-memory labeled-property graph, one partition per
// tenant. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]*tenantGraph
}

func NewStore() *Store {
	return &Store{tenants: make(map[string]*tenantGraph)}
}

func (s *Store) tenant(id string) *tenantGraph {
	tg, ok := s.tenants[id]
	if !ok {
		tg = &tenantGraph{nodes: make(map[string]domain.Node)}
		s.tenants[id] = tg
	}
	return tg
}

// AddNode inserts a node; duplicate ids are an error.
func (s *Store) AddNode(tenantID string, n domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenant(tenantID).addNode(n)
}

// AddEdge inserts an edge; both endpoints must exist.
func (s *Store) AddEdge(tenantID string, e domain.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tenant(tenantID).addEdge(e)
}

func (tg *tenantGraph) addNode(n domain.Node) error {
	if _, dup := tg.nodes[n.ID]; dup {
		return fmt.Errorf("node %s already exists", n.ID)
	}
	tg.nodes[n.ID] = n
	return nil
}

func (tg *tenantGraph) addEdge(e domain.Edge) error {
	if _, ok := tg.nodes[e.From]; !ok {
		return fmt.Errorf("source node %s does not exist", e.From)
	}
	if _, ok := tg.nodes[e.To]; !ok {
		return fmt.Errorf("target node %s does not exist", e.To)
	}
	tg.edges = append(tg.edges, e)
	return nil
}

// GetNode looks a node up by id.
func (s *Store) GetNode(tenantID, nodeID string) (domain.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tg, ok := s.tenants[tenantID]
	if !ok {
		return domain.Node{}, false
	}
	n, ok := tg.nodes[nodeID]
	return n, ok
}

// GetContext runs a bounded bidirectional BFS from the decision's Action
// node and partitions the reached nodes by type.
func (s *Store) GetContext(tenantID, decisionID string, depth int) Context {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := Context{Depth: depth}
	tg, ok := s.tenants[tenantID]
	if !ok {
		return ctx
	}
	root, ok := tg.nodes[decisionID]
	if !ok {
		return ctx
	}
	ctx.Decision = &root

	visited := map[string]bool{}
	frontier := map[string]bool{decisionID: true}

	for level := 0; level < depth; level++ {
		next := map[string]bool{}
		for nodeID := range frontier {
			visited[nodeID] = true
			for _, e := range tg.edges {
				if e.From == nodeID && !visited[e.To] {
					next[e.To] = true
					ctx.Edges = append(ctx.Edges, e)
				}
				if e.To == nodeID && !visited[e.From] {
					next[e.From] = true
					ctx.Edges = append(ctx.Edges, e)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	for id := range frontier {
		visited[id] = true
	}

	for id := range visited {
		n := tg.nodes[id]
		switch n.Type {
		case domain.NodeActor:
			ctx.Actors = append(ctx.Actors, n)
		case domain.NodePolicy:
			ctx.Policies = append(ctx.Policies, n)
		case domain.NodeRisk:
			ctx.Risks = append(ctx.Risks, n)
		case domain.NodeResource:
			ctx.Resources = append(ctx.Resources, n)
		}
	}
	return ctx
}

// Stats counts nodes and edges across all tenants.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		Tenants: len(s.tenants),
		ByType:  make(map[string]int),
	}
	for _, tg := range s.tenants {
		st.Nodes += len(tg.nodes)
		st.Edges += len(tg.edges)
		for _, n := range tg.nodes {
			st.ByType[string(n.Type)]++
		}
	}
	return st
}

// Clear drops all graph data. Test helper.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants = make(map[string]*tenantGraph)
}
