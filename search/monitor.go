package search

import "github.com/poiesic/taxonit/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	Classified(query string, queryType QueryType)
	AfterNotationScan(candidates int)
	AfterTitleScan(candidates int)
	AfterWordScan(candidates int)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                   {}
func (n *noopMonitor) Classified(_ string, _ QueryType) {}
func (n *noopMonitor) AfterNotationScan(_ int)          {}
func (n *noopMonitor) AfterTitleScan(_ int)             {}
func (n *noopMonitor) AfterWordScan(_ int)              {}
func (n *noopMonitor) Finish(_ []core.SearchResult)     {}
