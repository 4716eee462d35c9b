package domain

// Link relation types found in STAC link arrays.
const (
	RelChild  = "child"
	RelItem   = "item"
	RelParent = "parent"
	RelRoot   = "root"
	RelSelf   = "self"
)

// LinkRef is a traversal link extracted from a catalog or collection.
// Target is already resolved against the owning document's location,
// so it can be fetched directly. A LinkRef is consumed once by the
// crawl orchestrator and then discarded.
type LinkRef struct {
	// Rel is the link relation type (child, item, parent, ...).
	Rel string

	// Target is the absolute location of the linked document.
	Target string
}

// Traversable reports whether the link should be followed during a crawl.
// Only child and item links expand the tree; parent/root/self links
// point back up and would only create cycles.
func (l LinkRef) Traversable() bool {
	return l.Rel == RelChild || l.Rel == RelItem
}
