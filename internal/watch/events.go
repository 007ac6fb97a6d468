package watch

// EventKind distinguishes the four kinds a change event can take (spec
// §4.6): three single-path kinds and one aggregated batch.
type EventKind string

const (
	EventChange EventKind = "change"
	EventAdd    EventKind = "add"
	EventUnlink EventKind = "unlink"
	EventBatch  EventKind = "batch"
)

// FileChangeEvent is a single filesystem notification handed to the change
// handler. For EventBatch, Added/Modified/Deleted carry the aggregated
// paths and Path is empty; for the single-path kinds, Path is set and the
// slices are empty.
type FileChangeEvent struct {
	Kind EventKind
	Path string

	Added    []string
	Modified []string
	Deleted  []string
}

// nonDeletedPaths returns the added and modified paths this event carries.
// Deletions are returned separately by deletedPaths, since unlink semantics
// apply regardless of ignore status.
func (e FileChangeEvent) nonDeletedPaths() []string {
	switch e.Kind {
	case EventChange, EventAdd:
		return []string{e.Path}
	case EventBatch:
		out := make([]string, 0, len(e.Added)+len(e.Modified))
		out = append(out, e.Added...)
		out = append(out, e.Modified...)
		return out
	default:
		return nil
	}
}

func (e FileChangeEvent) deletedPaths() []string {
	switch e.Kind {
	case EventUnlink:
		return []string{e.Path}
	case EventBatch:
		return e.Deleted
	default:
		return nil
	}
}
