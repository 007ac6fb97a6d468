package manifest

// ChangeSet partitions a target file set against the manifest snapshot
// (spec §4.4 step 2): {unchanged, changed, added} from F, plus {deleted}
// for paths present in the manifest but absent from F.
type ChangeSet struct {
	Unchanged []string
	Changed   []string
	Added     []string
	Deleted   []string
}

// FileInput is one file's current-disk state used to classify it.
type FileInput struct {
	Path        string
	ContentHash string
}

// Reconcile classifies every file in `current` against `snapshot`, the
// manifest state loaded at the start of the reindex transaction.
func Reconcile(snapshot map[string]FileEntry, current []FileInput) ChangeSet {
	var cs ChangeSet
	seen := make(map[string]bool, len(current))

	for _, f := range current {
		seen[f.Path] = true
		entry, existed := snapshot[f.Path]
		switch {
		case !existed:
			cs.Added = append(cs.Added, f.Path)
		case entry.ContentHash != f.ContentHash:
			cs.Changed = append(cs.Changed, f.Path)
		default:
			cs.Unchanged = append(cs.Unchanged, f.Path)
		}
	}

	for path := range snapshot {
		if !seen[path] {
			cs.Deleted = append(cs.Deleted, path)
		}
	}

	return cs
}

// ChangedOrAdded returns the union of Changed and Added, the set of paths
// that need re-chunking and re-embedding this transaction.
func (cs ChangeSet) ChangedOrAdded() []string {
	out := make([]string, 0, len(cs.Changed)+len(cs.Added))
	out = append(out, cs.Changed...)
	out = append(out, cs.Added...)
	return out
}
