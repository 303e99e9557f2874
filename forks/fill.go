package forks

// Fill infers omitted optional fields from sibling data.
// The upstream branch defaults to the target branch, and
// a change title defaults to its branch. Fill never
// fails and applying it twice changes nothing.
func (f *Fork) Fill() {
	// Both branches unset means "track the default
	// branch" and is left alone.
	if f.Upstream.Branch == "" && f.Target.Branch != "" {
		f.Upstream.Branch = f.Target.Branch
	}

	for _, ref := range f.Changes {
		if ref.IsResolved() && ref.Change.Title == "" {
			ref.Change.Title = ref.Change.Branch
		}
	}
}
