package migrate

// Result counts what a run (or a page of it) did.  Processed includes skipped items; Updated only
// those whose field was rewritten and written back.
type Result struct {
	Processed int
	Updated   int
}

func (r Result) Add(other Result) Result {
	return Result{
		Processed: r.Processed + other.Processed,
		Updated:   r.Updated + other.Updated,
	}
}
