package domain

// CollectionReport summarizes one collector pass over the pool.
type CollectionReport struct {
	// Scanned is the number of pool entries examined.
	Scanned int

	// Referenced is the number of entries kept because a channel link
	// resolved to them (at first scan or at re-verification).
	Referenced int

	// Quarantined is the number of unreferenced entries kept because they
	// were published too recently to collect safely.
	Quarantined int

	// Reclaimed is the number of entries deleted.
	Reclaimed int

	// Failures holds per-entry deletion errors. They do not abort the
	// rest of the pass.
	Failures []CollectionFailure
}

// CollectionFailure records a pool entry the collector tried and failed
// to delete.
type CollectionFailure struct {
	Fingerprint Fingerprint
	Err         error
}
