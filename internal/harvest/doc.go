// Package harvest implements the concurrent statistics-harvesting pipeline:
// the rate-limit-aware fetcher, the listing and detail-page parsers, the
// total field normalizers, the bounded worker pool, and the coordinator that
// sequences each dataset's Enumerate, Dispatch, Collect, Filter, and Persist
// phases.
package harvest
