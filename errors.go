package megahash

// errorType is a lightweight string-based error, mirroring the pattern
// store/types/errors.go uses for its sentinel errors: cheap to compare,
// cheap to construct, no allocation beyond the string itself.
type errorType string

func (e errorType) Error() string {
	return string(e)
}

// ErrAllocation wraps the error Store reports when the packed record could
// not be built — currently only when a key or value exceeds the 16-bit /
// 32-bit length-prefix limits. Store is atomic: on this error the table is
// exactly as it was before the call. Response.Result surfaces this case as
// ResultError; callers needing the underlying cause use StoreErr instead.
const ErrAllocation = errorType("megahash: allocation or structural failure")
