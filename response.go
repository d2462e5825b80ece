package megahash

// Result is the outcome code carried by every Response.
type Result uint8

const (
	// ResultError indicates not-found (fetch/remove/nextKey) or an
	// allocation/structural failure (store). Context disambiguates which.
	ResultError Result = iota
	// ResultOK covers both a successful fetch/remove and a brand new
	// store (the latter is also called "add" in prose); the two share a
	// code because the caller already knows which operation it invoked.
	ResultOK
	// ResultReplace indicates a store that replaced an existing key's
	// value rather than adding a new key.
	ResultReplace
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultReplace:
		return "replace"
	default:
		return "error"
	}
}

// Response is the value every Hash operation returns.
//
// Content is a borrowed view: for Fetch it points into the stored value,
// for FirstKey/NextKey it points into the stored key. It is valid only
// until the next mutating call on the Hash that could affect that entry.
// Store and Remove never populate Content.
type Response struct {
	Result  Result
	Flags   byte
	Content []byte
}

// Len returns len(r.Content), for symmetry with the C-level contentLength
// field this type stands in for.
func (r Response) Len() int {
	return len(r.Content)
}
