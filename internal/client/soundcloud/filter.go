package soundcloud

// Filter restricts a track search to all, public, or private tracks.
type Filter uint8

const (
	// FilterAll matches both public and private tracks.
	FilterAll Filter = iota
	// FilterPublic matches only public tracks.
	FilterPublic
	// FilterPrivate matches only private tracks.
	FilterPrivate
)

// Filter tokens as they appear on the wire.
const (
	filterTokenAll     = "all"
	filterTokenPublic  = "public"
	filterTokenPrivate = "private"
)

// ParseFilter parses a lowercase filter token into a Filter.
// An unrecognized token yields an invalid-filter error, never a silent default.
func ParseFilter(token string) (Filter, error) {
	switch token {
	case filterTokenAll:
		return FilterAll, nil
	case filterTokenPublic:
		return FilterPublic, nil
	case filterTokenPrivate:
		return FilterPrivate, nil
	default:
		return FilterAll, invalidFilterError(token)
	}
}

// String renders the filter as its wire token.
func (f Filter) String() string {
	switch f {
	case FilterPublic:
		return filterTokenPublic
	case FilterPrivate:
		return filterTokenPrivate
	case FilterAll:
		return filterTokenAll
	default:
		return ""
	}
}
