package db

// ListQuery is the input for an ordered FT.SEARCH listing.
type ListQuery struct {
	Index        string
	Query        string
	SortBy       string // empty disables SORTBY
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
