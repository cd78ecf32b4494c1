package job

import (
	"net/url"
	"strings"
)

// Listing is one normalized search result. It is produced per search and never persisted.
type Listing struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// Query is a trimmed (profession, location) pair.
type Query struct {
	Profession string
	Location   string
}

func NewQuery(profession, location string) Query {
	return Query{
		Profession: strings.TrimSpace(profession),
		Location:   strings.TrimSpace(location),
	}
}

func (q Query) Valid() bool {
	return q.Profession != "" && q.Location != ""
}

// IsAbsoluteHTTPURL reports whether raw is an http or https URL with a host.
func IsAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
