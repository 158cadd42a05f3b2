package models

import "encoding/json"

// Page is the list envelope the backend returns for collection endpoints:
//
//	{"count": N, "next": url|null, "previous": url|null, "results": [...]}
//
// A few endpoints return a bare JSON array instead; Page decodes both, the
// same normalization the web client applies.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (p *Page[T]) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var results []T
		if err := json.Unmarshal(data, &results); err != nil {
			return err
		}
		p.Count = len(results)
		p.Next = nil
		p.Previous = nil
		p.Results = results
		return nil
	}
	type envelope Page[T]
	var e envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return err
	}
	*p = Page[T](e)
	return nil
}

// HasNext reports whether the server advertises a further page.
func (p *Page[T]) HasNext() bool {
	return p.Next != nil && *p.Next != ""
}
