// Package pagination implements page-number pagination with the
// {count, next, previous, results} envelope.
package pagination

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

const pageParam = "page"

// InvalidPageMessage is the client-facing text for ErrInvalidPage.
const InvalidPageMessage = "Invalid page."

// ErrInvalidPage is returned for a page number that is malformed or past the last page.
var ErrInvalidPage = errors.New("invalid page")

type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Request is a validated page number with its page size.
type Request struct {
	Number int
	Size   int
}

// ParseRequest reads the page query parameter; an absent value means page 1.
func ParseRequest(raw string, size int) (Request, error) {
	if raw == "" {
		return Request{Number: 1, Size: size}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return Request{}, ErrInvalidPage
	}
	return Request{Number: n, Size: size}, nil
}

func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

func (r Request) Limit() int {
	return r.Size
}

// PageCount is the number of pages for count rows; an empty result still has one page.
func PageCount(count int64, size int) int {
	if count == 0 || size <= 0 {
		return 1
	}
	return int((count + int64(size) - 1) / int64(size))
}

// Validate rejects a page number past the last page.
func (r Request) Validate(count int64) error {
	if r.Number > PageCount(count, r.Size) {
		return ErrInvalidPage
	}
	return nil
}

// New builds the envelope for results, linking neighbouring pages with absolute URLs derived from req.
func New[T any](req *http.Request, pr Request, count int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: count, Results: results}

	if pr.Number < PageCount(count, pr.Size) {
		next := pageURL(req, pr.Number+1)
		page.Next = &next
	}
	if pr.Number > 1 {
		previous := pageURL(req, pr.Number-1)
		page.Previous = &previous
	}
	return page
}

// pageURL rewrites the page parameter of the request URL; page 1 drops it.
func pageURL(req *http.Request, number int) string {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if forwarded := req.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}

	query := req.URL.Query()
	if number == 1 {
		query.Del(pageParam)
	} else {
		query.Set(pageParam, strconv.Itoa(number))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     req.Host,
		Path:     req.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}
