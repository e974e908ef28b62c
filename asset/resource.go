package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Client used for fetching remote resources.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// The Resource type wraps a streamable local file or a remote http/https
// document. Callers must Close it.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the last element of the resource path.
func (r *Resource) Name() string {
	return path.Base(r.url.Path)
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Read the remaining resource contents.
func (r *Resource) ReadAll() ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("resource: could not read '%s': %w", r.Path(), err)
	}
	return data, nil
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// does not define a scheme, then the location of the new Resource is resolved
// relative to the directory containing relTo.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	loc, err := resolve(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch loc.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(loc.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		reader, err = fetch(loc)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", loc.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        loc,
	}, nil
}

// Wrap an in-memory stream as a resource. Resources opened relative to it
// are resolved against name.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	loc, err := url.Parse(filepath.ToSlash(name))
	if err != nil {
		loc = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        loc,
	}
}

func resolve(pathToResource string, relTo *Resource) (*url.URL, error) {
	loc, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	if loc.Scheme != "" || relTo == nil || filepath.IsAbs(loc.Path) {
		return loc, nil
	}

	// Relative location; clone the parent url and replace its path
	rel := loc.Path
	loc, _ = url.Parse(relTo.url.String())
	if loc.Scheme != "" {
		loc.Path = path.Join(path.Dir(loc.Path), rel)
		return loc, nil
	}

	base, err := filepath.Abs(relTo.url.Path)
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
	}
	loc.Path = filepath.Join(filepath.Dir(base), rel)
	return loc, nil
}

func fetch(loc *url.URL) (io.ReadCloser, error) {
	resp, err := httpClient.Get(loc.String())
	if err != nil {
		return nil, fmt.Errorf("resource: could not fetch '%s': %s", loc.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("resource: could not fetch '%s': status %d", loc.String(), resp.StatusCode)
	}
	return resp.Body, nil
}
