package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies how an argument should be resolved.
type Kind int

const (
	KindLocal Kind = iota
	KindFile
	KindHTTP
	KindFTP
)

// Source is a resolved argument: either a local file or the body fetched
// from a remote location. Arg keeps the argument as given on the command
// line so reports can show it back to the user.
type Source struct {
	Arg  string
	Kind Kind
	Path string
	Body string
}

func (s Source) Remote() bool {
	return s.Kind == KindHTTP || s.Kind == KindFTP
}

func (s Source) Name() string {
	if s.Remote() {
		return s.Arg
	}
	return filepath.Base(s.Path)
}

// Classify infers the origin of an argument from its URL scheme. Anything
// that is not http(s), ftp or file is taken to be a local path.
func Classify(arg string) Kind {
	u, err := url.Parse(arg)
	if err != nil {
		return KindLocal
	}
	switch u.Scheme {
	case "http", "https":
		return KindHTTP
	case "ftp":
		return KindFTP
	case "file":
		return KindFile
	default:
		return KindLocal
	}
}

// Resolve turns an argument into a Source. The label names the positional
// argument being resolved and only appears in error messages.
func Resolve(arg, label string) (Source, error) {
	switch Classify(arg) {
	case KindHTTP:
		return resolveHTTP(arg)
	case KindFTP:
		return resolveFTP(arg)
	case KindFile:
		return resolveLocal(strings.TrimPrefix(arg, "file://"), arg, label, KindFile)
	default:
		return resolveLocal(arg, arg, label, KindLocal)
	}
}

func resolveLocal(path, arg, label string, kind Kind) (Source, error) {
	if s, err := os.Stat(path); err != nil || s.IsDir() {
		return Source{}, fmt.Errorf("Error: Invalid value for %s\nPath %s does not exist.", label, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("Error: Invalid value for %s\nPath %s does not exist.", label, path)
	}
	src := Source{
		Arg:  arg,
		Kind: kind,
		Path: abs,
	}
	return src, nil
}

func resolveHTTP(arg string) (Source, error) {
	res, err := http.Get(arg)
	if err != nil {
		return Source{}, fmt.Errorf("%s\nMake sure the URL is correct.", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return Source{}, statusError(res)
	}
	if ct := res.Header.Get("Content-Type"); !isDocumentType(ct) {
		return Source{}, fmt.Errorf("Error: Content of the URL (%s)\nis not in XML format. Make sure the URL is correct.", res.Request.URL)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Source{}, fmt.Errorf("%s\nMake sure the URL is correct.", err)
	}
	src := Source{
		Arg:  arg,
		Kind: KindHTTP,
		Body: string(body),
	}
	return src, nil
}

func statusError(res *http.Response) error {
	family := "Client"
	if res.StatusCode >= http.StatusInternalServerError {
		family = "Server"
	}
	text := http.StatusText(res.StatusCode)
	return fmt.Errorf("%d %s Error: %s for url: %s\nMake sure the URL is correct.", res.StatusCode, family, text, res.Request.URL)
}

// content type can also be text/plain
func isDocumentType(ct string) bool {
	return strings.Contains(ct, "xml") || strings.Contains(ct, "text/plain")
}
