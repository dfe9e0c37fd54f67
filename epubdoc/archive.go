package epubdoc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	mimetypePath = "mimetype"
	epubMimetype = "application/epub+zip"
)

// archive gives path-based access to the entries of an EPUB zip.
type archive struct {
	zr    *zip.Reader
	files map[string]*zip.File
}

// openArchive opens data as a zip archive.
func openArchive(data []byte) (*archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
	}
	return newArchive(zr), nil
}

func newArchive(zr *zip.Reader) *archive {
	a := &archive{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		name := normalizePath(f.Name)
		if _, ok := a.files[name]; !ok {
			a.files[name] = f
		}
	}
	return a
}

// mimetype returns the declared media type of the archive, or "" when the
// mimetype entry is missing or unreadable.
func (a *archive) mimetype() string {
	data, err := a.readFile(mimetypePath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// has reports whether the archive contains name.
func (a *archive) has(name string) bool {
	_, ok := a.files[normalizePath(name)]
	return ok
}

// readFile reads a file from the ZIP archive.
func (a *archive) readFile(name string) ([]byte, error) {
	f, ok := a.files[normalizePath(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingContent, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// decodeXML unmarshals an XML document, honoring non-UTF-8 encoding
// declarations and tolerating HTML entities.
func decodeXML(data []byte, v any) error {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charset.NewReaderLabel
	d.Strict = false
	d.Entity = xml.HTMLEntity
	return d.Decode(v)
}

// resolvePath resolves href against baseDir, dropping any fragment and
// normalizing the result to a clean forward-slash archive path.
func resolvePath(baseDir, href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	href = strings.ReplaceAll(strings.TrimSpace(href), "\\", "/")
	if href == "" {
		return ""
	}

	if baseDir != "" && !strings.HasPrefix(href, "/") {
		href = baseDir + "/" + href
	}
	return normalizePath(href)
}

// normalizePath cleans an archive path.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return p
}

// dirOf returns the directory of an archive path, or "" at the root.
func dirOf(p string) string {
	dir := path.Dir(normalizePath(p))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}
