package epubdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
)

const containerPath = "META-INF/container.xml"

// Container-related errors. Every one of them matches ErrInvalidContainer.
var (
	ErrInvalidContainer = errors.New("epub: invalid container")
	ErrNoContainer      = fmt.Errorf("%w: missing %s", ErrInvalidContainer, containerPath)
	ErrNoRootfile       = fmt.Errorf("%w: no rootfile found in container.xml", ErrInvalidContainer)
)

// containerXML represents the structure of META-INF/container.xml.
type containerXML struct {
	XMLName   xml.Name  `xml:"container"`
	Version   string    `xml:"version,attr"`
	Rootfiles rootfiles `xml:"rootfiles"`
}

type rootfiles struct {
	Rootfile []rootfile `xml:"rootfile"`
}

type rootfile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// parseContainer parses META-INF/container.xml and returns the path to the OPF file.
func parseContainer(a *archive) (string, error) {
	if !a.has(containerPath) {
		return "", ErrNoContainer
	}

	data, err := a.readFile(containerPath)
	if err != nil {
		return "", fmt.Errorf("%w: reading container.xml: %v", ErrInvalidContainer, err)
	}

	var container containerXML
	if err := decodeXML(data, &container); err != nil {
		return "", fmt.Errorf("%w: parsing container.xml: %v", ErrInvalidContainer, err)
	}

	// Prefer the OPF rootfile, then any rootfile with a path
	for _, rf := range container.Rootfiles.Rootfile {
		if rf.MediaType == "application/oebps-package+xml" || rf.MediaType == "" {
			if p := normalizePath(rf.FullPath); p != "" {
				return p, nil
			}
		}
	}
	for _, rf := range container.Rootfiles.Rootfile {
		if p := normalizePath(rf.FullPath); p != "" {
			return p, nil
		}
	}

	return "", ErrNoRootfile
}
