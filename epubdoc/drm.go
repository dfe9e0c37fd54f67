package epubdoc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// ErrDRMProtected is returned for encrypted manuscripts. It matches
// ErrInvalidContainer.
var ErrDRMProtected = fmt.Errorf("%w: DRM-protected content cannot be processed", ErrInvalidContainer)

const (
	rightsPath     = "META-INF/rights.xml"
	encryptionPath = "META-INF/encryption.xml"
)

// encryptionXML represents the structure of META-INF/encryption.xml.
type encryptionXML struct {
	XMLName       xml.Name        `xml:"encryption"`
	EncryptedData []encryptedData `xml:"EncryptedData"`
}

type encryptedData struct {
	EncryptionMethod encryptionMethod `xml:"EncryptionMethod"`
	CipherData       cipherData       `xml:"CipherData"`
}

type encryptionMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

type cipherData struct {
	CipherReference cipherReference `xml:"CipherReference"`
}

type cipherReference struct {
	URI string `xml:"URI,attr"`
}

// checkForDRM rejects archives whose content documents are encrypted.
// Obfuscated fonts are allowed.
func checkForDRM(a *archive) error {
	// Adobe ADEPT
	if a.has(rightsPath) {
		return ErrDRMProtected
	}
	if !a.has(encryptionPath) {
		return nil
	}

	data, err := a.readFile(encryptionPath)
	if err != nil {
		return ErrDRMProtected
	}

	var enc encryptionXML
	if err := decodeXML(data, &enc); err != nil {
		// An unreadable manifest is treated as encryption.
		return ErrDRMProtected
	}

	for _, ed := range enc.EncryptedData {
		if isFontObfuscation(ed.EncryptionMethod.Algorithm) {
			continue
		}
		if isContentFile(ed.CipherData.CipherReference.URI) {
			return ErrDRMProtected
		}
	}
	return nil
}

// isFontObfuscation returns true if the algorithm is an IDPF or Adobe font
// obfuscation method.
func isFontObfuscation(algorithm string) bool {
	algorithm = strings.ToLower(algorithm)
	if !strings.Contains(algorithm, "obfuscation") {
		return false
	}
	return strings.Contains(algorithm, "adobe.com") || strings.Contains(algorithm, "idpf.org")
}

// isContentFile returns true if the URI refers to a file whose encryption
// makes the text unreadable.
func isContentFile(uri string) bool {
	uri = strings.ToLower(uri)
	for _, ext := range []string{".xhtml", ".html", ".htm", ".xml", ".css", ".opf", ".ncx", ".pls"} {
		if strings.HasSuffix(uri, ext) {
			return true
		}
	}
	return false
}
