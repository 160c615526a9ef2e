package gradle

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lfgradle/pkg/license"
)

// errNoDependencies is reported for documents without a dependencies element
var errNoDependencies = errors.New("missing dependencies element")

var errTrailingContent = errors.New("unexpected content after root element")

// reportDocument accepts either a dependencies root element or a root that
// wraps one or more dependencies elements
type reportDocument struct {
	XMLName      xml.Name
	Dependencies []reportDependency `xml:"dependency"`
	Groups       []reportGroup      `xml:"dependencies"`
}

type reportGroup struct {
	Dependencies []reportDependency `xml:"dependency"`
}

// reportDependency is a dependency element of a license report
type reportDependency struct {
	Name     string          `xml:"name,attr"`
	Licenses []reportLicense `xml:"license"`
}

// reportLicense is a license element nested in a dependency
type reportLicense struct {
	Name string `xml:"name,attr"`
	URL  string `xml:"url,attr"`
}

// ParseReportFile parses the license report at path
func ParseReportFile(path string, includeGroups bool) ([]license.Dependency, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ReportError{Path: path, Err: err}
	}
	defer file.Close()

	deps, err := ParseReport(file, includeGroups)
	if err != nil {
		return nil, &ReportError{Path: path, Err: err}
	}
	return deps, nil
}

// ParseReport parses a license report document, keeping element order
func ParseReport(r io.Reader, includeGroups bool) ([]license.Dependency, error) {
	dec := xml.NewDecoder(r)
	var doc reportDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	var elements []reportDependency
	switch {
	case doc.XMLName.Local == "dependencies":
		elements = doc.Dependencies
	case len(doc.Groups) > 0:
		for _, group := range doc.Groups {
			elements = append(elements, group.Dependencies...)
		}
	default:
		return nil, errNoDependencies
	}

	deps := make([]license.Dependency, 0, len(elements))
	for _, element := range elements {
		deps = append(deps, element.toDependency(includeGroups))
	}
	return deps, nil
}

// expectEOF fails on anything but comments, processing instructions and
// whitespace after the root element
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errTrailingContent
			}
		}
	}
}

// toDependency converts a report element into a dependency record
func (d reportDependency) toDependency(includeGroups bool) license.Dependency {
	var licenses []license.License
	for _, l := range d.Licenses {
		licenses = append(licenses, license.License{Name: l.Name, URL: l.URL})
	}

	group, _, version := SplitIdentity(d.Name)

	return license.NewDependency(d.Name, DisplayName(d.Name, includeGroups), group, version, licenses)
}

// SplitIdentity splits a group:artifact:version identity. Missing segments
// are returned empty.
func SplitIdentity(id string) (group, artifact, version string) {
	if id == "" {
		return "", "", ""
	}

	parts := strings.Split(id, ":")
	group = parts[0]
	if len(parts) > 1 {
		artifact = parts[1]
	}
	if len(parts) > 2 {
		version = parts[2]
	}
	return group, artifact, version
}

// DisplayName returns the artifact name of an identity, qualified with the
// group when includeGroups is set. Identities without an artifact segment
// are returned unchanged.
func DisplayName(id string, includeGroups bool) string {
	group, artifact, _ := SplitIdentity(id)
	if artifact == "" {
		return id
	}
	if includeGroups {
		return group + ":" + artifact
	}
	return artifact
}
