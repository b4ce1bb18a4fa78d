// Package resolver maps relationship ids to archive entry paths.
//
// Every part of an Office Open XML container may carry a sibling
// relationship part under _rels/ that binds ids (rId4) to targets (an image,
// a worksheet, a hyperlink). Targets are written relative to the owning part
// and sometimes climb out of its directory with "../", so resolution rebases
// them onto real archive paths before any consumer sees them.
package resolver

import (
	"encoding/xml"
	"path"
	"strings"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/internal/logging"
)

// Map binds relationship ids to resolved archive entry paths. External
// targets (hyperlinks) keep their raw URL. The map is read-only after
// construction.
type Map map[string]string

type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// RelsPath returns the relationship part path for a given part: the part
// dir/name.xml is described by dir/_rels/name.xml.rels.
func RelsPath(ownerPath string) string {
	dir := path.Dir(ownerPath)
	base := path.Base(ownerPath)
	return path.Join(dir, "_rels", base+".rels")
}

// Relationships loads and resolves the relationship part for ownerPath.
// A missing or malformed part yields an empty map, never an error: parts
// without relationships are common and a broken .rels only costs the
// resources it would have resolved.
func Relationships(arc *container.Archive, ownerPath string) Map {
	data, err := arc.Read(RelsPath(ownerPath))
	if err != nil {
		return Map{}
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		logging.Get().Debug("malformed relationship part", "part", RelsPath(ownerPath), "error", err)
		return Map{}
	}

	m := make(Map, len(rels.Relationship))
	for _, rel := range rels.Relationship {
		if rel.ID == "" || rel.Target == "" {
			continue
		}
		if strings.EqualFold(rel.TargetMode, "External") {
			m[rel.ID] = rel.Target
			continue
		}
		resolved := resolveTarget(ownerPath, rel.Target)
		if resolved == "" {
			continue
		}
		m[rel.ID] = resolved
	}
	return m
}

// resolveTarget turns a relationship target into an archive entry path.
// Absolute targets are package-rooted; "../" targets are rebased onto the
// owner's top-level segment (ppt/slides/slide1.xml + ../media/x.png =
// ppt/media/x.png); everything else resolves against the owner's directory.
// Targets that still escape the archive root resolve to "".
func resolveTarget(ownerPath, target string) string {
	target = strings.TrimSpace(target)
	if target == "" {
		return ""
	}

	var resolved string
	switch {
	case strings.HasPrefix(target, "/"):
		resolved = path.Clean(strings.TrimPrefix(target, "/"))
	case strings.HasPrefix(target, "../"):
		root := rootSegment(ownerPath)
		rest := target
		for strings.HasPrefix(rest, "../") {
			rest = strings.TrimPrefix(rest, "../")
		}
		resolved = path.Join(root, rest)
	default:
		resolved = path.Join(path.Dir(ownerPath), target)
	}

	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return ""
	}
	return resolved
}

// rootSegment returns the first path segment of an archive path.
func rootSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i > 0 {
		return p[:i]
	}
	return ""
}
