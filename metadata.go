package folio

import (
	"encoding/xml"

	"github.com/tsawler/folio/container"
	"github.com/tsawler/folio/internal/logging"
	"github.com/tsawler/folio/model"
)

// corePropertiesXML represents docProps/core.xml.
type corePropertiesXML struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Subject string   `xml:"subject"`
	Creator string   `xml:"creator"`
}

// appPropertiesXML represents docProps/app.xml.
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
}

// readMetadata pulls document properties out of the container for the
// output Info dictionary. Both parts are optional and a malformed one
// is simply ignored; metadata never fails a conversion.
func readMetadata(arc *container.Archive) model.Metadata {
	var meta model.Metadata

	if data, err := arc.Read("docProps/core.xml"); err == nil {
		var core corePropertiesXML
		if err := xml.Unmarshal(data, &core); err != nil {
			logging.Get().Debug("ignoring malformed core properties", "error", err)
		} else {
			meta.Title = core.Title
			meta.Subject = core.Subject
			meta.Author = core.Creator
		}
	}

	if data, err := arc.Read("docProps/app.xml"); err == nil {
		var app appPropertiesXML
		if err := xml.Unmarshal(data, &app); err != nil {
			logging.Get().Debug("ignoring malformed app properties", "error", err)
		} else {
			meta.Creator = app.Application
		}
	}

	return meta
}
