// Package xml serializes validated domain records into the three regulatory
// XML dialects the agency files: the INPS agibilità communication, the
// FatturaPA electronic invoice and the Danea Easyfatt exchange document.
//
// Each dialect lives in its own file with its own serializer type. All three
// are pure: they take plain records plus the sender identity and return a
// complete UTF-8 document as bytes, or an explicit error. They never emit a
// partial document, because a partial filing is rejected downstream.
package xml

import (
	"encoding/xml"
	"time"
)

// ContentType is the MIME type of every document this package produces
const ContentType = "application/xml"

// isoDate is the calendar date layout required by all three dialects,
// independent of server locale
const isoDate = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(isoDate)
}

// envelope marshals v with indentation and prepends the XML declaration
// asserting UTF-8 encoding.
func envelope(v interface{}) ([]byte, error) {
	body, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')
	return out, nil
}
