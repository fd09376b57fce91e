// Package srdf decodes SRDF semantic-description documents.
//
// SRDF complements a robot description with semantic annotations. Only the
// subset consumed by motion planning is decoded here: the list of link
// pairs whose collision checking is disabled (adjacent links, links that
// can never touch). The decoded pairs are attached to a built model after
// kinematic-tree construction.
//
// # Usage
//
//	doc, err := srdf.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range doc.DisabledCollisions {
//	    fmt.Println(p.First, p.Second, p.Reason)
//	}
package srdf

import (
	"encoding/xml"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
)

// CollisionPair names two links whose mutual collision test is disabled.
type CollisionPair struct {
	First  string
	Second string
	Reason string
}

// Document is the decoded semantic description.
type Document struct {
	Name               string
	DisabledCollisions []CollisionPair
}

type xmlRobot struct {
	XMLName            xml.Name `xml:"robot"`
	Name               string   `xml:"name,attr"`
	DisabledCollisions []struct {
		Link1  string `xml:"link1,attr"`
		Link2  string `xml:"link2,attr"`
		Reason string `xml:"reason,attr"`
	} `xml:"disable_collisions"`
}

// Decode parses an SRDF document.
func Decode(data []byte) (*Document, error) {
	var doc xmlRobot
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse semantic description")
	}

	out := &Document{Name: doc.Name}
	for _, dc := range doc.DisabledCollisions {
		if dc.Link1 == "" || dc.Link2 == "" {
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"disable_collisions pair is missing a link name")
		}
		out.DisabledCollisions = append(out.DisabledCollisions, CollisionPair{
			First:  dc.Link1,
			Second: dc.Link2,
			Reason: dc.Reason,
		})
	}
	return out, nil
}
