package urdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
)

// Decode parses a URDF document and returns the validated link/joint graph.
//
// All structural violations (duplicate names, dangling link references,
// missing or multiple roots, cycles) are reported as INVALID_DOCUMENT
// errors wrapping the corresponding sentinel from this package.
func Decode(data []byte) (*Model, error) {
	var doc xmlRobot
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse robot description")
	}
	if doc.XMLName.Local != "robot" {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "root element is <%s>, want <robot>", doc.XMLName.Local)
	}

	links := make([]*Link, 0, len(doc.Links))
	for _, xl := range doc.Links {
		l, err := xl.toLink()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "link %q", xl.Name)
		}
		links = append(links, l)
	}

	joints := make([]*Joint, 0, len(doc.Joints))
	for _, xj := range doc.Joints {
		j, err := xj.toJoint()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "joint %q", xj.Name)
		}
		joints = append(joints, j)
	}

	m, err := newModel(doc.Name, links, joints)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "robot %q", doc.Name)
	}
	return m, nil
}

// =============================================================================
// Raw XML Structure
// =============================================================================

type xmlRobot struct {
	XMLName xml.Name
	Name    string     `xml:"name,attr"`
	Links   []xmlLink  `xml:"link"`
	Joints  []xmlJoint `xml:"joint"`
}

type xmlLink struct {
	Name      string        `xml:"name,attr"`
	Inertial  *xmlInertial  `xml:"inertial"`
	Visual    *xmlGeomBlock `xml:"visual"`
	Collision *xmlGeomBlock `xml:"collision"`
}

type xmlInertial struct {
	Origin *xmlOrigin `xml:"origin"`
	Mass   struct {
		Value float64 `xml:"value,attr"`
	} `xml:"mass"`
	Inertia struct {
		IXX float64 `xml:"ixx,attr"`
		IXY float64 `xml:"ixy,attr"`
		IXZ float64 `xml:"ixz,attr"`
		IYY float64 `xml:"iyy,attr"`
		IYZ float64 `xml:"iyz,attr"`
		IZZ float64 `xml:"izz,attr"`
	} `xml:"inertia"`
}

type xmlGeomBlock struct {
	Origin   *xmlOrigin  `xml:"origin"`
	Geometry xmlGeometry `xml:"geometry"`
}

type xmlGeometry struct {
	Mesh *struct {
		Filename string `xml:"filename,attr"`
		Scale    string `xml:"scale,attr"`
	} `xml:"mesh"`
	Cylinder *struct {
		Radius float64 `xml:"radius,attr"`
		Length float64 `xml:"length,attr"`
	} `xml:"cylinder"`
	Box *struct {
		Size string `xml:"size,attr"`
	} `xml:"box"`
	Sphere *struct {
		Radius float64 `xml:"radius,attr"`
	} `xml:"sphere"`
}

type xmlJoint struct {
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Origin *xmlOrigin `xml:"origin"`
	Parent struct {
		Link string `xml:"link,attr"`
	} `xml:"parent"`
	Child struct {
		Link string `xml:"link,attr"`
	} `xml:"child"`
	Axis *struct {
		XYZ string `xml:"xyz,attr"`
	} `xml:"axis"`
	Limit *struct {
		Lower    float64 `xml:"lower,attr"`
		Upper    float64 `xml:"upper,attr"`
		Velocity float64 `xml:"velocity,attr"`
		Effort   float64 `xml:"effort,attr"`
	} `xml:"limit"`
}

type xmlOrigin struct {
	XYZ string `xml:"xyz,attr"`
	RPY string `xml:"rpy,attr"`
}

// =============================================================================
// Conversion
// =============================================================================

var jointKinds = map[string]JointKind{
	"revolute":   KindRevolute,
	"continuous": KindContinuous,
	"prismatic":  KindPrismatic,
	"floating":   KindFloating,
	"fixed":      KindFixed,
	"planar":     KindPlanar,
}

func (x xmlLink) toLink() (*Link, error) {
	if err := errors.ValidateElementName(x.Name); err != nil {
		return nil, err
	}

	l := &Link{Name: x.Name}

	if x.Inertial != nil {
		origin, err := x.Inertial.Origin.toPose()
		if err != nil {
			return nil, fmt.Errorf("inertial origin: %w", err)
		}
		l.Inertial = &Inertial{
			Origin: origin,
			Mass:   x.Inertial.Mass.Value,
			IXX:    x.Inertial.Inertia.IXX,
			IXY:    x.Inertial.Inertia.IXY,
			IXZ:    x.Inertial.Inertia.IXZ,
			IYY:    x.Inertial.Inertia.IYY,
			IYZ:    x.Inertial.Inertia.IYZ,
			IZZ:    x.Inertial.Inertia.IZZ,
		}
	}

	if x.Visual != nil {
		origin, geom, err := x.Visual.convert()
		if err != nil {
			return nil, fmt.Errorf("visual: %w", err)
		}
		l.Visual = &Visual{Origin: origin, Geometry: geom}
	}

	if x.Collision != nil {
		origin, geom, err := x.Collision.convert()
		if err != nil {
			return nil, fmt.Errorf("collision: %w", err)
		}
		l.Collision = &Collision{Origin: origin, Geometry: geom}
	}

	return l, nil
}

func (x *xmlGeomBlock) convert() (Pose, Geometry, error) {
	origin, err := x.Origin.toPose()
	if err != nil {
		return Pose{}, Geometry{}, fmt.Errorf("origin: %w", err)
	}

	switch {
	case x.Geometry.Mesh != nil:
		if err := errors.ValidateResourceURI(x.Geometry.Mesh.Filename); err != nil {
			return Pose{}, Geometry{}, err
		}
		scale := mgl64.Vec3{1, 1, 1}
		if x.Geometry.Mesh.Scale != "" {
			if scale, err = parseVec3(x.Geometry.Mesh.Scale); err != nil {
				return Pose{}, Geometry{}, fmt.Errorf("mesh scale: %w", err)
			}
		}
		return origin, Geometry{
			Type:     GeometryMesh,
			Filename: x.Geometry.Mesh.Filename,
			Scale:    scale,
		}, nil

	case x.Geometry.Cylinder != nil:
		return origin, Geometry{
			Type:   GeometryCylinder,
			Radius: x.Geometry.Cylinder.Radius,
			Length: x.Geometry.Cylinder.Length,
		}, nil

	case x.Geometry.Box != nil:
		size, err := parseVec3(x.Geometry.Box.Size)
		if err != nil {
			return Pose{}, Geometry{}, fmt.Errorf("box size: %w", err)
		}
		return origin, Geometry{Type: GeometryBox, Size: size}, nil

	case x.Geometry.Sphere != nil:
		return origin, Geometry{
			Type:   GeometrySphere,
			Radius: x.Geometry.Sphere.Radius,
		}, nil
	}

	return Pose{}, Geometry{}, fmt.Errorf("geometry block declares no shape")
}

func (x xmlJoint) toJoint() (*Joint, error) {
	if err := errors.ValidateElementName(x.Name); err != nil {
		return nil, err
	}

	kind, ok := jointKinds[x.Type]
	if !ok {
		kind = KindUnknown
	}

	origin, err := x.Origin.toPose()
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}

	// The format defaults the motion axis to X when omitted.
	axis := mgl64.Vec3{1, 0, 0}
	if x.Axis != nil {
		if axis, err = parseVec3(x.Axis.XYZ); err != nil {
			return nil, fmt.Errorf("axis: %w", err)
		}
	}

	j := &Joint{
		Name:       x.Name,
		Kind:       kind,
		Axis:       axis,
		Origin:     origin,
		ParentLink: x.Parent.Link,
		ChildLink:  x.Child.Link,
	}

	if x.Limit != nil {
		j.Limits = &Limits{
			Lower:    x.Limit.Lower,
			Upper:    x.Limit.Upper,
			Velocity: x.Limit.Velocity,
			Effort:   x.Limit.Effort,
		}
	}

	return j, nil
}

// toPose converts an optional origin element. A nil origin is the identity.
func (x *xmlOrigin) toPose() (Pose, error) {
	pose := IdentityPose()
	if x == nil {
		return pose, nil
	}

	if x.XYZ != "" {
		xyz, err := parseVec3(x.XYZ)
		if err != nil {
			return Pose{}, fmt.Errorf("xyz: %w", err)
		}
		pose.Position = xyz
	}

	if x.RPY != "" {
		rpy, err := parseVec3(x.RPY)
		if err != nil {
			return Pose{}, fmt.Errorf("rpy: %w", err)
		}
		// Fixed-axis roll/pitch/yaw: yaw about Z, then pitch about Y,
		// then roll about X.
		pose.Rotation = mgl64.AnglesToQuat(rpy.Z(), rpy.Y(), rpy.X(), mgl64.ZYX)
	}

	return pose, nil
}

// parseVec3 parses a whitespace-separated triple of floats.
func parseVec3(s string) (mgl64.Vec3, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return mgl64.Vec3{}, fmt.Errorf("want 3 components, got %d in %q", len(fields), s)
	}
	var v mgl64.Vec3
	for i, f := range fields {
		val, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return mgl64.Vec3{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = val
	}
	return v, nil
}
