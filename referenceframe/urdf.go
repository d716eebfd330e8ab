package referenceframe

import (
	"encoding/xml"
	"math"
	"os"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Tiennd11/ur3-robot-ik/spatialmath"
	"github.com/Tiennd11/ur3-robot-ik/utils"
)

// Supported URDF joint types.
const (
	ContinuousJoint = "continuous"
	RevoluteJoint   = "revolute"
	FixedJoint      = "fixed"
)

// World is the reserved name for the root of a URDF kinematic tree.
const World = "world"

// ErrNoModelInformation is returned when URDF data is empty of actionable content.
var ErrNoModelInformation = errors.New("no model information found in URDF data")

// URDFConfig represents the supported fields in a Universal Robot Description
// Format (URDF) file.
type URDFConfig struct {
	XMLName xml.Name    `xml:"robot"`
	Name    string      `xml:"name,attr"`
	Links   []URDFLink  `xml:"link"`
	Joints  []URDFJoint `xml:"joint"`
}

// URDFLink details the XML used in a URDF link element.
type URDFLink struct {
	XMLName xml.Name `xml:"link"`
	Name    string   `xml:"name,attr"`
}

// URDFJoint details the XML used in a URDF joint element.
type URDFJoint struct {
	XMLName xml.Name   `xml:"joint"`
	Name    string     `xml:"name,attr"`
	Type    string     `xml:"type,attr"`
	Parent  URDFFrame  `xml:"parent"`
	Child   URDFFrame  `xml:"child"`
	Origin  *URDFPose  `xml:"origin,omitempty"`
	Axis    *URDFAxis  `xml:"axis,omitempty"`
	Limit   *URDFLimit `xml:"limit,omitempty"`
}

// URDFFrame references a parent or child link by name.
type URDFFrame struct {
	Link string `xml:"link,attr"`
}

// URDFPose is a URDF origin element: space-delimited xyz translation and
// roll-pitch-yaw orientation.
type URDFPose struct {
	XMLName xml.Name `xml:"origin"`
	XYZ     string   `xml:"xyz,attr"`
	RPY     string   `xml:"rpy,attr"`
}

// URDFAxis is a URDF joint axis element, a space-delimited unit vector.
type URDFAxis struct {
	XMLName xml.Name `xml:"axis"`
	XYZ     string   `xml:"xyz,attr"`
}

// URDFLimit holds revolute joint limits in radians.
type URDFLimit struct {
	XMLName xml.Name `xml:"limit"`
	Lower   float64  `xml:"lower,attr"`
	Upper   float64  `xml:"upper,attr"`
}

// NewUnsupportedJointTypeError returns an error for URDF joint types this
// parser cannot model.
func NewUnsupportedJointTypeError(jointType string) error {
	return errors.Errorf("unsupported joint type detected: %q", jointType)
}

// ParseURDFFile reads a URDF file and parses it into a serial chain Model. If
// modelName is empty the name declared in the file is used.
func ParseURDFFile(filename, modelName string) (*Model, error) {
	//nolint:gosec
	xmlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read URDF file")
	}
	return ParseURDF(xmlData, modelName)
}

// ParseURDF converts URDF XML data into a serial chain Model. The parser walks
// the joint tree from the root link outward; every revolute or continuous joint
// becomes an origin frame plus a rotational frame, fixed joints between them
// fold in as static frames, and parsing stops once NumJoints movable joints
// have been chained (anything past the last joint, such as a flange or tool
// frame, is not part of the joint chain). Units are kept in meters and radians
// as URDF specifies them.
func ParseURDF(xmlData []byte, modelName string) (*Model, error) {
	// empty data probably means that the read URDF has no actionable information
	if len(xmlData) == 0 {
		return nil, ErrNoModelInformation
	}

	urdf := &URDFConfig{}
	if err := xml.Unmarshal(xmlData, urdf); err != nil {
		return nil, errors.Wrap(err, "failed to convert URDF data to equivalent URDFConfig struct")
	}
	if modelName == "" {
		modelName = urdf.Name
	}
	if err := validateURDFConfig(urdf); err != nil {
		return nil, err
	}

	// Find the root of the chain: a parent link that is never any joint's child.
	childLinks := map[string]bool{}
	jointsByParent := map[string]*URDFJoint{}
	for i, jointElem := range urdf.Joints {
		if jointElem.Name == World {
			return nil, errors.New("joints with the name 'world' are not supported")
		}
		childLinks[jointElem.Child.Link] = true
		if _, ok := jointsByParent[jointElem.Parent.Link]; ok {
			return nil, errors.Errorf("link %q has more than one child joint; only serial chains are supported", jointElem.Parent.Link)
		}
		jointsByParent[jointElem.Parent.Link] = &urdf.Joints[i]
	}
	root := ""
	for _, jointElem := range urdf.Joints {
		if !childLinks[jointElem.Parent.Link] {
			root = jointElem.Parent.Link
			break
		}
	}
	if root == "" {
		return nil, ErrNoModelInformation
	}

	var frames []Frame
	var linkNames [NumLinks]string
	linkNames[0] = root
	numMovable := 0

	visited := map[string]bool{root: true}
	for link := root; numMovable < NumJoints; {
		jointElem, ok := jointsByParent[link]
		if !ok {
			return nil, errors.Errorf("chain ends after %d movable joints, need %d", numMovable, NumJoints)
		}
		if visited[jointElem.Child.Link] {
			return nil, errors.Errorf("joint %q closes a cycle through link %q; only serial chains are supported", jointElem.Name, jointElem.Child.Link)
		}
		visited[jointElem.Child.Link] = true
		origin, err := urdfOriginFrame(jointElem)
		if err != nil {
			return nil, err
		}

		switch jointElem.Type {
		case RevoluteJoint, ContinuousJoint:
			limit := Limit{Min: math.Inf(-1), Max: math.Inf(1)}
			if jointElem.Type == RevoluteJoint {
				if jointElem.Limit == nil {
					return nil, errors.Errorf("revolute joint %q has no limit element", jointElem.Name)
				}
				limit = Limit{Min: jointElem.Limit.Lower, Max: jointElem.Limit.Upper}
			}
			axis := zAxis
			if jointElem.Axis != nil {
				xyz, err := utils.SpaceDelimitedStringToFloatSlice(jointElem.Axis.XYZ)
				if err != nil || len(xyz) != 3 {
					return nil, errors.Errorf("joint %q has malformed axis %q", jointElem.Name, jointElem.Axis.XYZ)
				}
				axis = r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}
			}
			rf, err := NewRotationalFrame(jointElem.Name, axis, limit)
			if err != nil {
				return nil, errors.Wrapf(err, "joint %q", jointElem.Name)
			}
			frames = append(frames, origin, rf)
			numMovable++
			linkNames[numMovable] = jointElem.Child.Link
		case FixedJoint:
			frames = append(frames, origin)
		default:
			return nil, NewUnsupportedJointTypeError(jointElem.Type)
		}
		link = jointElem.Child.Link
	}

	return NewModel(modelName, linkNames, frames)
}

// validateURDFConfig checks every joint against the declared links, collecting
// all problems rather than stopping at the first.
func validateURDFConfig(urdf *URDFConfig) error {
	declared := map[string]bool{}
	for _, linkElem := range urdf.Links {
		declared[linkElem.Name] = true
	}

	var err error
	jointNames := map[string]bool{}
	for _, jointElem := range urdf.Joints {
		if jointNames[jointElem.Name] {
			err = multierr.Append(err, errors.Errorf("duplicate joint name %q", jointElem.Name))
		}
		jointNames[jointElem.Name] = true
		if !declared[jointElem.Parent.Link] {
			err = multierr.Append(err, errors.Errorf("joint %q references undeclared parent link %q", jointElem.Name, jointElem.Parent.Link))
		}
		if !declared[jointElem.Child.Link] {
			err = multierr.Append(err, errors.Errorf("joint %q references undeclared child link %q", jointElem.Name, jointElem.Child.Link))
		}
	}
	return err
}

func urdfOriginFrame(jointElem *URDFJoint) (Frame, error) {
	xyz := r3.Vector{}
	rpy := spatialmath.NewEulerAngles()
	if jointElem.Origin != nil {
		if jointElem.Origin.XYZ != "" {
			v, err := utils.SpaceDelimitedStringToFloatSlice(jointElem.Origin.XYZ)
			if err != nil || len(v) != 3 {
				return nil, errors.Errorf("joint %q has malformed origin xyz %q", jointElem.Name, jointElem.Origin.XYZ)
			}
			xyz = r3.Vector{X: v[0], Y: v[1], Z: v[2]}
		}
		if jointElem.Origin.RPY != "" {
			v, err := utils.SpaceDelimitedStringToFloatSlice(jointElem.Origin.RPY)
			if err != nil || len(v) != 3 {
				return nil, errors.Errorf("joint %q has malformed origin rpy %q", jointElem.Name, jointElem.Origin.RPY)
			}
			rpy = &spatialmath.EulerAngles{Roll: v[0], Pitch: v[1], Yaw: v[2]}
		}
	}
	return NewStaticFrameFromOrigin(jointElem.Name+"_origin", xyz, rpy), nil
}
