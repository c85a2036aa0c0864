package vmf

import (
	"github.com/specialistvlad/vmfgo/keyvalues"
)

// Cameras is the cameras block of saved editor viewpoints.
type Cameras struct {
	ActiveCamera int // -1 when no camera is active.
	Cameras      []*Camera

	Passthrough Passthrough
	layout      layout
}

// Camera is one editor viewpoint. Position and Look are raw "[x y z]" values.
type Camera struct {
	Position string
	Look     string

	Passthrough Passthrough
	layout      layout
}

// NewCamera creates a camera at position looking at look.
func NewCamera(position, look Vec3) *Camera {
	return &Camera{Position: "[" + position.String() + "]", Look: "[" + look.String() + "]"}
}

// PositionVec parses Position.
func (c *Camera) PositionVec() (Vec3, error) { return ParseVec3(c.Position) }

// LookVec parses Look.
func (c *Camera) LookVec() (Vec3, error) { return ParseVec3(c.Look) }

func decodeCameras(b *keyvalues.Block) Cameras {
	var c Cameras
	d := decoder{&c.layout, &c.Passthrough}
	for _, a := range b.Attributes {
		if a.Key == "activecamera" {
			d.integer(a, &c.ActiveCamera)
			continue
		}
		d.skip(a)
	}
	for _, child := range b.Children {
		if child.Name != "camera" {
			d.skipBlock(child)
			continue
		}
		d.kind(child.Name)
		c.Cameras = append(c.Cameras, decodeCamera(child))
	}
	return c
}

func decodeCamera(b *keyvalues.Block) *Camera {
	c := &Camera{}
	d := decoder{&c.layout, &c.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "position":
			d.text(a, &c.Position)
		case "look":
			d.text(a, &c.Look)
		default:
			d.skip(a)
		}
	}
	d.childrenOnly(b)
	return c
}

func (c *Cameras) block() *keyvalues.Block {
	cams := kind{name: "camera"}
	for _, cam := range c.Cameras {
		attrs := cam.layout.attributes(strField("position", cam.Position), strField("look", cam.Look))
		cams.blocks = append(cams.blocks, build("camera", attrs, nil, &cam.Passthrough))
	}
	attrs := c.layout.attributes(intField("activecamera", c.ActiveCamera))
	return build("cameras", attrs, c.layout.children(cams), &c.Passthrough)
}

func (c *Cameras) empty() bool {
	return c.ActiveCamera == 0 && len(c.Cameras) == 0 && len(c.layout.keys) == 0 && c.Passthrough.Len() == 0
}

// Cordons is the cordons block: the active flag and the cordon list.
type Cordons struct {
	Active  bool
	Cordons []*Cordon

	Passthrough Passthrough
	layout      layout
}

// Cordon restricts compilation to a set of boxes. Files from older editors
// write a single top-level cordon with Mins and Maxs set directly.
type Cordon struct {
	Name   string
	Active bool
	Boxes  []*CordonBox
	Mins   string
	Maxs   string

	Passthrough Passthrough
	layout      layout
}

// CordonBox is an axis-aligned box given by two raw "(x y z)" corners.
type CordonBox struct {
	Mins string
	Maxs string

	Passthrough Passthrough
	layout      layout
}

// NewCordonBox creates a box from two corners.
func NewCordonBox(mins, maxs Vec3) *CordonBox {
	return &CordonBox{Mins: "(" + mins.String() + ")", Maxs: "(" + maxs.String() + ")"}
}

// Bounds parses both corners.
func (b *CordonBox) Bounds() (mins, maxs Vec3, err error) {
	if mins, err = ParseVec3(b.Mins); err != nil {
		return
	}
	maxs, err = ParseVec3(b.Maxs)
	return
}

func decodeCordons(b *keyvalues.Block) Cordons {
	var c Cordons
	d := decoder{&c.layout, &c.Passthrough}
	for _, a := range b.Attributes {
		if a.Key == "active" {
			d.flag(a, &c.Active)
			continue
		}
		d.skip(a)
	}
	for _, child := range b.Children {
		if child.Name != "cordon" {
			d.skipBlock(child)
			continue
		}
		d.kind(child.Name)
		c.Cordons = append(c.Cordons, decodeCordon(child))
	}
	return c
}

func decodeCordon(b *keyvalues.Block) *Cordon {
	c := &Cordon{}
	d := decoder{&c.layout, &c.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "name":
			d.text(a, &c.Name)
		case "active":
			d.flag(a, &c.Active)
		case "mins":
			d.text(a, &c.Mins)
		case "maxs":
			d.text(a, &c.Maxs)
		default:
			d.skip(a)
		}
	}
	for _, child := range b.Children {
		if child.Name != "box" {
			d.skipBlock(child)
			continue
		}
		d.kind(child.Name)
		c.Boxes = append(c.Boxes, decodeCordonBox(child))
	}
	return c
}

func decodeCordonBox(b *keyvalues.Block) *CordonBox {
	box := &CordonBox{}
	d := decoder{&box.layout, &box.Passthrough}
	for _, a := range b.Attributes {
		switch a.Key {
		case "mins":
			d.text(a, &box.Mins)
		case "maxs":
			d.text(a, &box.Maxs)
		default:
			d.skip(a)
		}
	}
	d.childrenOnly(b)
	return box
}

func (c *Cordons) block() *keyvalues.Block {
	attrs := c.layout.attributes(boolField("active", c.Active))
	return build("cordons", attrs, c.layout.children(cordonKind(c.Cordons)), &c.Passthrough)
}

func (c *Cordons) empty() bool {
	return !c.Active && len(c.Cordons) == 0 && len(c.layout.keys) == 0 && c.Passthrough.Len() == 0
}

func (c *Cordon) block() *keyvalues.Block {
	attrs := c.layout.attributes(
		strField("name", c.Name),
		boolField("active", c.Active),
		strField("mins", c.Mins),
		strField("maxs", c.Maxs),
	)
	boxes := kind{name: "box"}
	for _, box := range c.Boxes {
		boxAttrs := box.layout.attributes(strField("mins", box.Mins), strField("maxs", box.Maxs))
		boxes.blocks = append(boxes.blocks, build("box", boxAttrs, nil, &box.Passthrough))
	}
	return build("cordon", attrs, c.layout.children(boxes), &c.Passthrough)
}

func cordonKind(cordons []*Cordon) kind {
	k := kind{name: "cordon"}
	for _, c := range cordons {
		k.blocks = append(k.blocks, c.block())
	}
	return k
}
