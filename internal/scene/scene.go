// Package scene holds the transform hierarchy a level is played in.
// The scene owns every node; gameplay code keeps pointers resolved once at
// session start and mutates node fields in place.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a named node positioned relative to its parent.
type Transform struct {
	Name     string
	Parent   *Transform
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns an identity transform with the given name.
func NewTransform(name string) *Transform {
	return &Transform{
		Name:     name,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// LocalToParent returns the matrix taking local coordinates into the parent frame
// (translate * rotate * scale).
func (t *Transform) LocalToParent() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// LocalToWorld composes LocalToParent up the parent chain.
func (t *Transform) LocalToWorld() mgl32.Mat4 {
	m := t.LocalToParent()
	for p := t.Parent; p != nil; p = p.Parent {
		m = p.LocalToParent().Mul4(m)
	}
	return m
}

// WorldPosition returns the node origin in world coordinates.
func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.LocalToWorld().Col(3).Vec3()
}

// Right is the node's local +X axis expressed in the parent frame.
func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Up is the node's local +Y axis expressed in the parent frame.
func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Forward is the node's local -Z axis expressed in the parent frame.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Camera views the scene from a transform. FovY is in radians.
type Camera struct {
	Transform *Transform
	FovY      float32
	Aspect    float32
	Near      float32
}

// Drawable attaches a named mesh to a transform for presentation.
type Drawable struct {
	Transform *Transform
	Mesh      string
}

// Scene is the full set of nodes, cameras and drawables of a level.
type Scene struct {
	Transforms []*Transform
	Cameras    []*Camera
	Drawables  []Drawable
}

// Find returns the first transform with exactly the given name, or nil.
func (s *Scene) Find(name string) *Transform {
	for _, t := range s.Transforms {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Clone deep-copies the scene, rewiring parent, camera and drawable references
// to the copied nodes. Each play session mutates its own clone.
func (s *Scene) Clone() *Scene {
	remap := make(map[*Transform]*Transform, len(s.Transforms))
	out := &Scene{
		Transforms: make([]*Transform, 0, len(s.Transforms)),
		Cameras:    make([]*Camera, 0, len(s.Cameras)),
		Drawables:  make([]Drawable, 0, len(s.Drawables)),
	}

	for _, t := range s.Transforms {
		c := *t
		remap[t] = &c
		out.Transforms = append(out.Transforms, &c)
	}
	for _, t := range out.Transforms {
		if t.Parent != nil {
			t.Parent = remap[t.Parent]
		}
	}
	for _, cam := range s.Cameras {
		c := *cam
		c.Transform = remap[cam.Transform]
		out.Cameras = append(out.Cameras, &c)
	}
	for _, d := range s.Drawables {
		out.Drawables = append(out.Drawables, Drawable{Transform: remap[d.Transform], Mesh: d.Mesh})
	}
	return out
}
