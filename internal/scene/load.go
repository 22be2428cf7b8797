package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a scene.
//
//	transforms:
//	  - name: Sphere
//	    position: [0, 0, 10]
//	    rotation: [1, 0, 0, 0]   # quaternion w, x, y, z
//	    mesh: Sphere
//	cameras:
//	  - transform: Camera
//	    fovy: 60                 # degrees
type File struct {
	Transforms []TransformSpec `yaml:"transforms"`
	Cameras    []CameraSpec    `yaml:"cameras"`
}

// TransformSpec describes one node.
type TransformSpec struct {
	Name     string     `yaml:"name"`
	Parent   string     `yaml:"parent,omitempty"`
	Position [3]float32 `yaml:"position"`
	Rotation []float32  `yaml:"rotation,omitempty"`
	Scale    []float32  `yaml:"scale,omitempty"`
	Mesh     string     `yaml:"mesh,omitempty"`
}

// CameraSpec describes a camera attached to a named transform.
type CameraSpec struct {
	Transform string  `yaml:"transform"`
	FovY      float32 `yaml:"fovy"`
	Aspect    float32 `yaml:"aspect,omitempty"`
	Near      float32 `yaml:"near,omitempty"`
}

// Load reads and parses a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: failed to read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML.
func Parse(data []byte) (*Scene, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scene: failed to parse: %w", err)
	}
	return f.Build()
}

// Build turns the decoded file into a linked scene.
func (f File) Build() (*Scene, error) {
	s := &Scene{}
	byName := make(map[string]*Transform, len(f.Transforms))

	for i, spec := range f.Transforms {
		if spec.Name == "" {
			return nil, fmt.Errorf("scene: transform %d has no name", i)
		}
		t := NewTransform(spec.Name)
		t.Position = mgl32.Vec3(spec.Position)

		switch len(spec.Rotation) {
		case 0:
		case 4:
			q := mgl32.Quat{W: spec.Rotation[0], V: mgl32.Vec3{spec.Rotation[1], spec.Rotation[2], spec.Rotation[3]}}
			if q.Len() == 0 {
				return nil, fmt.Errorf("scene: transform %q has a zero rotation", spec.Name)
			}
			t.Rotation = q.Normalize()
		default:
			return nil, fmt.Errorf("scene: transform %q rotation needs 4 components, got %d", spec.Name, len(spec.Rotation))
		}

		switch len(spec.Scale) {
		case 0:
		case 1:
			t.Scale = mgl32.Vec3{spec.Scale[0], spec.Scale[0], spec.Scale[0]}
		case 3:
			t.Scale = mgl32.Vec3{spec.Scale[0], spec.Scale[1], spec.Scale[2]}
		default:
			return nil, fmt.Errorf("scene: transform %q scale needs 1 or 3 components, got %d", spec.Name, len(spec.Scale))
		}

		// First node wins on duplicate names, matching Find.
		if _, dup := byName[spec.Name]; !dup {
			byName[spec.Name] = t
		}
		s.Transforms = append(s.Transforms, t)
		if spec.Mesh != "" {
			s.Drawables = append(s.Drawables, Drawable{Transform: t, Mesh: spec.Mesh})
		}
	}

	for i, spec := range f.Transforms {
		if spec.Parent == "" {
			continue
		}
		p, ok := byName[spec.Parent]
		if !ok {
			return nil, fmt.Errorf("scene: transform %q has unknown parent %q", spec.Name, spec.Parent)
		}
		s.Transforms[i].Parent = p
	}
	for _, t := range s.Transforms {
		if hasCycle(t) {
			return nil, fmt.Errorf("scene: transform %q is its own ancestor", t.Name)
		}
	}

	for _, spec := range f.Cameras {
		t, ok := byName[spec.Transform]
		if !ok {
			return nil, fmt.Errorf("scene: camera references unknown transform %q", spec.Transform)
		}
		fovy := spec.FovY
		if fovy <= 0 {
			fovy = 60
		}
		cam := &Camera{
			Transform: t,
			FovY:      mgl32.DegToRad(fovy),
			Aspect:    spec.Aspect,
			Near:      spec.Near,
		}
		if cam.Aspect <= 0 {
			cam.Aspect = 1
		}
		if cam.Near <= 0 {
			cam.Near = 0.01
		}
		s.Cameras = append(s.Cameras, cam)
	}

	return s, nil
}

func hasCycle(t *Transform) bool {
	slow, fast := t, t
	for fast != nil && fast.Parent != nil {
		slow = slow.Parent
		fast = fast.Parent.Parent
		if slow == fast {
			return true
		}
	}
	return false
}
