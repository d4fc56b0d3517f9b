package bramble

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoNodes is returned for a scene document without a root node.
	ErrNoNodes = errors.New("bramble: scene has no nodes")
	// ErrUnknownKind is returned for a node whose kind is not recognized.
	ErrUnknownKind = errors.New("bramble: unknown node kind")
)

// nodeSpec is the YAML form of a node. Pointer fields distinguish "absent"
// from an explicit zero so absent fields keep the constructor defaults.
type nodeSpec struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Position *Vec2      `yaml:"position"`
	Rotation float64    `yaml:"rotation"`
	Scale    *Vec2      `yaml:"scale"`
	Pivot    *Vec2      `yaml:"pivot"`
	Anchor   *Vec2      `yaml:"anchor"`
	Opacity  *float64   `yaml:"opacity"`
	Visible  *bool      `yaml:"visible"`
	Depth    int        `yaml:"depth"`
	Box      *boxSpec   `yaml:"box"`
	Children []nodeSpec `yaml:"children"`
}

type boxSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Color  *Color  `yaml:"color"`
}

// LoadSceneYAML builds a node tree from a YAML scene description. A node
// without an explicit kind is renderable when it has a box and composite
// otherwise.
func LoadSceneYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrNoNodes
	}
	var desc nodeSpec
	if err := doc.Decode(&desc); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	root, err := buildNode(desc, "root")
	if err != nil {
		return nil, err
	}
	root.UpdateWorldMatrix(true)
	return root, nil
}

func buildNode(desc nodeSpec, path string) (*Node, error) {
	if desc.Name != "" {
		path = desc.Name
	}
	var n *Node
	switch desc.Kind {
	case "":
		if desc.Box != nil {
			n = NewRenderable(desc.Name, nil)
		} else {
			n = NewComposite(desc.Name)
		}
	case KindTransform.String():
		n = NewTransform(desc.Name)
	case KindRenderable.String():
		n = NewRenderable(desc.Name, nil)
	case KindComposite.String():
		n = NewComposite(desc.Name)
	default:
		return nil, fmt.Errorf("node %q: %w %q", path, ErrUnknownKind, desc.Kind)
	}

	if desc.Position != nil {
		n.SetPosition(desc.Position.X, desc.Position.Y)
	}
	if desc.Scale != nil {
		n.SetScale(desc.Scale.X, desc.Scale.Y)
	}
	if desc.Pivot != nil {
		n.SetPivot(desc.Pivot.X, desc.Pivot.Y)
	}
	if desc.Anchor != nil {
		n.SetAnchor(desc.Anchor.X, desc.Anchor.Y)
	}
	if desc.Opacity != nil {
		n.SetOpacity(*desc.Opacity)
	}
	if desc.Visible != nil {
		n.SetVisible(*desc.Visible)
	}
	n.SetRotation(desc.Rotation)
	n.SetDepth(desc.Depth)
	if desc.Box != nil {
		color := ColorWhite
		if desc.Box.Color != nil {
			color = *desc.Box.Color
		}
		n.SetContent(Box{Width: desc.Box.Width, Height: desc.Box.Height, Color: color})
	}

	for i, childDesc := range desc.Children {
		child, err := buildNode(childDesc, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}
