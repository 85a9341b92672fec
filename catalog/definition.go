package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/hydrokit/util"
	"github.com/kbukum/hydrokit/validation"
)

// namePattern constrains tree and node names to lowercase identifiers so
// they are safe in URLs and result keys.
const namePattern = `^[a-z][a-z0-9_-]*$`

// Definition is a YAML-declared hydration tree.
type Definition struct {
	// Name is the tree identifier.
	Name string `yaml:"name" json:"name" validate:"required"`
	// Description is free-form documentation shown by the describe endpoint.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	// Nodes defines the tree's node specifications.
	Nodes []NodeDef `yaml:"nodes" json:"nodes" validate:"required,min=1,dive"`
}

// NodeDef declares one node of a tree. Exactly one of Operation (a registry
// key) or Source (an inline HTTP source) provides the node's fetch step. A
// node without a parent is the tree root.
type NodeDef struct {
	// Name is the unique node identifier within the tree.
	Name string `yaml:"name" json:"name" validate:"required"`
	// Parent names the node this one hangs from; empty for the root.
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`
	// Operation is the registry lookup key for this node's fetch step.
	Operation string `yaml:"operation,omitempty" json:"operation,omitempty"`
	// Source declares an inline HTTP source instead of a registry operation.
	Source *SourceDef `yaml:"source,omitempty" json:"source,omitempty"`
}

// SourceDef declares an HTTP JSON source. The URL may contain {input} and
// {input.field} placeholders, expanded from the operation's input at run
// time.
type SourceDef struct {
	URL     string            `yaml:"url" json:"url" validate:"required,url"`
	Timeout Duration          `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// Duration wraps time.Duration so YAML values like "5s" decode naturally.
type Duration time.Duration

// UnmarshalYAML decodes a duration string such as "500ms" or "5s".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("catalog: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalJSON renders the duration as a string ("5s") instead of nanoseconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the duration as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Redacted returns a copy of the definition with source header values
// masked. Definitions may carry API keys in headers, either inline or as
// ${VAR} references; the describe endpoint must not echo them back.
func (d *Definition) Redacted() *Definition {
	out := *d
	out.Nodes = make([]NodeDef, len(d.Nodes))
	for i, nd := range d.Nodes {
		out.Nodes[i] = nd
		if nd.Source == nil || len(nd.Source.Headers) == 0 {
			continue
		}
		src := *nd.Source
		src.Headers = make(map[string]string, len(nd.Source.Headers))
		for k, v := range nd.Source.Headers {
			src.Headers[k] = util.MaskSecret(v, 4)
		}
		out.Nodes[i].Source = &src
	}
	return &out
}

// Validate checks the definition's structural tags plus the cross-field
// rules tags cannot express: name formats, duplicate node names, parent
// references, and the operation-or-source choice. Root-count and tree-shape
// checks stay with the builder.
func (d *Definition) Validate() error {
	if err := validation.Validate(d); err != nil {
		return err
	}

	v := validation.New()
	v.Pattern("name", d.Name, namePattern)

	names := make(map[string]bool, len(d.Nodes))
	for _, nd := range d.Nodes {
		if names[nd.Name] {
			v.AddError("nodes", fmt.Sprintf("duplicate node name %q", nd.Name))
		}
		names[nd.Name] = true
	}

	for i, nd := range d.Nodes {
		field := fmt.Sprintf("nodes[%d]", i)
		v.Pattern(field+".name", nd.Name, namePattern)
		if nd.Parent != "" && !names[nd.Parent] {
			v.AddError(field+".parent", fmt.Sprintf("references unknown node %q", nd.Parent))
		}
		if nd.Parent != "" && nd.Parent == nd.Name {
			v.AddError(field+".parent", "node cannot be its own parent")
		}
		v.Custom(nd.Operation != "" || nd.Source != nil, field, "needs an operation or a source")
		v.Custom(nd.Operation == "" || nd.Source == nil, field, "operation and source are mutually exclusive")
	}

	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
