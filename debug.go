package jsonstream

import (
	"os"

	"sigs.k8s.io/yaml"
)

// debugDumper writes a YAML snapshot of every registered sink to a file
// after each fragment is drained, in the spirit of this ecosystem's
// debug.yaml dumps: cheap, file-based, and always overwritten so the last
// write reflects the latest state even if the process later panics.
type debugDumper struct {
	path string
}

func newDebugDumper(path string) *debugDumper {
	if path == "" {
		path = "debug.yaml"
	}
	return &debugDumper{path: path}
}

func (d *debugDumper) dump(c *Controller) {
	c.mu.Lock()
	snapshot := make(map[string]any, len(c.sinks))
	for path, s := range c.sinks {
		key := path.String()
		if key == "" {
			key = "$root"
		}
		snapshot[key] = s.DebugSnapshot()
	}
	c.mu.Unlock()

	if out, err := yaml.Marshal(snapshot); err == nil {
		os.WriteFile(d.path, out, 0644)
	}
}
