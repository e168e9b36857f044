package devtools

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
	"golang.org/x/sync/errgroup"
)

// Dump serializes the current tree snapshot to both YAML and JSON
// concurrently; this is read-only, off the UI thread, so the two
// serializations racing against each other is safe and simply saves
// wall-clock when a devtools client wants both.
func (r *Recorder) Dump() (yamlBytes, jsonBytes []byte, err error) {
	snap := r.Snapshot()

	var g errgroup.Group
	g.Go(func() error {
		var err error
		yamlBytes, err = yaml.Marshal(snap)
		return err
	})
	g.Go(func() error {
		var err error
		jsonBytes, err = json.MarshalIndent(snap, "", "  ")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return yamlBytes, jsonBytes, nil
}

// DumpYAML marshals the current tree snapshot to YAML.
func (r *Recorder) DumpYAML() ([]byte, error) {
	return yaml.Marshal(r.Snapshot())
}
