package main

import (
	"os"
	"path/filepath"

	"github.com/milk9111/witchwood/prefabs"
)

// reload applies a changed prefab file to the running sim. Scene and player
// prefabs are only read at startup.
func (r *runner) reload(path string) error {
	base := filepath.Base(path)
	if prefabs.IsScript(path) {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return r.sim.ReloadScript(base, src)
	}
	if base != filepath.Base(r.witchName) {
		r.log.WithField("path", path).Info("change needs a restart to apply")
		return nil
	}
	spec, err := prefabs.LoadWitchSpec(r.witchName)
	if err != nil {
		return err
	}
	return r.sim.ReloadWitch(spec)
}
