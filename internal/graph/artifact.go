package graph

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SchemaVersion identifies the on-disk artifact layout. Artifacts with a
// different version are ignored, never migrated.
const SchemaVersion = 1

// ArtifactKey identifies a persisted graph artifact
type ArtifactKey struct {
	Region        string  // "tight" or "wide"
	RadiusKm      float64 // 0 for wide preset regions
	NetworkType   string  // "walking" or "driving"
	SchemaVersion int
}

// Filename returns the artifact file name for this key
func (k ArtifactKey) Filename() string {
	region := k.Region
	if k.Region != "wide" {
		region = fmt.Sprintf("%s_%.0fkm", k.Region, k.RadiusKm)
	}
	return fmt.Sprintf("graph_%s_%s_v%d.gob", region, k.NetworkType, k.SchemaVersion)
}

// artifact is the gob-encoded on-disk representation
type artifact struct {
	Key   ArtifactKey
	Nodes map[int64]Node
	Adj   map[int64][]Edge
}

// SaveArtifact persists the graph to path atomically (write to a temp file in
// the same directory, then rename)
func SaveArtifact(g *Graph, key ArtifactKey, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	enc := gob.NewEncoder(tmp)
	if err := enc.Encode(artifact{Key: key, Nodes: g.Nodes, Adj: g.Adj}); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to encode graph artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename artifact into place: %w", err)
	}
	return nil
}

// LoadArtifact reads a graph artifact from path. A missing file or a key
// mismatch returns (nil, false, nil): stale artifacts are ignored
func LoadArtifact(key ArtifactKey, path string) (*Graph, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open graph artifact: %w", err)
	}
	defer f.Close()

	var a artifact
	dec := gob.NewDecoder(f)
	if err := dec.Decode(&a); err != nil {
		// Corrupt or foreign file; treat as absent
		return nil, false, nil
	}
	if a.Key != key {
		return nil, false, nil
	}

	return &Graph{Nodes: a.Nodes, Adj: a.Adj}, true, nil
}

// ArtifactPath resolves the artifact location: an explicit path wins, a
// directory gets the key's canonical filename appended
func ArtifactPath(preferred, dir string, key ArtifactKey) string {
	if preferred != "" {
		if strings.HasSuffix(preferred, ".gob") {
			return preferred
		}
		return filepath.Join(preferred, key.Filename())
	}
	return filepath.Join(dir, key.Filename())
}
