package graph

import (
	"path/filepath"
	"testing"
)

func TestArtifactRoundTrip(t *testing.T) {
	g := chainGraph()
	key := ArtifactKey{Region: "tight", RadiusKm: 10, NetworkType: "walking", SchemaVersion: SchemaVersion}
	path := filepath.Join(t.TempDir(), key.Filename())

	if err := SaveArtifact(g, key, path); err != nil {
		t.Fatalf("SaveArtifact returned error: %v", err)
	}

	loaded, ok, err := LoadArtifact(key, path)
	if err != nil {
		t.Fatalf("LoadArtifact returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected artifact to load")
	}
	if loaded.NodeCount() != g.NodeCount() {
		t.Errorf("expected %d nodes, got %d", g.NodeCount(), loaded.NodeCount())
	}

	path2, lengthM, err := loaded.ShortestPath(1, 3)
	if err != nil {
		t.Fatalf("ShortestPath on loaded graph returned error: %v", err)
	}
	if !equalPath(path2, []int64{1, 2, 3}) || lengthM != 300 {
		t.Errorf("loaded graph lost structure: path %v length %v", path2, lengthM)
	}
}

func TestLoadArtifactMissing(t *testing.T) {
	key := ArtifactKey{Region: "tight", RadiusKm: 10, NetworkType: "walking", SchemaVersion: SchemaVersion}

	_, ok, err := LoadArtifact(key, filepath.Join(t.TempDir(), "absent.gob"))
	if err != nil {
		t.Fatalf("missing artifact should not error: %v", err)
	}
	if ok {
		t.Fatal("missing artifact should not load")
	}
}

func TestLoadArtifactKeyMismatch(t *testing.T) {
	g := chainGraph()
	saved := ArtifactKey{Region: "tight", RadiusKm: 10, NetworkType: "walking", SchemaVersion: SchemaVersion}
	path := filepath.Join(t.TempDir(), "graph.gob")

	if err := SaveArtifact(g, saved, path); err != nil {
		t.Fatalf("SaveArtifact returned error: %v", err)
	}

	// A different key must ignore the artifact, never migrate it
	other := ArtifactKey{Region: "wide", NetworkType: "walking", SchemaVersion: SchemaVersion}
	_, ok, err := LoadArtifact(other, path)
	if err != nil {
		t.Fatalf("key mismatch should not error: %v", err)
	}
	if ok {
		t.Fatal("mismatched key should not load")
	}
}

func TestArtifactKeyFilename(t *testing.T) {
	tight := ArtifactKey{Region: "tight", RadiusKm: 10, NetworkType: "walking", SchemaVersion: 1}
	if got := tight.Filename(); got != "graph_tight_10km_walking_v1.gob" {
		t.Errorf("unexpected tight filename %q", got)
	}

	wide := ArtifactKey{Region: "wide", NetworkType: "driving", SchemaVersion: 1}
	if got := wide.Filename(); got != "graph_wide_driving_v1.gob" {
		t.Errorf("unexpected wide filename %q", got)
	}
}
