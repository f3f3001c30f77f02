package datastore

import (
	"bytes"
	"path"
	"strings"
	"testing"
)

func TestBucketRoundtrip(t *testing.T) {
	mgr, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	src := []byte("print(sum(map(int, input().split())))\n")
	if err := mgr.Sources().WriteFile("some-uuid", bytes.NewReader(src), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := mgr.Sources().ReadFile("some-uuid")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("read back %q, wanted %q", got, src)
	}

	if err := mgr.Sources().RemoveFile("some-uuid"); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Sources().Stat("some-uuid"); err == nil {
		t.Error("removed file should not stat")
	}
}

func TestBucketPathEscape(t *testing.T) {
	root := t.TempDir()
	b := Bucket{RootPath: root, Name: "sources"}
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	got := b.filePath("../../etc/passwd")
	if !strings.HasPrefix(got, path.Join(root, "sources")+"/") {
		t.Errorf("bucket path escaped its directory: %q", got)
	}
	if strings.Count(got, "/") != strings.Count(path.Join(root, "sources", "x"), "/") {
		t.Errorf("object name should flatten to a single path element: %q", got)
	}
}
