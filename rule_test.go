package tagger

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTagRules(t *testing.T) {
	raw := `# comment before anything

File Downloaded
  data_type is 'chrome:history:file_downloaded'
  # trailing comment inside a block
  data_type is 'firefox:downloads:download'

Empty Category

Last Block
  plugin is 'mac_appfirewall'
`
	categories, err := readTagRules(strings.NewReader(raw), "tag_test.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	if categories[0].Name != "File Downloaded" {
		t.Fatalf("wrong first category name %s", categories[0].Name)
	}
	if len(categories[0].Expressions) != 2 {
		t.Fatalf("expected 2 expressions, got %d", len(categories[0].Expressions))
	}
	if categories[0].Expressions[0].Line != 4 {
		t.Fatalf("wrong line number %d", categories[0].Expressions[0].Line)
	}
	if len(categories[1].Expressions) != 0 {
		t.Fatal("empty category should carry no expressions")
	}
	if categories[2].Name != "Last Block" {
		t.Fatalf("block without trailing blank line lost, got %s", categories[2].Name)
	}
	for _, c := range categories {
		if c.Path != "tag_test.txt" {
			t.Fatalf("category lost path context, got %s", c.Path)
		}
	}
}

func TestNewRuleFileList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"tag_macos.txt", "tag_extra.yaml", "sub/tag_linux.yml", "sub/notes.md", "README",
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(path, []byte(""), 0644); err != nil {
			t.Fatal(err)
		}
	}
	files, err := NewRuleFileList([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 rule files, got %d: %+v", len(files), files)
	}
}

func TestNewRuleFileListMissingDir(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewRuleFileList([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Fatal("walking a nonexistent directory should surface the error")
	}
}

func TestNewCategoryListBulkErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	bad := filepath.Join(dir, "bad.yaml")
	if err := ioutil.WriteFile(good, []byte("Cat\n  a is 'b'\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(bad, []byte(":\n: ["), 0644); err != nil {
		t.Fatal(err)
	}
	categories, err := NewCategoryList([]string{good, bad}, true)
	if err == nil {
		t.Fatal("broken yaml should be collected as bulk error")
	}
	if _, ok := err.(ErrBulkParse); !ok {
		t.Fatalf("expected ErrBulkParse, got %T", err)
	}
	if len(categories) != 1 {
		t.Fatalf("good file should still parse, got %d categories", len(categories))
	}

	if _, err := NewCategoryList([]string{good, bad}, false); err == nil {
		t.Fatal("strict mode should fail early on broken yaml")
	}
}
