package tagger

import (
	"bufio"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// Expression is one raw predicate line belonging to a category
// Line refers to the position in the source tag file for error context
type Expression struct {
	Raw  string
	Line int
}

// Category is a named classification along with raw predicate expressions
// A record is tagged with Name if any single expression matches it
type Category struct {
	Name        string
	Expressions []Expression
}

// CategoryHandle is a meta object containing the raw category, enhanced to
// also hold debugging info from the tool, such as source file path
type CategoryHandle struct {
	Category

	Path string `json:"path"`
}

// NewCategoryList reads a list of tag file paths and parses them to raw
// category objects, format is chosen by file suffix
// skip collects per-file errors for lint tooling instead of failing early
func NewCategoryList(files []string, skip bool) ([]CategoryHandle, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("missing tag file list")
	}
	errs := make([]ErrParse, 0)
	categories := make([]CategoryHandle, 0)
loop:
	for _, path := range files {
		var (
			got []CategoryHandle
			err error
		)
		if strings.HasSuffix(path, "yml") || strings.HasSuffix(path, "yaml") {
			got, err = readYamlTagFile(path)
		} else {
			got, err = readTagFile(path)
		}
		if err != nil {
			if pe, ok := err.(ErrParse); ok && skip {
				errs = append(errs, pe)
				continue loop
			}
			return nil, err
		}
		categories = append(categories, got...)
	}
	return categories, func() error {
		if len(errs) > 0 {
			return ErrBulkParse{Errs: errs}
		}
		return nil
	}()
}

func readTagFile(path string) ([]CategoryHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readTagRules(f, path)
}

// readTagRules extracts raw categories from the line-oriented text format
// a non-blank line opens a category block, following non-blank lines are its
// expressions, a blank line closes the block, # lines are comments
func readTagRules(r io.Reader, path string) ([]CategoryHandle, error) {
	categories := make([]CategoryHandle, 0)
	var current *CategoryHandle
	var num int

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		num++
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			if current != nil {
				categories = append(categories, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &CategoryHandle{
				Category: Category{Name: line},
				Path:     path,
			}
			continue
		}
		current.Expressions = append(current.Expressions, Expression{
			Raw:  line,
			Line: num,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if current != nil {
		categories = append(categories, *current)
	}
	return categories, nil
}

// readYamlTagFile extracts raw categories from the alternative yaml format
// where each document is a mapping of category name to expression list
func readYamlTagFile(path string) ([]CategoryHandle, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, ErrParse{Path: path, Err: err}
	}
	categories := make([]CategoryHandle, 0, len(raw))
	for name, exprs := range raw {
		c := CategoryHandle{
			Category: Category{Name: name},
			Path:     path,
		}
		for _, expr := range exprs {
			c.Expressions = append(c.Expressions, Expression{Raw: expr})
		}
		categories = append(categories, c)
	}
	// yaml maps have no stable order
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Result is an object returned on positive category match
type Result struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Results should be returned when single record matches multiple categories
type Results []Result

// Tags extracts plain category labels for attaching to a matched record
func (r Results) Tags() []string {
	tx := make([]string, 0, len(r))
	for _, res := range r {
		tx = append(tx, res.Name)
	}
	return tx
}

// NewRuleFileList finds all tag rule files from defined root directories
// Subtree is scanned recursively
// No file validation, other than suffix matching
func NewRuleFileList(dirs []string) ([]string, error) {
	out := make([]string, 0)
	for _, dir := range dirs {
		if err := filepath.Walk(dir, func(
			path string,
			info os.FileInfo,
			err error,
		) error {
			if err != nil {
				return err
			}
			if !info.IsDir() && hasTagSuffix(path) {
				out = append(out, path)
			}
			return nil
		}); err != nil {
			return out, err
		}
	}
	return out, nil
}

func hasTagSuffix(path string) bool {
	return strings.HasSuffix(path, "txt") ||
		strings.HasSuffix(path, "yml") ||
		strings.HasSuffix(path, "yaml")
}
