package imports_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNoLegacyFrameworkOrDroppedDepsImported guards against two kinds of
// regression: a stray reference to the pre-rename module path, and a
// reintroduced import of a dependency this repository deliberately
// dropped (see DESIGN.md).
func TestNoLegacyFrameworkOrDroppedDepsImported(t *testing.T) {
	root := filepath.Clean("../..")
	forbidden := []string{
		"github.com/leeforge/framework",
		"entgo.io/ent",
		"github.com/aliyun/aliyun-oss-go-sdk",
		"github.com/casbin/casbin",
		"github.com/go-chi/chi",
		"github.com/go-redis/redis",
		"github.com/nfnt/resize",
		"golang.org/x/text",
	}
	var hits []string

	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.Contains(path, "/internaltests/") || strings.Contains(path, "/_examples/") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		b, _ := os.ReadFile(path)
		content := string(b)
		for _, k := range forbidden {
			if strings.Contains(content, k) {
				hits = append(hits, path+": "+k)
				break
			}
		}
		return nil
	})

	if len(hits) > 0 {
		t.Fatalf("forbidden imports found: %v", hits[:min(10, len(hits))])
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
