package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// StagedFile represents a file to be staged for testing.
type StagedFile struct {
	Name    string
	Content string
}

// genValidFileName generates lowercase file names safe on every platform.
func genValidFileName() gopter.Gen {
	return gen.IntRange(4, 15).FlatMap(func(length interface{}) gopter.Gen {
		n := length.(int)
		return gen.SliceOfN(n, gen.Rune()).Map(func(runes []rune) string {
			for i := range runes {
				runes[i] = 'a' + (runes[i] % 26)
			}
			return "file_" + string(runes) + ".txt"
		})
	}, reflect.TypeOf(""))
}

// genFileContent generates line-based file content.
func genFileContent() gopter.Gen {
	return gen.SliceOfN(5, gen.AlphaString()).Map(func(lines []string) string {
		return "x" + strings.Join(lines, "\n") + "\n"
	})
}

// genStagedFiles generates 1-5 uniquely named files.
func genStagedFiles() gopter.Gen {
	return gen.IntRange(1, 5).FlatMap(func(count interface{}) gopter.Gen {
		n := count.(int)
		return gen.SliceOfN(n, gopter.CombineGens(genValidFileName(), genFileContent()).
			Map(func(values []interface{}) StagedFile {
				return StagedFile{Name: values[0].(string), Content: values[1].(string)}
			})).Map(func(files []StagedFile) []StagedFile {
			seen := make(map[string]bool)
			unique := make([]StagedFile, 0, len(files))
			for _, f := range files {
				if !seen[f.Name] {
					seen[f.Name] = true
					unique = append(unique, f)
				}
			}
			return unique
		})
	}, reflect.TypeOf([]StagedFile{}))
}

// runGitCmd runs a git command in the specified directory.
func runGitCmd(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %v: %w: %s", args, err, output)
	}
	return nil
}

func TestStagedDiffRetrieval_Property(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	parameters.Rng.Seed(42)

	properties := gopter.NewProperties(parameters)

	properties.Property("every staged file appears in the diff and its stats", prop.ForAll(
		func(files []StagedFile) bool {
			dir, err := os.MkdirTemp("", "aicommit-property-*")
			if err != nil {
				return false
			}
			defer os.RemoveAll(dir)

			if err := runGitCmd(dir, "init"); err != nil {
				t.Log(err)
				return false
			}

			totalLines := 0
			for _, f := range files {
				if err := os.WriteFile(filepath.Join(dir, f.Name), []byte(f.Content), 0644); err != nil {
					return false
				}
				totalLines += strings.Count(f.Content, "\n")
			}
			if err := runGitCmd(dir, "add", "."); err != nil {
				t.Log(err)
				return false
			}

			diff, err := NewClientWithWorkDir(dir).StagedDiff(context.Background())
			if err != nil {
				t.Log(err)
				return false
			}

			for _, f := range files {
				if !strings.Contains(diff, "b/"+f.Name) {
					return false
				}
			}

			stats := ParseDiff(diff)
			return stats.TotalFiles == len(files) &&
				stats.TotalAdditions == totalLines &&
				stats.TotalDeletions == 0
		},
		genStagedFiles(),
	))

	properties.TestingRun(t)
}
