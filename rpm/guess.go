package rpm

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/saracen/walker"
)

// Spec discovery errors
var (
	ErrNoSpecFile = errors.New("no spec file found")
)

// GuessSpecFile locates the spec file of a packaging directory. A unique
// *.spec candidate is returned directly; with several candidates the
// preferred basename decides, otherwise the lookup fails.
func GuessSpecFile(dir string, recursive bool, preferred string) (string, error) {
	candidates, err := findSpecFiles(dir, recursive)
	if err != nil {
		return "", err
	}

	if preferred != "" {
		for _, candidate := range candidates {
			if filepath.Base(candidate) == preferred {
				return candidate, nil
			}
		}
	}

	switch len(candidates) {
	case 0:
		return "", errors.Wrap(ErrNoSpecFile, dir)
	case 1:
		return candidates[0], nil
	}
	return "", errors.Errorf("multiple spec files found in %s, don't know which to use", dir)
}

func findSpecFiles(dir string, recursive bool) ([]string, error) {
	var (
		found []string
		lock  sync.Mutex
	)

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".spec") {
				found = append(found, filepath.Join(dir, entry.Name()))
			}
		}
		return found, nil
	}

	err := walker.Walk(dir, func(path string, info os.FileInfo) error {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".spec") {
			return nil
		}
		lock.Lock()
		defer lock.Unlock()
		found = append(found, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// walker visits files concurrently, keep the result deterministic
	sort.Strings(found)
	return found, nil
}
