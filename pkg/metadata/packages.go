package metadata

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/pattern"
)

func compileExcludes(excludes []string) ([]*regexp.Regexp, error) {
	result := make([]*regexp.Regexp, len(excludes))
	for idx, item := range excludes {
		expr, err := pattern.Regexp(item, 0)
		if err != nil {
			return nil, eris.Wrapf(err, "invalid exclude pattern %s", item)
		}

		result[idx], err = regexp.Compile("^" + expr + "$")
		if err != nil {
			return nil, eris.Wrapf(err, "invalid exclude pattern %s", item)
		}
	}

	return result, nil
}

func isPackageDir(path string) (bool, error) {
	info, err := os.Stat(filepath.Join(path, "__init__.py"))
	if err == nil {
		return info.Mode().IsRegular(), nil
	}

	if eris.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, eris.Wrapf(err, "Failed to check %s", path)
}

// FindPackages returns the dotted names of all Python packages below root. Only directories with
// an __init__.py (and without dots in their name) are searched. Packages matching one of the
// exclude patterns are left out but their sub-packages are still reported unless they're excluded too.
func FindPackages(root string, excludes []string) ([]string, error) {
	matchers, err := compileExcludes(excludes)
	if err != nil {
		return nil, err
	}

	result := []string{}
	err = findPackagesIn(root, "", matchers, &result)
	if err != nil {
		return nil, err
	}

	sort.Strings(result)
	return result, nil
}

func findPackagesIn(dir, prefix string, matchers []*regexp.Regexp, result *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return eris.Wrapf(err, "Failed to read dir %s", dir)
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.Contains(entry.Name(), ".") {
			continue
		}

		fullPath := filepath.Join(dir, entry.Name())
		isPkg, err := isPackageDir(fullPath)
		if err != nil {
			return err
		}
		if !isPkg {
			continue
		}

		name := prefix + entry.Name()
		excluded := false
		for _, matcher := range matchers {
			if matcher.MatchString(name) {
				excluded = true
				break
			}
		}

		if !excluded {
			*result = append(*result, name)
		}

		err = findPackagesIn(fullPath, name+".", matchers, result)
		if err != nil {
			return err
		}
	}

	return nil
}
