// Package metadata describes the coala-quickstart Python distribution.
package metadata

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Version of the coala-quickstart distribution
const Version = "0.4.0"

const (
	RequirementsFile     = "requirements.txt"
	TestRequirementsFile = "test-requirements.txt"
	ReadmeFile           = "README.rst"
)

// Person is an author or maintainer
type Person struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Package contains everything needed to build and publish the distribution
type Package struct {
	Name             string              `json:"name" yaml:"name"`
	Version          string              `json:"version" yaml:"version"`
	Description      string              `json:"description" yaml:"description"`
	Author           Person              `json:"author" yaml:"author"`
	Maintainers      []Person            `json:"maintainers" yaml:"maintainers"`
	URL              string              `json:"url" yaml:"url"`
	License          string              `json:"license" yaml:"license"`
	Platforms        string              `json:"platforms" yaml:"platforms"`
	Classifiers      []string            `json:"classifiers" yaml:"classifiers"`
	Requirements     []string            `json:"install_requires" yaml:"install_requires"`
	TestRequirements []string            `json:"tests_require" yaml:"tests_require"`
	Packages         []string            `json:"packages" yaml:"packages"`
	PackageData      map[string][]string `json:"package_data" yaml:"package_data"`
	EntryPoints      map[string][]string `json:"entry_points" yaml:"entry_points"`
	LongDescription  string              `json:"long_description" yaml:"long_description"`
}

// PackageExcludes are never reported as distribution packages
var PackageExcludes = []string{"build.*", "tests", "tests.*"}

var classifiers = []string{
	"Development Status :: 4 - Beta",

	"Environment :: Console",
	"Environment :: MacOS X",
	"Environment :: Win32 (MS Windows)",
	"Environment :: X11 Applications :: Gnome",

	"Intended Audience :: Science/Research",
	"Intended Audience :: Developers",

	"License :: OSI Approved :: GNU Affero General Public License v3 or later (AGPLv3+)",

	"Operating System :: OS Independent",

	"Programming Language :: Python :: Implementation :: CPython",
	"Programming Language :: Python :: 3.4",
	"Programming Language :: Python :: 3.5",
	"Programming Language :: Python :: 3 :: Only",

	"Topic :: Scientific/Engineering :: Information Analysis",
	"Topic :: Software Development :: Quality Assurance",
	"Topic :: Text Processing :: Linguistic",
}

// New returns the record with all fixed values set. Requirements, packages and the long
// description are left empty.
func New() *Package {
	return &Package{
		Name:        "coala-quickstart",
		Version:     Version,
		Description: "A quickstart tool for coala",
		Author: Person{
			Name:  "The coala developers",
			Email: "coala.analyzer@gmail.com",
		},
		Maintainers: []Person{
			{Name: "Satwik Kansal", Email: "satwikkansal@gmail.com"},
			{Name: "Adrian Zatreanu", Email: "adrianzatreanu1@gmail.com"},
			{Name: "Alexandros Dimos", Email: "alexandros.dimos.95@gmail.com"},
			{Name: "Adhityaa Chandrasekar", Email: "c.adhityaa@gmail.com"},
		},
		URL:         "https://github.com/coala/coala-quickstart",
		License:     "AGPL-3.0",
		Platforms:   "any",
		Classifiers: append([]string(nil), classifiers...),
		PackageData: map[string][]string{
			"coala_quickstart": {"VERSION"},
		},
		EntryPoints: map[string][]string{
			"console_scripts": {"coala-quickstart = coala_quickstart.coala_quickstart:main"},
		},
	}
}

// Load builds the record for the project in root. All three input files are required.
func Load(root string) (*Package, error) {
	pkg := New()

	var err error
	pkg.Requirements, err = readLines(filepath.Join(root, RequirementsFile))
	if err != nil {
		return nil, err
	}

	pkg.TestRequirements, err = readLines(filepath.Join(root, TestRequirementsFile))
	if err != nil {
		return nil, err
	}

	readme, err := ioutil.ReadFile(filepath.Join(root, ReadmeFile))
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", ReadmeFile)
	}
	pkg.LongDescription = string(readme)

	pkg.Packages, err = FindPackages(root, PackageExcludes)
	if err != nil {
		return nil, err
	}

	return pkg, nil
}

// ConsoleScripts returns the parsed console_scripts entry points
func (p *Package) ConsoleScripts() ([]EntryPoint, error) {
	specs := p.EntryPoints["console_scripts"]
	result := make([]EntryPoint, 0, len(specs))
	for _, spec := range specs {
		ep, err := ParseEntryPoint(spec)
		if err != nil {
			return nil, err
		}

		result = append(result, ep)
	}

	return result, nil
}

func readLines(path string) ([]string, error) {
	content, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read %s", filepath.Base(path))
	}

	return SplitLines(string(content)), nil
}

// SplitLines splits text at \n, \r\n and \r. A trailing line break doesn't produce an empty line.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")

	if text == "" {
		return []string{}
	}

	return strings.Split(text, "\n")
}
