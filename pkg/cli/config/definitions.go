package config

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/content"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// DefinitionFile is the TOML layout of capability definitions. Content may
// be split over several files in one directory; they are merged in file
// name order.
type DefinitionFile struct {
	Version             string       `toml:"version"`
	PartialCreditWeight *float64     `toml:"partial_credit_weight"`
	Domains             []Domain     `toml:"domains"`
	Capabilities        []Capability `toml:"capabilities"`
}

// Domain represents a business domain configuration
type Domain struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Layer string `toml:"layer"`
}

// Validate checks if the Domain is valid
func (d *Domain) Validate() error {
	if err := types.DomainID(d.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid domain ID")
	}
	if d.Name == "" {
		return goerr.Wrap(ErrInvalidDefinition, "domain name is required", goerr.V(DomainIDKey, d.ID))
	}
	if _, err := types.ParseLayer(d.Layer); err != nil {
		return goerr.Wrap(err, "invalid domain layer", goerr.V(DomainIDKey, d.ID))
	}
	return nil
}

// Capability represents a capability area configuration
type Capability struct {
	ID          string               `toml:"id"`
	Domain      string               `toml:"domain"`
	Area        string               `toml:"area"`
	Description string               `toml:"description"`
	Dimensions  map[string]Dimension `toml:"dimensions"`
}

// Dimension is the content of one ORBIT dimension of a capability
type Dimension struct {
	Description string      `toml:"description"`
	Levels      []string    `toml:"levels"`
	Checklists  []Checklist `toml:"checklists"`
}

// Checklist holds the confirmable items of one maturity level
type Checklist struct {
	Level     int      `toml:"level"`
	Questions []string `toml:"questions"`
	Evidence  []string `toml:"evidence"`
}

// Validate checks if the Capability is valid
func (c *Capability) Validate() error {
	if err := types.CapabilityID(c.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid capability ID")
	}
	if c.Area == "" {
		return goerr.Wrap(ErrInvalidDefinition, "capability area name is required", goerr.V(CapabilityIDKey, c.ID))
	}

	for name, dim := range c.Dimensions {
		if _, err := types.ParseDimensionID(name); err != nil {
			return goerr.Wrap(err, "unknown dimension", goerr.V(CapabilityIDKey, c.ID))
		}
		if len(dim.Levels) != 0 && len(dim.Levels) != types.MaxMaturityLevel {
			return goerr.Wrap(ErrInvalidDefinition, "levels must describe all five maturity levels",
				goerr.V(CapabilityIDKey, c.ID), goerr.V(DimensionKey, name), goerr.V("count", len(dim.Levels)))
		}

		seen := make(map[int]bool)
		for _, cl := range dim.Checklists {
			if cl.Level < types.MinMaturityLevel || cl.Level > types.MaxMaturityLevel {
				return goerr.Wrap(ErrInvalidChecklist, "checklist level out of range",
					goerr.V(CapabilityIDKey, c.ID), goerr.V(DimensionKey, name), goerr.V(ChecklistLevelKey, cl.Level))
			}
			if seen[cl.Level] {
				return goerr.Wrap(ErrInvalidChecklist, "checklist defined twice for a level",
					goerr.V(CapabilityIDKey, c.ID), goerr.V(DimensionKey, name), goerr.V(ChecklistLevelKey, cl.Level))
			}
			seen[cl.Level] = true

			for _, item := range append(append([]string{}, cl.Questions...), cl.Evidence...) {
				if strings.TrimSpace(item) == "" {
					return goerr.Wrap(ErrInvalidChecklist, "checklist item is empty",
						goerr.V(CapabilityIDKey, c.ID), goerr.V(DimensionKey, name), goerr.V(ChecklistLevelKey, cl.Level))
				}
			}
		}
	}
	return nil
}

// Validate checks if the DefinitionFile is valid
func (f *DefinitionFile) Validate() error {
	if w := f.PartialCreditWeight; w != nil && (*w <= 0 || *w >= 1) {
		return goerr.Wrap(ErrInvalidWeight, "invalid partial credit weight", goerr.V("weight", *w))
	}

	domainIDs := make(map[string]bool)
	for _, d := range f.Domains {
		if err := d.Validate(); err != nil {
			return goerr.Wrap(err, "invalid domain")
		}
		if domainIDs[d.ID] {
			return goerr.Wrap(ErrDuplicateDomainID, "domain defined twice", goerr.V(DomainIDKey, d.ID))
		}
		domainIDs[d.ID] = true
	}

	capabilityIDs := make(map[string]bool)
	for _, c := range f.Capabilities {
		if err := c.Validate(); err != nil {
			return goerr.Wrap(err, "invalid capability")
		}
		if !domainIDs[c.Domain] {
			return goerr.Wrap(ErrUnknownDomain, "unknown domain",
				goerr.V(CapabilityIDKey, c.ID), goerr.V(DomainIDKey, c.Domain))
		}
		if capabilityIDs[c.ID] {
			return goerr.Wrap(ErrDuplicateCapabilityID, "capability defined twice", goerr.V(CapabilityIDKey, c.ID))
		}
		capabilityIDs[c.ID] = true
	}

	return nil
}

// merge appends other into f. Settings may be set by only one file or
// must agree.
func (f *DefinitionFile) merge(other *DefinitionFile, name string) error {
	if other.Version != "" {
		if f.Version != "" && f.Version != other.Version {
			return goerr.Wrap(ErrConflictingSettings, "version differs between files",
				goerr.V(DefinitionPathKey, name), goerr.V("version", other.Version))
		}
		f.Version = other.Version
	}
	if other.PartialCreditWeight != nil {
		if f.PartialCreditWeight != nil && *f.PartialCreditWeight != *other.PartialCreditWeight {
			return goerr.Wrap(ErrConflictingSettings, "partial credit weight differs between files",
				goerr.V(DefinitionPathKey, name))
		}
		f.PartialCreditWeight = other.PartialCreditWeight
	}
	f.Domains = append(f.Domains, other.Domains...)
	f.Capabilities = append(f.Capabilities, other.Capabilities...)
	return nil
}

// ParseDefinitionFile parses one TOML document
func ParseDefinitionFile(data []byte) (*DefinitionFile, error) {
	var file DefinitionFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML definitions")
	}
	return &file, nil
}

// LoadDefinitionFS reads and merges every *.toml file at the root of fsys
func LoadDefinitionFS(fsys fs.FS) (*DefinitionFile, error) {
	names, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list definition files")
	}
	if len(names) == 0 {
		return nil, goerr.Wrap(ErrDefinitionsNotFound, "no *.toml definition files")
	}
	sort.Strings(names)

	merged := &DefinitionFile{}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read definition file", goerr.V(DefinitionPathKey, name))
		}
		file, err := ParseDefinitionFile(data)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid definition file", goerr.V(DefinitionPathKey, name))
		}
		if err := merged.merge(file, name); err != nil {
			return nil, err
		}
	}

	if err := merged.Validate(); err != nil {
		return nil, goerr.Wrap(err, "definition validation failed")
	}
	return merged, nil
}

// LoadDefinitionPath loads definitions from a single TOML file or a directory
func LoadDefinitionPath(p string) (*DefinitionFile, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrDefinitionsNotFound, "definition path does not exist", goerr.V(DefinitionPathKey, p))
		}
		return nil, goerr.Wrap(err, "failed to stat definition path", goerr.V(DefinitionPathKey, p))
	}

	if info.IsDir() {
		file, err := LoadDefinitionFS(os.DirFS(p))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load definition directory", goerr.V(DefinitionPathKey, p))
		}
		return file, nil
	}

	dir, name := filepath.Split(p)
	if dir == "" {
		dir = "."
	}
	sub := singleFileFS{FS: os.DirFS(dir), name: name}
	file, err := LoadDefinitionFS(sub)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load definition file", goerr.V(DefinitionPathKey, p))
	}
	return file, nil
}

// singleFileFS exposes exactly one file of a directory to LoadDefinitionFS
type singleFileFS struct {
	fs.FS
	name string
}

func (s singleFileFS) Glob(pattern string) ([]string, error) {
	ok, err := path.Match(pattern, s.name)
	if err != nil || !ok {
		return nil, err
	}
	return []string{s.name}, nil
}

// ToDefinitionSet converts the validated file into the domain model
func (f *DefinitionFile) ToDefinitionSet() *model.DefinitionSet {
	set := model.NewDefinitionSet(f.Version)
	if f.PartialCreditWeight != nil {
		set.PartialCreditWeight = *f.PartialCreditWeight
	}

	for _, d := range f.Domains {
		set.AddDomain(&model.DomainDefinition{
			ID:    types.DomainID(d.ID),
			Name:  d.Name,
			Layer: types.Layer(d.Layer),
		})
	}

	for _, c := range f.Capabilities {
		def := &model.CapabilityDefinition{
			ID:          types.CapabilityID(c.ID),
			Domain:      types.DomainID(c.Domain),
			Area:        c.Area,
			Description: c.Description,
			Dimensions:  make(map[types.DimensionID]*model.DimensionDefinition, len(c.Dimensions)),
		}
		for name, dim := range c.Dimensions {
			dd := &model.DimensionDefinition{
				Description: dim.Description,
				Checklists:  make(model.ChecklistSet, len(dim.Checklists)),
			}
			copy(dd.Levels[:], dim.Levels)
			for _, cl := range dim.Checklists {
				dd.Checklists[cl.Level] = model.Checklist{
					Questions: cl.Questions,
					Evidence:  cl.Evidence,
				}
			}
			def.Dimensions[types.DimensionID(name)] = dd
		}
		set.AddCapability(def)
	}

	return set
}

// Definitions holds the definitions source flag
type Definitions struct {
	path string
}

// Flags returns CLI flags for definitions configuration
func (x *Definitions) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "definitions",
			Aliases:     []string{"d"},
			Usage:       "Capability definitions TOML file or directory (built-in MITA set if omitted)",
			Category:    "Definitions",
			Destination: &x.path,
			Sources:     cli.EnvVars("SSTOOL_DEFINITIONS"),
		},
	}
}

// LogAttrs returns log attributes for the definitions configuration
func (x *Definitions) LogAttrs() []slog.Attr {
	src := x.path
	if src == "" {
		src = "(built-in)"
	}
	return []slog.Attr{slog.String("definitions", src)}
}

// Path returns the configured path, empty for the built-in set
func (x *Definitions) Path() string {
	return x.path
}

// SetPath overrides the definitions path
func (x *Definitions) SetPath(p string) {
	x.path = p
}

// Configure returns a DefinitionSource reading the configured path on every Load
func (x *Definitions) Configure() interfaces.DefinitionSource {
	return &DefinitionLoader{path: x.path}
}

// DefinitionLoader loads definitions from a path, or from the built-in
// content when the path is empty
type DefinitionLoader struct {
	path string
}

var _ interfaces.DefinitionSource = &DefinitionLoader{}

// NewDefinitionLoader creates a loader for path; empty selects the built-in set
func NewDefinitionLoader(path string) *DefinitionLoader {
	return &DefinitionLoader{path: path}
}

// Load reads, validates and converts the definitions
func (l *DefinitionLoader) Load(ctx context.Context) (*model.DefinitionSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "definitions load canceled")
	}

	var (
		file *DefinitionFile
		err  error
	)
	if l.path == "" {
		file, err = LoadDefinitionFS(content.Definitions())
	} else {
		file, err = LoadDefinitionPath(l.path)
	}
	if err != nil {
		return nil, err
	}
	return file.ToDefinitionSet(), nil
}
