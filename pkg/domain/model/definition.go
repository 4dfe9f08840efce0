package model

import (
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/types"
)

// DefaultPartialCreditWeight is the share of one maturity level that a
// fully confirmed checklist adds on top of the selected level.
const DefaultPartialCreditWeight = 0.9

// ErrCapabilityDefinitionNotFound is returned when no definition exists for a capability
var ErrCapabilityDefinitionNotFound = goerr.New("capability definition not found")

// DomainDefinition describes a business domain and its layer
type DomainDefinition struct {
	ID    types.DomainID
	Name  string
	Layer types.Layer
}

// Checklist is the set of confirmation items of one maturity level
type Checklist struct {
	Questions []string
	Evidence  []string
}

// Total returns the number of confirmable items
func (c Checklist) Total() int {
	return len(c.Questions) + len(c.Evidence)
}

// ChecklistSet maps an assessed level (1..5) to its checklist
type ChecklistSet map[int]Checklist

// ForLevel returns the checklist of the given level. Levels without a
// checklist, N/A and not-assessed yield an empty checklist.
func (s ChecklistSet) ForLevel(level types.MaturityLevel) Checklist {
	n, ok := level.Number()
	if !ok || s == nil {
		return Checklist{}
	}
	return s[n]
}

// DimensionDefinition is the static content of one dimension of a capability
type DimensionDefinition struct {
	Description string
	Levels      [types.MaxMaturityLevel]string
	Checklists  ChecklistSet
}

// LevelDescription returns the description text of an assessed level
func (d *DimensionDefinition) LevelDescription(level types.MaturityLevel) string {
	n, ok := level.Number()
	if !ok {
		return ""
	}
	return d.Levels[n-1]
}

// CapabilityDefinition is the static content of one capability area
type CapabilityDefinition struct {
	ID          types.CapabilityID
	Domain      types.DomainID
	Area        string
	Description string
	Dimensions  map[types.DimensionID]*DimensionDefinition
}

// Checklists returns the checklist set of a dimension, or nil
func (c *CapabilityDefinition) Checklists(d types.DimensionID) ChecklistSet {
	if c == nil {
		return nil
	}
	def, ok := c.Dimensions[d]
	if !ok || def == nil {
		return nil
	}
	return def.Checklists
}

// DefinitionSet is the loaded, read-only content the scoring engine consumes.
// It holds settings only.
type DefinitionSet struct {
	Version             string
	PartialCreditWeight float64

	domains      map[types.DomainID]*DomainDefinition
	domainOrder  []types.DomainID
	capabilities map[types.CapabilityID]*CapabilityDefinition
	capOrder     []types.CapabilityID
}

// NewDefinitionSet creates an empty set with the default partial credit weight
func NewDefinitionSet(version string) *DefinitionSet {
	return &DefinitionSet{
		Version:             version,
		PartialCreditWeight: DefaultPartialCreditWeight,
		domains:             make(map[types.DomainID]*DomainDefinition),
		capabilities:        make(map[types.CapabilityID]*CapabilityDefinition),
	}
}

// AddDomain registers a domain definition
func (s *DefinitionSet) AddDomain(d *DomainDefinition) {
	if _, exists := s.domains[d.ID]; !exists {
		s.domainOrder = append(s.domainOrder, d.ID)
	}
	s.domains[d.ID] = d
}

// AddCapability registers a capability definition
func (s *DefinitionSet) AddCapability(c *CapabilityDefinition) {
	if _, exists := s.capabilities[c.ID]; !exists {
		s.capOrder = append(s.capOrder, c.ID)
	}
	s.capabilities[c.ID] = c
}

// Capability retrieves a capability definition by ID
func (s *DefinitionSet) Capability(id types.CapabilityID) (*CapabilityDefinition, error) {
	if s == nil {
		return nil, goerr.Wrap(ErrCapabilityDefinitionNotFound, "no definitions loaded",
			goerr.V(CapabilityIDKey, id))
	}
	c, ok := s.capabilities[id]
	if !ok {
		return nil, goerr.Wrap(ErrCapabilityDefinitionNotFound, "capability definition not found",
			goerr.V(CapabilityIDKey, id))
	}
	return c, nil
}

// Capabilities returns all capability definitions in registration order
func (s *DefinitionSet) Capabilities() []*CapabilityDefinition {
	result := make([]*CapabilityDefinition, 0, len(s.capOrder))
	for _, id := range s.capOrder {
		result = append(result, s.capabilities[id])
	}
	return result
}

// Domain retrieves a domain definition by ID
func (s *DefinitionSet) Domain(id types.DomainID) (*DomainDefinition, bool) {
	if s == nil {
		return nil, false
	}
	d, ok := s.domains[id]
	return d, ok
}

// Domains returns all domain definitions sorted by layer then name
func (s *DefinitionSet) Domains() []*DomainDefinition {
	result := make([]*DomainDefinition, 0, len(s.domainOrder))
	for _, id := range s.domainOrder {
		result = append(result, s.domains[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Layer.Rank() != result[j].Layer.Rank() {
			return result[i].Layer.Rank() < result[j].Layer.Rank()
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// DomainByName looks up a domain by its display name, case-insensitively.
// Assessments reference domains by name.
func (s *DefinitionSet) DomainByName(name string) (*DomainDefinition, bool) {
	if s == nil {
		return nil, false
	}
	for _, id := range s.domainOrder {
		if d := s.domains[id]; strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return nil, false
}

// Context keys for error values
const (
	CapabilityIDKey = "capability_id"
	DimensionKey    = "dimension"
	DomainIDKey     = "domain_id"
	AssessmentIDKey = "assessment_id"
)
