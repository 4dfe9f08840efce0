package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrDefinitionsNotFound   = goerr.New("definition files not found")
	ErrInvalidDefinition     = goerr.New("invalid definition")
	ErrDuplicateDomainID     = goerr.New("duplicate domain ID")
	ErrDuplicateCapabilityID = goerr.New("duplicate capability ID")
	ErrUnknownDomain         = goerr.New("capability refers to unknown domain")
	ErrInvalidChecklist      = goerr.New("invalid checklist")
	ErrInvalidWeight         = goerr.New("partial credit weight must be within (0, 1)")
	ErrConflictingSettings   = goerr.New("definition files disagree on a setting")
	ErrInvalidBackend        = goerr.New("invalid repository backend")
	ErrMissingOption         = goerr.New("required option is missing")
)

// Context keys for error values
const (
	DefinitionPathKey = "definition_path"
	DomainIDKey       = "domain_id"
	CapabilityIDKey   = "capability_id"
	DimensionKey      = "dimension"
	ChecklistLevelKey = "checklist_level"
	BackendKey        = "backend"
)
