package repository

import (
	"errors"
	"fmt"

	"sigs.k8s.io/yaml"

	"market-finder/domain"
)

// ErrInvalidDataset is wrapped by every dataset validation failure.
var ErrInvalidDataset = errors.New("invalid reference dataset")

// Dataset is the on-disk shape of the reference data.
type Dataset struct {
	States   []domain.State                   `json:"states"`
	LOBs     map[domain.BusinessType][]string `json:"lobs"`
	Carriers []domain.Carrier                 `json:"carriers"`
}

// LoadDataset decodes a YAML or JSON document into a Dataset. It does not
// validate; NewReferenceRepositoryMemory does.
func LoadDataset(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// Validate checks the reference invariants: unique state codes and carrier
// IDs, closed business types with unique LOB names, and carriers whose
// states, lines and tags all refer to known values.
func (ds Dataset) Validate() error {
	if len(ds.States) == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidDataset)
	}
	codes := make(map[string]struct{}, len(ds.States))
	for _, s := range ds.States {
		if s.Code == "" {
			return fmt.Errorf("%w: state %q has no code", ErrInvalidDataset, s.Name)
		}
		if _, dup := codes[s.Code]; dup {
			return fmt.Errorf("%w: duplicate state code %q", ErrInvalidDataset, s.Code)
		}
		codes[s.Code] = struct{}{}
	}

	lines := make(map[string]struct{})
	for bt, names := range ds.LOBs {
		if _, ok := domain.ParseBusinessType(string(bt)); !ok {
			return fmt.Errorf("%w: unknown business type %q", ErrInvalidDataset, bt)
		}
		seen := make(map[string]struct{}, len(names))
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%w: empty line of business under %s", ErrInvalidDataset, bt)
			}
			if _, dup := seen[name]; dup {
				return fmt.Errorf("%w: duplicate line of business %q under %s", ErrInvalidDataset, name, bt)
			}
			seen[name] = struct{}{}
			lines[name] = struct{}{}
		}
	}

	ids := make(map[string]struct{}, len(ds.Carriers))
	for _, c := range ds.Carriers {
		if c.ID == "" {
			return fmt.Errorf("%w: carrier %q has no id", ErrInvalidDataset, c.Name)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("%w: duplicate carrier id %q", ErrInvalidDataset, c.ID)
		}
		ids[c.ID] = struct{}{}

		if len(c.States) == 0 || len(c.Lines) == 0 {
			return fmt.Errorf("%w: carrier %q needs at least one state and one line", ErrInvalidDataset, c.ID)
		}
		for _, code := range c.States {
			if _, ok := codes[code]; !ok {
				return fmt.Errorf("%w: carrier %q references unknown state %q", ErrInvalidDataset, c.ID, code)
			}
		}
		for _, line := range c.Lines {
			if _, ok := lines[line]; !ok {
				return fmt.Errorf("%w: carrier %q references unknown line %q", ErrInvalidDataset, c.ID, line)
			}
		}
		if !c.HasTag(domain.TagOnline) && !c.HasTag(domain.TagOffline) {
			return fmt.Errorf("%w: carrier %q has no Online or Offline tag", ErrInvalidDataset, c.ID)
		}
	}
	return nil
}
