package grid

import (
	"github.com/matzehuels/jewelry/pkg/errors"
)

// StampRule forces a region of the grid to read as Clearance.
//
// Exactly one of Row or EndRow selects the rows: Row matches a single row,
// EndRow matches every row up to and including it. StartRow is not supported
// and makes the rule invalid. Column, StartColumn and EndColumn optionally
// narrow the columns. A rule fires for a cell when every predicate that is
// set holds.
type StampRule struct {
	Row         *int `json:"row,omitempty" yaml:"row,omitempty" toml:"row,omitempty"`
	EndRow      *int `json:"endRow,omitempty" yaml:"endRow,omitempty" toml:"endRow,omitempty"`
	StartRow    *int `json:"startRow,omitempty" yaml:"startRow,omitempty" toml:"startRow,omitempty"`
	Column      *int `json:"column,omitempty" yaml:"column,omitempty" toml:"column,omitempty"`
	StartColumn *int `json:"startColumn,omitempty" yaml:"startColumn,omitempty" toml:"startColumn,omitempty"`
	EndColumn   *int `json:"endColumn,omitempty" yaml:"endColumn,omitempty" toml:"endColumn,omitempty"`
}

// Int returns a pointer to v, for building stamp rules in code.
func Int(v int) *int { return &v }

// stampRowSlack is the number of rows a stamp may reach beyond what the
// tiles of a pass could fill on their own.
const stampRowSlack = 64

// MaxStampRow returns the deepest row a stamp rule may select in a pass over
// tileCount tiles. A tile spans at most two rows, so deeper stamps could only
// add empty clearance below the content.
func MaxStampRow(tileCount int) int {
	return 2*tileCount + stampRowSlack
}

// Validate checks the rule's row selectors.
func (r StampRule) Validate() error {
	if r.StartRow != nil {
		return errors.New(errors.ErrCodeInvalidStampRule, "startRow is not supported")
	}
	switch {
	case r.Row == nil && r.EndRow == nil:
		return errors.New(errors.ErrCodeInvalidStampRule, "one of row or endRow is required")
	case r.Row != nil && r.EndRow != nil:
		return errors.New(errors.ErrCodeInvalidStampRule, "row and endRow are mutually exclusive")
	}
	if row := r.selectedRow(); row < 0 {
		return errors.New(errors.ErrCodeInvalidStampRule, "row selector cannot be negative, got %d", row)
	}
	return nil
}

// selectedRow returns the deepest row the rule selects. The rule must have
// exactly one row selector set.
func (r StampRule) selectedRow() int {
	if r.Row != nil {
		return *r.Row
	}
	return *r.EndRow
}

// Fires reports whether the rule covers (row, col). The rule is validated
// first, so a malformed rule surfaces on the first cell that consults it.
func (r StampRule) Fires(row, col int) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}
	if r.Row != nil && row != *r.Row {
		return false, nil
	}
	if r.EndRow != nil && row > *r.EndRow {
		return false, nil
	}
	if r.Column != nil && col != *r.Column {
		return false, nil
	}
	if r.StartColumn != nil && col < *r.StartColumn {
		return false, nil
	}
	if r.EndColumn != nil && col > *r.EndColumn {
		return false, nil
	}
	return true, nil
}

// ValidateRules checks every rule and reports the first malformed one.
func ValidateRules(rules []StampRule) error {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStampRule, err, "stamp rule %d", i)
		}
	}
	return nil
}

// ValidateRowLimit checks every rule and rejects any that selects a row
// deeper than maxRow.
func ValidateRowLimit(rules []StampRule, maxRow int) error {
	if err := ValidateRules(rules); err != nil {
		return err
	}
	for i, r := range rules {
		if row := r.selectedRow(); row > maxRow {
			return errors.New(errors.ErrCodeInvalidStampRule,
				"stamp rule %d: row %d exceeds the limit of %d for this pass", i, row, maxRow)
		}
	}
	return nil
}
