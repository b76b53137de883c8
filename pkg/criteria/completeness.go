package criteria

import "github.com/matzehuels/roadnet/pkg/roadsys"

// CompletenessCriterion flags segments with unset data attributes. Name
// and comment are never required.
type CompletenessCriterion struct {
	criterion
}

// NewCompletenessCriterion returns a completeness criterion applying to no
// segment types.
func NewCompletenessCriterion(name string) *CompletenessCriterion {
	c := &CompletenessCriterion{}
	c.init(c, CriterionCompleteness, name, c.offenders)
	return c
}

func (c *CompletenessCriterion) offenders(s *roadsys.Segment) [][]*roadsys.Segment {
	if len(MissingAttributes(s)) == 0 {
		return nil
	}
	return [][]*roadsys.Segment{{s}}
}

// MissingAttributes returns the data attributes of s that are unset.
func MissingAttributes(s *roadsys.Segment) []roadsys.AttributeType {
	var missing []roadsys.AttributeType
	for _, t := range roadsys.SegmentAttributeTypes(s.Type()) {
		if s.Attribute(t) == nil {
			missing = append(missing, t)
		}
	}
	return missing
}
