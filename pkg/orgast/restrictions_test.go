package orgast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/orgtree/pkg/orgast"
)

func TestKindSetOps(t *testing.T) {
	t.Parallel()

	s := orgast.NewKindSet(orgast.NodeBold, orgast.NodeLink)
	assert.True(t, s.Has(orgast.NodeBold))
	assert.True(t, s.Has(orgast.NodeLink))
	assert.False(t, s.Has(orgast.NodeCode))

	s = s.Without(orgast.NodeLink)
	assert.False(t, s.Has(orgast.NodeLink))

	s = s.With(orgast.NodeCode)
	assert.Equal(t, []orgast.NodeKind{orgast.NodeBold, orgast.NodeCode}, s.Kinds())

	// Non-object kinds are never members.
	assert.False(t, s.Has(orgast.NodeParagraph))
}

func TestLinkRestrictions(t *testing.T) {
	t.Parallel()

	r := orgast.Restriction(orgast.NodeLink)
	assert.False(t, r.Has(orgast.NodeLink), "no nested links")
	assert.False(t, r.Has(orgast.NodeRadioTarget))
	assert.False(t, r.Has(orgast.NodeLineBreak))
	assert.True(t, r.Has(orgast.NodeBold))
}

func TestTableCellRestrictions(t *testing.T) {
	t.Parallel()

	r := orgast.Restriction(orgast.NodeTableCell)
	assert.False(t, r.Has(orgast.NodeInlineBabelCall))
	assert.False(t, r.Has(orgast.NodeLineBreak))
	assert.False(t, r.Has(orgast.NodeTableCell))
	assert.True(t, r.Has(orgast.NodeVerbatim))
}

func TestRadioTargetRestrictions(t *testing.T) {
	t.Parallel()

	r := orgast.Restriction(orgast.NodeRadioTarget)
	assert.False(t, r.Has(orgast.NodeLink))
	assert.False(t, r.Has(orgast.NodeTarget))
	assert.False(t, r.Has(orgast.NodeTimestamp))
	assert.True(t, r.Has(orgast.NodeBold))
	assert.True(t, r.Has(orgast.NodeEntity))
}

func TestHeadlineExcludesLineBreak(t *testing.T) {
	t.Parallel()

	r := orgast.Restriction(orgast.NodeHeadline)
	assert.False(t, r.Has(orgast.NodeLineBreak))
	assert.True(t, r.Has(orgast.NodeStatisticsCookie))
}

func TestAllowedInAcceptsText(t *testing.T) {
	t.Parallel()

	assert.True(t, orgast.AllowedIn(orgast.NodeText, orgast.NodeParagraph))
	assert.True(t, orgast.AllowedIn(orgast.NodeBold, orgast.NodeParagraph))
	assert.False(t, orgast.AllowedIn(orgast.NodeTableCell, orgast.NodeParagraph))
	assert.True(t, orgast.AllowedIn(orgast.NodeTableCell, orgast.NodeTableRow))
}
