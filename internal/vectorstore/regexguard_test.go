package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePattern_AcceptsSimplePatterns(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePattern("internal/.*\\.go"))
	assert.NoError(t, ValidatePattern("handler_test"))
	assert.NoError(t, ValidatePattern("a*b+c?"))
}

func TestValidatePattern_RejectsNestedQuantifiers(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePattern("(a+)+"))
	assert.Error(t, ValidatePattern("(a*)*"))
	assert.Error(t, ValidatePattern("(a+)*b"))
}

func TestValidatePattern_RejectsInvalidSyntax(t *testing.T) {
	t.Parallel()

	assert.Error(t, ValidatePattern("(unterminated"))
}
