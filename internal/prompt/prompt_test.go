package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docchat/internal/prompt"
)

func TestBuildContainsQuestionAndPassageVerbatim(t *testing.T) {
	question := "What is a black hole?"
	passage := "A black hole is a region of spacetime."

	out := prompt.Build(question, passage)

	assert.Contains(t, out, question)
	assert.Contains(t, out, passage)
	assert.Contains(t, out, "QUESTION: '"+question+"'")
	assert.Contains(t, out, "PASSAGE: '"+passage+"'")
}

func TestBuildTemplateIsInvariant(t *testing.T) {
	a := prompt.Build("q1", "p1")
	b := prompt.Build("q2", "p2")

	// Stripping the substituted values leaves the identical template text.
	aTemplate := strings.ReplaceAll(strings.ReplaceAll(a, "q1", ""), "p1", "")
	bTemplate := strings.ReplaceAll(strings.ReplaceAll(b, "q2", ""), "p2", "")
	assert.Equal(t, aTemplate, bTemplate)
}

func TestBuildLengthIsTemplatePlusInputs(t *testing.T) {
	empty := prompt.Build("", "")
	out := prompt.Build("abcd", "efghij")
	assert.Equal(t, len(empty)+len("abcd")+len("efghij"), len(out))
}
