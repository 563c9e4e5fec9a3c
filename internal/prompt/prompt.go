// Package prompt formats the instruction handed to the answer model.
package prompt

import (
	"fmt"

	"docchat/internal/models"
)

// Build substitutes the question and the retrieved passage verbatim into the
// fixed answer template. No other content varies between calls.
func Build(question, passage string) string {
	return fmt.Sprintf(models.AnswerPromptTemplate, question, passage)
}
