package main

import (
	"fmt"
	"strings"
)

const (
	promptFormat    = "format"
	promptSummarize = "summarize"
)

// formatPromptText asks the agent to rewrite a document as markdown through
// the edit tool. The document ID is not checked against the store.
func formatPromptText(docID string) string {
	return strings.Join([]string{
		fmt.Sprintf("Your goal is to reformat the contents of the document with ID '%s' into markdown format.", docID),
		"Add headers, bullet points, and other markdown elements as appropriate to enhance readability.",
		fmt.Sprintf("Use the '%s' tool to make the necessary changes in the documents.", toolEditDoc),
	}, "\n")
}

// summarizePromptText asks the agent to read a document and summarize it.
func summarizePromptText(docID string) string {
	return strings.Join([]string{
		fmt.Sprintf("Your goal is to summarize the contents of the document with ID '%s'.", docID),
		fmt.Sprintf("Use the '%s' tool to read the document.", toolReadDoc),
		"Reply with a short summary of a few sentences that keeps names, figures, and dates from the original.",
		"Do not modify the document.",
	}, "\n")
}
