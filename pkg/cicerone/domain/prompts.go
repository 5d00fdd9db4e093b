package domain

import "fmt"

const (
	questionFormatMessage             = "Provide a detailed answer to the question '%s' about %s at %s. Include relevant sources."
	questionWithResearchFormatMessage = "Provide a detailed answer to the question '%s' about %s at %s, using the information from these search results: %s. Include relevant sources."
)

func formatQuestionPrompt(question string, identity PlaceIdentity) string {
	return fmt.Sprintf(questionFormatMessage, question, identity.Name, identity.Location)
}

func formatQuestionWithResearchPrompt(question string, identity PlaceIdentity, research string) string {
	return fmt.Sprintf(questionWithResearchFormatMessage, question, identity.Name, identity.Location, research)
}
