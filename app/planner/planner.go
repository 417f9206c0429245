package planner

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vkarpenko/deadline-sync/app/schedule"
)

// Planner drafts the human-readable study artifacts and optionally rewrites
// raw OCR text into a structured deadline listing before extraction. It is
// a downstream consumer of pipeline results, never a pipeline stage.
type Planner struct {
	client *openai.Client
	model  string
}

func New(apiKey, model string) *Planner {
	return &Planner{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// RestructureDeadlines rewrites recognized text into one "Title - Date"
// line per deadline, the highest-priority extraction format.
func (p *Planner) RestructureDeadlines(ctx context.Context, text string) (string, error) {
	return p.complete(ctx, buildRestructurePrompt(text))
}

// GenerateStudyPlan produces a 7-day plan covering the given topics and the
// deadlines that were placed on the calendar.
func (p *Planner) GenerateStudyPlan(ctx context.Context, topics string, events []schedule.Event) (string, error) {
	return p.complete(ctx, buildStudyPlanPrompt(topics, events))
}

// GeneratePracticeProblems produces practice problems with solutions for
// the given topics.
func (p *Planner) GeneratePracticeProblems(ctx context.Context, topics string) (string, error) {
	return p.complete(ctx, buildPracticeProblemsPrompt(topics))
}

func (p *Planner) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildRestructurePrompt(text string) string {
	return fmt.Sprintf(`Extract the assignment titles and due dates from the following text. Format each extracted item on its own line as "Title - YYYY-MM-DD". Output nothing else.

%s`, text)
}

func buildStudyPlanPrompt(topics string, events []schedule.Event) string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("%s due on %s", event.Title, event.Date.String()))
	}

	return fmt.Sprintf(`Generate a 7-day detailed study plan for the following topics and dates:
Topics: %s
Events: %s

Format:
Date: Study Activity`, topics, strings.Join(lines, ", "))
}

func buildPracticeProblemsPrompt(topics string) string {
	return fmt.Sprintf("Generate a set of practice problems for the following topic: %s. Provide detailed solutions for each problem.", topics)
}
