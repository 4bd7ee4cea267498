package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/momentumafrica/momentum-api/internal/logger"
)

// MentorFailureMessage is the fixed apologetic string returned to users when
// the text-generation call fails for any reason. No structured error is
// surfaced and no retry is attempted.
const MentorFailureMessage = "Sorry, I encountered an error while refining your idea. Please try again in a moment."

// MentorService proxies a member's raw idea to the Gemini API under the
// community's persona instruction.
type MentorService struct {
	log       *logger.Logger
	client    *genai.Client
	modelName string
}

// NewMentorService connects the Gemini client. The caller owns Close.
func NewMentorService(ctx context.Context, log *logger.Logger, apiKey, modelName string) (*MentorService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &MentorService{
		log:       log.With("service", "MentorService"),
		client:    client,
		modelName: modelName,
	}, nil
}

// RefineIdea turns a raw idea into a structured plan using the community
// persona as the system instruction. The returned bool reports whether the
// generation actually succeeded; on failure the text is the fixed apology
// and callers must not award refine points.
func (m *MentorService) RefineIdea(ctx context.Context, rawIdea, personaInstruction string) (string, bool) {
	model := m.client.GenerativeModel(m.modelName)
	model.SystemInstruction = genai.NewUserContent(genai.Text(personaInstruction))
	model.GenerationConfig.ResponseMIMEType = "text/plain"

	prompt := fmt.Sprintf("Here is the user's idea: %q", rawIdea)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		m.log.Warn("gemini call failed", "error", err)
		return MentorFailureMessage, false
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		m.log.Warn("gemini returned no candidates")
		return MentorFailureMessage, false
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok || text == "" {
		m.log.Warn("gemini returned a non-text part")
		return MentorFailureMessage, false
	}

	return string(text), true
}

// Close releases the underlying client.
func (m *MentorService) Close() {
	if m.client != nil {
		_ = m.client.Close()
	}
}
