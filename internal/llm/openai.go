package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"data-agent/internal/sqlguard"
)

// OpenAIClient translates questions with the OpenAI Chat Completions API.
type OpenAIClient struct {
	model  openai.ChatModel
	client *openai.Client
}

const (
	defaultChatTimeout     = 30 * time.Second
	defaultChatTemperature = 0.0
	fallbackSummary        = "Here are the results for your question."
)

const systemPrompt = `You translate business questions into a single read-only PostgreSQL SELECT statement.
Use only the tables and columns listed in the schema.
Reply with one short sentence describing the result, then the query in a ` + "```sql" + ` block.`

// NewOpenAIClient builds a client with defaults against api.openai.com.
func NewOpenAIClient(apiKey string, model openai.ChatModel, opts ...option.RequestOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	cli := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
	return &OpenAIClient{
		model:  model,
		client: &cli,
	}, nil
}

func (c *OpenAIClient) Translate(ctx context.Context, question, schema string) (Translation, error) {
	if c == nil || c.client == nil {
		return Translation{}, fmt.Errorf("nil openai client")
	}
	reqCtx, cancel := context.WithTimeout(ctx, defaultChatTimeout)
	defer cancel()
	messages := buildMessages(
		systemPrompt,
		fmt.Sprintf("Schema:\n%s\n\nQuestion: %s", schema, question),
	)
	resp, err := c.client.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		Temperature: openai.Float(defaultChatTemperature),
	})
	if err != nil {
		return Translation{}, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Translation{}, fmt.Errorf("openai: no choices returned")
	}
	return parseReply(resp.Choices[0].Message.Content), nil
}

func buildMessages(system, user string) []openai.ChatCompletionMessageParamUnion {
	return []openai.ChatCompletionMessageParamUnion{
		{
			OfSystem: &openai.ChatCompletionSystemMessageParam{
				Content: openai.ChatCompletionSystemMessageParamContentUnion{
					OfString: openai.String(system),
				},
			},
		},
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfString: openai.String(user),
				},
			},
		},
	}
}

// parseReply splits a model reply into the SQL statement and the prose
// before it. A reply without a fence gets a generic summary.
func parseReply(content string) Translation {
	sql := sqlguard.ExtractSQL(content)
	summary := sqlguard.Prose(content)
	if summary == "" || summary == sql || !strings.Contains(content, "```") {
		summary = fallbackSummary
	}
	return Translation{SQL: sql, Summary: firstLine(summary)}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
