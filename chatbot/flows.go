package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/korylprince/proactiveshield-server/api"
)

// DefaultFlowTimeout bounds a single flow invocation
const DefaultFlowTimeout = 60 * time.Second

// maxQueryLength bounds the assistant query
const maxQueryLength = 4000

// Flow input and output schemas, checked at the HTTP edge
var (
	AssistantInputSchema = &Schema{
		Type:       TypeObject,
		Properties: map[string]*Schema{"query": {Type: TypeString, Description: "The user's question or prompt."}},
		Required:   []string{"query"},
	}
	AssistantOutputSchema = &Schema{
		Type:       TypeObject,
		Properties: map[string]*Schema{"response": {Type: TypeString, Description: "The AI assistant's response."}},
		Required:   []string{"response"},
	}
	BriefingOutputSchema = &Schema{
		Type:       TypeObject,
		Properties: map[string]*Schema{"briefing": {Type: TypeString, Description: "The daily briefing summary."}},
		Required:   []string{"briefing"},
	}
	SummaryInputSchema = &Schema{
		Type: TypeObject,
		Properties: map[string]*Schema{
			"failurePredictions": {Type: TypeString, Description: "Past failure predictions."},
			"maintenanceLogs":    {Type: TypeString, Description: "Maintenance logs."},
		},
		Required: []string{"failurePredictions", "maintenanceLogs"},
	}
	SummaryOutputSchema = &Schema{
		Type:       TypeObject,
		Properties: map[string]*Schema{"summary": {Type: TypeString, Description: "A summary of probable maintenance requirements."}},
		Required:   []string{"summary"},
	}
)

// AssistantInput is the input of the open query flow
type AssistantInput struct {
	Query string `json:"query"`
}

// Validate validates the given AssistantInput
func (in *AssistantInput) Validate() error {
	if strings.TrimSpace(in.Query) == "" {
		return errors.New("query must not be empty")
	}
	return api.ValidateString("query", in.Query, maxQueryLength)
}

// AssistantOutput is the output of the open query flow
type AssistantOutput struct {
	Response string `json:"response"`
}

// BriefingOutput is the output of the daily briefing flow
type BriefingOutput struct {
	Briefing string `json:"briefing"`
}

// Flows runs the conversational flows. Flows are stateless; a *Flows is safe for concurrent use.
type Flows struct {
	model   Model
	tools   []Tool
	timeout time.Duration
	cache   *BriefingCache
	now     func() time.Time
}

// FlowOption configures Flows
type FlowOption func(*Flows)

// WithTimeout sets the deadline applied to every flow invocation
func WithTimeout(d time.Duration) FlowOption {
	return func(f *Flows) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithBriefingCache reuses a successful daily briefing for the rest of its cache lifetime
func WithBriefingCache(c *BriefingCache) FlowOption {
	return func(f *Flows) { f.cache = c }
}

// NewFlows returns Flows generating with model and binding tools to the tool-augmented flows
func NewFlows(model Model, tools []Tool, opts ...FlowOption) *Flows {
	f := &Flows{
		model:   model,
		tools:   tools,
		timeout: DefaultFlowTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ChatWithAssistant answers a free-text question, letting the model call any of the tools
func (f *Flows) ChatWithAssistant(ctx context.Context, in AssistantInput) (*AssistantOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, &Error{Kind: ErrorKindValidation, Description: "Could not validate assistant input", Err: err}
	}

	resp, err := f.generate(ctx, "assistant", &GenerateRequest{
		System: AssistantSystemPrompt(),
		Prompt: in.Query,
		Tools:  f.tools,
	})
	if err != nil {
		return nil, err
	}
	return &AssistantOutput{Response: resp.Text}, nil
}

// GenerateDailyBriefing writes the markdown daily briefing for the maintenance team
func (f *Flows) GenerateDailyBriefing(ctx context.Context) (*BriefingOutput, error) {
	now := f.now()
	if f.cache != nil {
		if b, ok := f.cache.Get(now); ok {
			return &BriefingOutput{Briefing: b}, nil
		}
	}

	resp, err := f.generate(ctx, "briefing", &GenerateRequest{
		System: BriefingSystemPrompt(),
		Prompt: BriefingPrompt,
		Tools:  f.tools,
	})
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Add(now, resp.Text)
	}
	return &BriefingOutput{Briefing: resp.Text}, nil
}

// GenerateMaintenanceSummary summarizes probable maintenance requirements from two text blobs. No tools are bound.
func (f *Flows) GenerateMaintenanceSummary(ctx context.Context, in SummaryInput) (*SummaryOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, &Error{Kind: ErrorKindValidation, Description: "Could not validate summary input", Err: err}
	}

	resp, err := f.generate(ctx, "summary", &GenerateRequest{Prompt: RenderSummaryPrompt(in)})
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{Summary: resp.Text}, nil
}

// generate makes the single model call of a flow under the flow deadline and classifies its failure
func (f *Flows) generate(ctx context.Context, flow string, req *GenerateRequest) (*GenerateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	resp, err := f.model.Generate(ctx, req)
	if err == nil && resp == nil {
		err = ErrNoOutput
	}
	if err == nil {
		log.Printf("flow %s completed in %s with %d tool calls", flow, time.Since(start), resp.ToolCalls)
		return resp, nil
	}

	log.Printf("flow %s failed after %s: %v", flow, time.Since(start), err)

	var fe *Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return nil, &Error{Kind: ErrorKindTimeout, Description: fmt.Sprintf("Flow %s exceeded %s", flow, f.timeout), Err: err}
	case errors.As(err, &fe):
		return nil, fe
	default:
		return nil, &Error{Kind: ErrorKindGeneration, Description: fmt.Sprintf("Could not generate %s", flow), Err: err}
	}
}
