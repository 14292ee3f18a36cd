package envelope

// Builder constructs Response envelopes using a fluent API.
type Builder struct {
	resp *Response
}

// New creates a new envelope builder.
func New() *Builder {
	return &Builder{
		resp: &Response{
			SchemaVersion: CurrentSchemaVersion,
		},
	}
}

// Data sets the tool-specific payload.
func (b *Builder) Data(data interface{}) *Builder {
	b.resp.Data = data
	return b
}

func (b *Builder) meta() *Meta {
	if b.resp.Meta == nil {
		b.resp.Meta = &Meta{}
	}
	return b.resp.Meta
}

// Confidence sets routing confidence from a 0-1 score; the tier is
// derived from the score.
func (b *Builder) Confidence(score float64, reasons ...string) *Builder {
	b.meta().Confidence = &Confidence{
		Score:   score,
		Tier:    ScoreToTier(score),
		Reasons: reasons,
	}
	return b
}

// ConfidenceTier sets routing confidence with an explicit tier, for
// outcomes whose tier does not follow from the score alone.
func (b *Builder) ConfidenceTier(score float64, tier ConfidenceTier, reasons ...string) *Builder {
	b.meta().Confidence = &Confidence{
		Score:   score,
		Tier:    tier,
		Reasons: reasons,
	}
	return b
}

// Provenance records the contributing sources and operation id.
func (b *Builder) Provenance(operationID string, sources ...string) *Builder {
	b.meta().Provenance = &Provenance{
		Sources:     sources,
		OperationID: operationID,
	}
	return b
}

// Warning adds a warning message.
func (b *Builder) Warning(msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Message: msg})
	return b
}

// WarningWithCode adds a warning with a machine-readable code.
func (b *Builder) WarningWithCode(code, msg string) *Builder {
	b.resp.Warnings = append(b.resp.Warnings, Warning{Code: code, Message: msg})
	return b
}

// Error sets the error field.
func (b *Builder) Error(err error) *Builder {
	if err != nil {
		msg := err.Error()
		b.resp.Error = &msg
	}
	return b
}

// Suggest appends a suggested follow-up call.
func (b *Builder) Suggest(tool string, params map[string]interface{}, reason string) *Builder {
	b.resp.SuggestedNextCalls = append(b.resp.SuggestedNextCalls, SuggestedCall{
		Tool:   tool,
		Params: params,
		Reason: reason,
	})
	return b
}

// Build returns the completed response envelope.
func (b *Builder) Build() *Response {
	return b.resp
}

// Operational creates a simple envelope for operational tools. These
// always have high confidence.
func Operational(data interface{}) *Response {
	return &Response{
		SchemaVersion: CurrentSchemaVersion,
		Data:          data,
		Meta: &Meta{
			Confidence: &Confidence{
				Score: 1.0,
				Tier:  TierHigh,
			},
		},
	}
}
