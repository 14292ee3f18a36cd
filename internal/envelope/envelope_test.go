package envelope

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestScoreToTier(t *testing.T) {
	tests := []struct {
		score float64
		want  ConfidenceTier
	}{
		{1.0, TierHigh},
		{0.8, TierHigh},
		{0.79, TierMedium},
		{0.5, TierMedium},
		{0.49, TierLow},
		{0, TierLow},
	}
	for _, tt := range tests {
		if got := ScoreToTier(tt.score); got != tt.want {
			t.Errorf("ScoreToTier(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestBuilder(t *testing.T) {
	resp := New().
		Data(map[string]interface{}{"rows": 3}).
		Confidence(0.66, "keyword:album").
		Provenance("op-1", "chinook").
		Warning("partial results").
		Build()

	if resp.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("schemaVersion = %q, want %q", resp.SchemaVersion, CurrentSchemaVersion)
	}
	if resp.Meta.Confidence.Tier != TierMedium {
		t.Errorf("tier = %v, want medium", resp.Meta.Confidence.Tier)
	}
	if resp.Meta.Provenance.OperationID != "op-1" {
		t.Errorf("operationId = %q, want op-1", resp.Meta.Provenance.OperationID)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", resp.Warnings)
	}
	if resp.Error != nil {
		t.Errorf("error = %v, want nil", *resp.Error)
	}
}

func TestBuilderError(t *testing.T) {
	resp := New().Data(nil).Error(errors.New("boom")).Build()
	if resp.Error == nil || *resp.Error != "boom" {
		t.Errorf("error = %v, want boom", resp.Error)
	}
}

func TestBuilderExplicitTier(t *testing.T) {
	resp := New().ConfidenceTier(0.5, TierMedium, "2 sources tied").Build()
	if resp.Meta.Confidence.Tier != TierMedium || resp.Meta.Confidence.Score != 0.5 {
		t.Errorf("confidence = %+v", resp.Meta.Confidence)
	}
}

func TestOperational(t *testing.T) {
	resp := Operational("ok")
	if resp.Meta.Confidence.Tier != TierHigh || resp.Meta.Confidence.Score != 1.0 {
		t.Errorf("operational envelope should be high confidence: %+v", resp.Meta.Confidence)
	}
}

func TestEnvelopeJSONShape(t *testing.T) {
	resp := New().Data(map[string]interface{}{"x": 1}).Confidence(1.0).Build()

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["schemaVersion"] != "1.0" {
		t.Errorf("schemaVersion = %v", decoded["schemaVersion"])
	}
	if _, ok := decoded["warnings"]; ok {
		t.Error("empty warnings should be omitted from JSON")
	}
}
