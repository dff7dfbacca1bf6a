package advisor

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts are written as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// Snapshot is the persisted state of a user: the risk profile, if the
// questionnaire was taken, and the practice portfolio.
type Snapshot struct {
	RiskProfile *RiskProfile `json:"riskProfile"`
	Portfolio   *Portfolio   `json:"portfolio"`
}

// EncodeSnapshot serializes s as JSON.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if s.Portfolio == nil {
		return nil, fmt.Errorf("cannot encode snapshot without portfolio")
	}
	return json.Marshal(s)
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot and checks its
// invariants.
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("could not decode snapshot: %w", err)
	}
	if s.Portfolio == nil {
		return Snapshot{}, fmt.Errorf("could not decode snapshot: missing portfolio")
	}
	if s.RiskProfile != nil {
		if err := s.RiskProfile.validate(); err != nil {
			return Snapshot{}, fmt.Errorf("could not decode snapshot: invalid risk profile: %w", err)
		}
	}
	return s, nil
}
