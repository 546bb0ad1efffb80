package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValidator() *Validator {
	return NewValidator(Limits{MaxRules: 12, MaxDistance: 200})
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		wantErr        error
		name           string
		candidate      Candidate
		wantGroupA     []string
		wantGroupB     []string
		collectionSize int
		wantDistance   float64
	}{
		{
			name: "valid rule",
			candidate: Candidate{
				Name:     "Salt bridges",
				GroupA:   "LYS,ARG",
				GroupB:   "ASP,GLU",
				Distance: "4.0",
			},
			wantGroupA:   []string{"LYS", "ARG"},
			wantGroupB:   []string{"ASP", "GLU"},
			wantDistance: 4.0,
		},
		{
			name: "one letter codes canonicalized",
			candidate: Candidate{
				GroupA:   "k, r",
				GroupB:   "d,e",
				Distance: "5",
			},
			wantGroupA:   []string{"LYS", "ARG"},
			wantGroupB:   []string{"ASP", "GLU"},
			wantDistance: 5.0,
		},
		{
			name: "zero distance rejected",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   "VAL",
				Distance: "0",
			},
			wantErr: ErrInvalidDistance,
		},
		{
			name: "just above zero accepted",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   "VAL",
				Distance: "0.01",
			},
			wantGroupA:   []string{"ALA"},
			wantGroupB:   []string{"VAL"},
			wantDistance: 0.01,
		},
		{
			name: "negative distance rejected",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   "VAL",
				Distance: "-3.5",
			},
			wantErr: ErrInvalidDistance,
		},
		{
			name: "non-numeric distance rejected",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   "VAL",
				Distance: "close",
			},
			wantErr: ErrInvalidDistance,
		},
		{
			name: "distance beyond sanity limit rejected",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   "VAL",
				Distance: "5000",
			},
			wantErr: ErrInvalidDistance,
		},
		{
			name: "unknown code rejected",
			candidate: Candidate{
				GroupA:   "ALA,XXX",
				GroupB:   "VAL",
				Distance: "5",
			},
			wantErr: ErrInvalidCode,
		},
		{
			name: "empty group rejected",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   " , ,",
				Distance: "5",
			},
			wantErr: ErrEmptyGroup,
		},
		{
			name: "rule limit enforced",
			candidate: Candidate{
				GroupA:   "ALA",
				GroupB:   "VAL",
				Distance: "5",
			},
			collectionSize: 12,
			wantErr:        ErrRuleLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := testValidator().Validate(tt.candidate, tt.collectionSize)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantGroupA, rule.GroupA)
			assert.Equal(t, tt.wantGroupB, rule.GroupB)
			assert.InDelta(t, tt.wantDistance, rule.MaxDistance, 1e-12)
			assert.Zero(t, rule.ID, "storage assigns the id, not the validator")
		})
	}
}

func TestValidator_DefaultName(t *testing.T) {
	rule, err := testValidator().Validate(Candidate{
		GroupA:   "ALA",
		GroupB:   "VAL",
		Distance: "5",
	}, 3)

	require.NoError(t, err)
	assert.Equal(t, "Rule 4", rule.Name)
}

func TestValidator_ErrorContext(t *testing.T) {
	_, err := testValidator().Validate(Candidate{
		GroupA:   "ALA,BOGUS",
		GroupB:   "VAL",
		Distance: "5",
	}, 0)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "group A", verr.Field)
	assert.Equal(t, "BOGUS", verr.Value)
}
