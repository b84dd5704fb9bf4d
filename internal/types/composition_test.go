package types

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompositionRequest() CompositionRequest {
	return CompositionRequest{
		Role:  "backend",
		Area:  "platform",
		Level: LevelMid,
		Requirements: []RequiredTechnology{
			{Technology: "Go", MinimumLevel: 3},
			{Technology: "PostgreSQL", MinimumLevel: 2},
		},
		TeamSize: 4,
	}
}

func TestCompositionRequest_Validate(t *testing.T) {
	req := validCompositionRequest()
	require.NoError(t, req.Validate())
}

func TestCompositionRequest_Validate_EmptyRequirements(t *testing.T) {
	req := validCompositionRequest()
	req.Requirements = nil
	assert.Error(t, req.Validate())
}

func TestCompositionRequest_Validate_NonPositiveTeamSize(t *testing.T) {
	req := validCompositionRequest()
	req.TeamSize = 0
	assert.Error(t, req.Validate())
}

func TestCompositionRequest_Validate_DuplicateRequirement(t *testing.T) {
	req := validCompositionRequest()
	req.Requirements = append(req.Requirements, RequiredTechnology{Technology: "go", MinimumLevel: 1})

	err := req.Validate()
	require.Error(t, err)

	var validationErr *ErrValidation
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "requirements", validationErr.Field)
}

func TestCompositionRequest_Validate_UnknownLevel(t *testing.T) {
	req := validCompositionRequest()
	req.Level = "principal"

	var validationErr *ErrValidation
	require.ErrorAs(t, req.Validate(), &validationErr)
	assert.Equal(t, "level", validationErr.Field)
}

func TestValidateRequirements(t *testing.T) {
	tests := []struct {
		name         string
		requirements []RequiredTechnology
		wantErr      bool
	}{
		{
			name: "valid set",
			requirements: []RequiredTechnology{
				{Technology: "Go", MinimumLevel: 3},
				{Technology: "Kafka", MinimumLevel: 1},
			},
		},
		{
			name: "duplicate differs only by case",
			requirements: []RequiredTechnology{
				{Technology: "Go", MinimumLevel: 3},
				{Technology: "GO", MinimumLevel: 2},
			},
			wantErr: true,
		},
		{
			name:         "empty technology name",
			requirements: []RequiredTechnology{{Technology: "  ", MinimumLevel: 1}},
			wantErr:      true,
		},
		{
			name:         "zero minimum level",
			requirements: []RequiredTechnology{{Technology: "Go", MinimumLevel: 0}},
			wantErr:      true,
		},
		{
			name:         "empty set is valid",
			requirements: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequirements(tt.requirements)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTeam_HasMember(t *testing.T) {
	memberID := uuid.New()
	team := &Team{MemberIDs: []uuid.UUID{uuid.New(), memberID}}

	assert.True(t, team.HasMember(memberID))
	assert.False(t, team.HasMember(uuid.New()))
}
