package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected ExperienceLevel
		wantErr  bool
	}{
		{"junior", LevelJunior, false},
		{"Jr", LevelJunior, false},
		{"MID", LevelMid, false},
		{"intermediate", LevelMid, false},
		{"senior", LevelSenior, false},
		{" sr ", LevelSenior, false},
		{"principal", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseExperienceLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestExperienceLevel_AdjacentTo(t *testing.T) {
	assert.True(t, LevelJunior.AdjacentTo(LevelMid))
	assert.True(t, LevelMid.AdjacentTo(LevelJunior))
	assert.True(t, LevelMid.AdjacentTo(LevelSenior))
	assert.True(t, LevelSenior.AdjacentTo(LevelMid))

	// Junior and senior are two steps apart, not adjacent.
	assert.False(t, LevelJunior.AdjacentTo(LevelSenior))
	assert.False(t, LevelSenior.AdjacentTo(LevelJunior))

	// Equal levels are exact matches, not adjacent ones.
	assert.False(t, LevelMid.AdjacentTo(LevelMid))

	// Unknown levels never match anything.
	assert.False(t, ExperienceLevel("principal").AdjacentTo(LevelSenior))
}

func TestExperienceLevel_AtLeast(t *testing.T) {
	assert.True(t, LevelSenior.AtLeast(LevelJunior))
	assert.True(t, LevelMid.AtLeast(LevelMid))
	assert.False(t, LevelJunior.AtLeast(LevelMid))
	assert.False(t, ExperienceLevel("unknown").AtLeast(LevelJunior))
}

func TestEmployeeProfile_TechnologyLevel(t *testing.T) {
	employee := &EmployeeProfile{
		Technologies: []TechnologySkill{
			{Technology: "Go", Level: 4, YearsExperience: 4},
			{Technology: "PostgreSQL", Level: 3, YearsExperience: 2},
		},
	}

	skill, found := employee.TechnologyLevel("go")
	require.True(t, found)
	assert.Equal(t, 4, skill.Level)

	_, found = employee.TechnologyLevel("Rust")
	assert.False(t, found)
}

func TestEmployeeProfile_TotalYears(t *testing.T) {
	employee := &EmployeeProfile{
		Technologies: []TechnologySkill{
			{Technology: "Go", Level: 4, YearsExperience: 4},
			{Technology: "SQL", Level: 3, YearsExperience: 2.5},
		},
	}
	assert.InDelta(t, 6.5, employee.TotalYears(), 0.001)

	empty := &EmployeeProfile{}
	assert.Zero(t, empty.TotalYears())
}
