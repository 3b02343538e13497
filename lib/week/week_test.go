package week

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_String(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.Equal(t, "Day(9)", Day(9).String())
}

func TestDay_IsWeekend(t *testing.T) {
	weekend := map[Day]bool{
		Monday:    false,
		Tuesday:   false,
		Wednesday: false,
		Thursday:  false,
		Friday:    false,
		Saturday:  true,
		Sunday:    true,
	}
	for d, expected := range weekend {
		assert.Equal(t, expected, d.IsWeekend(), d.String())
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Workday, Classify(Wednesday))
	assert.Equal(t, Weekend, Classify(Saturday))
	assert.Equal(t, "workday", Classify(Friday).String())
	assert.Equal(t, "weekend", Classify(Sunday).String())
}

func TestParse(t *testing.T) {
	d, err := Parse("friday")
	require.NoError(t, err)
	assert.Equal(t, Friday, d)

	d, err = Parse("  SATURDAY ")
	require.NoError(t, err)
	assert.Equal(t, Saturday, d)

	_, err = Parse("smarch")
	assert.ErrorIs(t, err, ErrUnknownDay)
}
