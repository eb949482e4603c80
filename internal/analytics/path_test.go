package analytics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildLinePath_Empty(t *testing.T) {
	assert.Equal(t, "", BuildLinePath(nil))
	assert.Equal(t, "", BuildLinePath([]float64{}))
}

func TestBuildLinePath_AllZeroSitsOnBottom(t *testing.T) {
	got := BuildLinePath(make([]float64, 7))
	assert.Equal(t, "M0 100 L16.667 100 L33.333 100 L50 100 L66.667 100 L83.333 100 L100 100", got)
}

func TestBuildLinePath_EqualValuesSitOnTop(t *testing.T) {
	got := BuildLinePath([]float64{3, 3, 3, 3, 3, 3, 3})
	for _, seg := range strings.Split(strings.TrimPrefix(got, "M"), " L") {
		parts := strings.Fields(seg)
		if assert.Len(t, parts, 2) {
			assert.Equal(t, "0", parts[1], "segment %q", seg)
		}
	}
}

func TestBuildLinePath_ZeroAmongPositives(t *testing.T) {
	assert.Equal(t, "M0 100 L50 50 L100 0", BuildLinePath([]float64{0, 2, 4}))
	assert.Equal(t, "M0 0 L50 100 L100 0", BuildLinePath([]float64{5, 0, 5}))
}

func TestBuildLinePath_SinglePoint(t *testing.T) {
	assert.Equal(t, "M0 0", BuildLinePath([]float64{5}))
	assert.Equal(t, "M0 100", BuildLinePath([]float64{0}))
}

func TestBuildLinePath_FractionalScale(t *testing.T) {
	assert.Equal(t, "M0 66.667 L100 0", BuildLinePath([]float64{1, 3}))
}
