package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Red Apple", Food},
		{"cardboard shipping box", Package},
		{"Golden Retriever", Pet},
		{"adult woman standing", Person},
		{"wooden chair", General},
		{"", General},
		{"   ", General},
		// food keywords are checked first
		{"dog food bag", Food},
		{"cat in a box", Package},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.label))
		})
	}
}

func TestTemplates(t *testing.T) {
	assert.Len(t, Templates(Food), 3)
	assert.Len(t, Templates(Package), 5)
	assert.Len(t, Templates(Pet), 4)
	assert.Len(t, Templates(Person), 4)
	assert.Empty(t, Templates(General))

	food := Templates(Food)
	assert.Equal(t, "Is this food raw or cooked?", food[0].Text)
	assert.True(t, food[0].Required)

	food[0].Options[0] = "mutated"
	assert.Equal(t, "Raw", Templates(Food)[0].Options[0])
}

func TestCombineCaps(t *testing.T) {
	base := make([]int, 10)
	for i := range base {
		base[i] = i
	}
	extra := []int{100, 101, 102, 103, 104}

	out := Combine(base, extra)
	assert.Len(t, out, MaxQuestions)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 100, 101, 102, 103}, out)

	assert.Equal(t, []int{1, 100}, Combine([]int{1}, []int{100}))
	assert.Empty(t, Combine[int](nil, nil))
}
