package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskbot/pkg/session"
)

func TestParseTriple(t *testing.T) {
	cases := map[string]struct {
		in   string
		want session.Triple
		ok   bool
	}{
		"spaces":          {"10 20 30", session.Triple{Min: 10, MostLikely: 20, Max: 30}, true},
		"commas":          {"10, 20, 30", session.Triple{Min: 10, MostLikely: 20, Max: 30}, true},
		"newlines":        {"10\n20\n30", session.Triple{Min: 10, MostLikely: 20, Max: 30}, true},
		"mixed noise":     {"мин 5, вероятно 15; макс 40", session.Triple{Min: 5, MostLikely: 15, Max: 40}, true},
		"negatives":       {"-10 -5 0", session.Triple{Min: -10, MostLikely: -5, Max: 0}, true},
		"equal values":    {"7 7 7", session.Triple{Min: 7, MostLikely: 7, Max: 7}, true},
		"extra numbers":   {"1 2 3 4 5", session.Triple{Min: 1, MostLikely: 2, Max: 3}, true},
		"too few":         {"10 20", session.Triple{}, false},
		"no numbers":      {"нет цифр", session.Triple{}, false},
		"wrong order":     {"30 20 10", session.Triple{}, false},
		"most above max":  {"10 50 30", session.Triple{}, false},
		"min above most":  {"25 20 30", session.Triple{}, false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, verr := parseTriple(tc.in)
			if !tc.ok {
				require.NotNil(t, verr)
				assert.NotEmpty(t, verr.Message)
				return
			}
			require.Nil(t, verr)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseProbability(t *testing.T) {
	for _, in := range []string{"0", "100", " 42 ", "75"} {
		v, verr := parseProbability(in)
		require.Nil(t, verr, in)
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
	for _, in := range []string{"-1", "101", "abc", "", "50%"} {
		_, verr := parseProbability(in)
		require.NotNil(t, verr, in)
	}
}
