package match

import (
	"testing"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralMatch(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		ignoreCase  bool
		text        string
		shouldMatch bool
	}{
		{
			name:        "exact substring",
			pattern:     "foo",
			text:        "a foo bar",
			shouldMatch: true,
		},
		{
			name:        "byte-exact only when case sensitive",
			pattern:     "Foo",
			text:        "a foo bar",
			shouldMatch: false,
		},
		{
			name:        "case folded",
			pattern:     "Foo",
			ignoreCase:  true,
			text:        "a fOO bar",
			shouldMatch: true,
		},
		{
			name:        "regex metacharacters are literal",
			pattern:     "a.c",
			text:        "xaycz",
			shouldMatch: false,
		},
		{
			name:        "dot matched literally",
			pattern:     "a.c",
			text:        "xa.cz",
			shouldMatch: true,
		},
		{
			name:        "no match",
			pattern:     "foo",
			text:        "bar baz",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, false, tt.ignoreCase)
			require.NoError(t, err)
			assert.Equal(t, tt.shouldMatch, m.MatchString(tt.text))
		})
	}
}

func TestRegexMatch(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		ignoreCase  bool
		text        string
		shouldMatch bool
	}{
		{
			name:        "character class",
			pattern:     "fo[ox]",
			text:        "fox trot",
			shouldMatch: true,
		},
		{
			name:        "anchored",
			pattern:     "^foo$",
			text:        "foo",
			shouldMatch: true,
		},
		{
			name:        "anchored no match",
			pattern:     "^foo$",
			text:        " foo",
			shouldMatch: false,
		},
		{
			name:        "case insensitive alternation",
			pattern:     "foo|bar",
			ignoreCase:  true,
			text:        "BAR",
			shouldMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, true, tt.ignoreCase)
			require.NoError(t, err)
			assert.Equal(t, tt.shouldMatch, m.MatchString(tt.text))
		})
	}
}

func TestInvalidRegex(t *testing.T) {
	_, err := New("fo[", true, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestEmptyPattern(t *testing.T) {
	_, err := New("", false, false)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestReplaceLiteral(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		ignoreCase  bool
		text        string
		replacement string
		want        string
	}{
		{
			name:        "every occurrence",
			pattern:     "foo",
			text:        "foo foo",
			replacement: "baz",
			want:        "baz baz",
		},
		{
			name:        "case insensitive keeps surroundings",
			pattern:     "foo",
			ignoreCase:  true,
			text:        "Foo bar FOO",
			replacement: "baz",
			want:        "baz bar baz",
		},
		{
			name:        "replacement inserted verbatim",
			pattern:     "x",
			text:        "axb",
			replacement: "$1",
			want:        "a$1b",
		},
		{
			name:        "no occurrence",
			pattern:     "zap",
			text:        "foo bar",
			replacement: "x",
			want:        "foo bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.pattern, false, tt.ignoreCase)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Replace(tt.text, tt.replacement))
		})
	}
}

func TestReplaceRegex(t *testing.T) {
	t.Run("group references expand", func(t *testing.T) {
		m, err := New(`(\w+)_config`, true, false)
		require.NoError(t, err)
		assert.Equal(t, "config_foo", m.Replace("foo_config", "config_$1"))
	})

	t.Run("case insensitive substitution", func(t *testing.T) {
		m, err := New("foo", true, true)
		require.NoError(t, err)
		assert.Equal(t, "baz baz", m.Replace("FOO Foo", "baz"))
	})
}

func TestMatcherIsPure(t *testing.T) {
	m, err := New("foo", false, false)
	require.NoError(t, err)

	// Same inputs, same answers, no state between calls
	for i := 0; i < 3; i++ {
		assert.True(t, m.MatchString("a foo"))
		assert.False(t, m.MatchString("a bar"))
		assert.Equal(t, "baz", m.Replace("foo", "baz"))
	}
}
