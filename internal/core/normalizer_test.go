package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{
		"What is churn rate?",
		"How do I reset my password",
		"",
		"   \t\n",
		"Προσοχή unicode ёлка 123",
	}
	for _, input := range inputs {
		assert.Equal(t, Normalize(input), Normalize(input), "input %q", input)
	}
}

func TestNormalizeCaseInsensitive(t *testing.T) {
	inputs := []string{
		"What is churn rate?",
		"How Do I Reset My Password?",
		"MiXeD CaSe QuEsTiOn",
	}
	for _, input := range inputs {
		assert.Equal(t, Normalize(input), Normalize(strings.ToUpper(input)), "input %q", input)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "  \t \n ", expected: ""},
		{name: "stems plurals and gerunds", input: "Running with cats", expected: "run with cat"},
		{name: "strips punctuation", input: "reset... my, password!?", expected: "reset my password"},
		{name: "collapses whitespace", input: "reset    my\tpassword", expected: "reset my password"},
		{name: "adverb suffix", input: "Quickly", expected: "quick"},
		{name: "double consonant undoubled", input: "resetting", expected: "reset"},
		{name: "digits kept", input: "error 404", expected: "error 404"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeStemEquivalentQuestionsCollide(t *testing.T) {
	pairs := [][2]string{
		{"What is X?", "what IS X"},
		{"How to reset passwords", "how to resetting password"},
		{"pricing plans", "Pricing plan"},
	}
	for _, pair := range pairs {
		assert.Equal(t, Normalize(pair[0]), Normalize(pair[1]), "%q vs %q", pair[0], pair[1])
	}
}
