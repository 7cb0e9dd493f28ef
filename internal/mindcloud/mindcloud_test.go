package mindcloud

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTermsCountsAcrossEntries(t *testing.T) {
	terms := Terms([]string{
		"Breathing slowly, breathing deeply.",
		"Slept early. Breathing felt easy today.",
	}, 0)

	require.Equal(t, Term{Word: "breathing", Count: 3}, terms[0])

	byWord := map[string]int{}
	for _, tm := range terms {
		byWord[tm.Word] = tm.Count
	}
	require.Equal(t, 1, byWord["slowly"])
	require.Equal(t, 1, byWord["today"])
}

func TestTermsDropsShortTokensAndPunctuation(t *testing.T) {
	terms := Terms([]string{"a b, c! rest rest"}, 0)
	require.Equal(t, []Term{{Word: "rest", Count: 2}}, terms)
}

func TestTermsLimitAndStableOrder(t *testing.T) {
	terms := Terms([]string{"apple banana apple cherry banana date"}, 2)
	require.Equal(t, []Term{
		{Word: "apple", Count: 2},
		{Word: "banana", Count: 2},
	}, terms)
}

func TestTermsUnicode(t *testing.T) {
	terms := Terms([]string{"오늘 호흡 연습 호흡"}, 0)
	require.Equal(t, Term{Word: "호흡", Count: 2}, terms[0])
}

func TestTermsEmpty(t *testing.T) {
	require.Empty(t, Terms(nil, 10))
}
