package detect

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testKeywords = []string{"managed", "developed", "led", "achieved", "python", "go", "docker", "aws"}

func TestDetectContactInfo(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		wantEmail bool
		wantPhone bool
	}{
		{"both", "Jane Doe jane@example.com +1 555-123-4567", true, true},
		{"email only", "reach me at jane@example.com", true, false},
		{"phone dots", "call 555.123.4567", false, true},
		{"phone parens", "call (555) 123 4567", false, true},
		{"neither", "no contact details here", false, false},
	}

	detector := New(testKeywords)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig := detector.Detect(tc.text)
			require.Equal(t, tc.wantEmail, sig.HasEmail)
			require.Equal(t, tc.wantPhone, sig.HasPhone)
		})
	}
}

func TestDetectSections(t *testing.T) {
	detector := New(testKeywords)

	sig := detector.Detect("Summary of my career. Experience at Acme. Education: BSc. Skills include Go.")
	require.Equal(t, []string{"summary", "experience", "education", "skills"}, sig.Sections)

	// Synonyms count for their canonical section.
	sig = detector.Detect("Objective: build things. Work history follows. Portfolio available.")
	require.Equal(t, []string{"summary", "experience", "projects"}, sig.Sections)

	sig = detector.Detect("nothing structured at all")
	require.Empty(t, sig.Sections)
}

func TestDetectBullets(t *testing.T) {
	detector := New(testKeywords)

	sig := detector.Detect("• built a thing • shipped a thing - fixed a thing * measured a thing")
	require.Equal(t, 4, sig.BulletCount)

	// Hyphenated words are not bullets.
	sig = detector.Detect("well-known state-of-the-art system")
	require.Equal(t, 0, sig.BulletCount)
}

func TestDetectKeywords(t *testing.T) {
	detector := New(testKeywords)

	sig := detector.Detect("Developed services in Go, managed a team, deployed with Docker. Developed more.")
	require.Equal(t, []string{"managed", "developed", "go", "docker"}, sig.KeywordHits)

	// Substrings do not match: "gopher" is not "go".
	sig = detector.Detect("gopher enthusiast")
	require.Empty(t, sig.KeywordHits)
}

func TestDetectLengthBuckets(t *testing.T) {
	detector := New(testKeywords)

	cases := []struct {
		words int
		want  Bucket
	}{
		{50, TooShort},
		{149, TooShort},
		{150, Ideal},
		{400, Ideal},
		{800, Ideal},
		{801, TooLong},
	}

	for _, tc := range cases {
		text := strings.TrimSpace(strings.Repeat("word ", tc.words))
		sig := detector.Detect(text)
		require.Equal(t, tc.words, sig.WordCount)
		require.Equal(t, tc.want, sig.Length, "words=%d", tc.words)
	}
}

func TestDetectRiskyFormatting(t *testing.T) {
	detector := New(testKeywords)

	require.True(t, detector.Detect("name | address | phone").RiskyFormatting)
	require.True(t, detector.Detect("◦ odd bullet glyph").RiskyFormatting)
	require.False(t, detector.Detect("plain resume text with - bullets").RiskyFormatting)
}

func TestDetectDates(t *testing.T) {
	detector := New(testKeywords)

	require.True(t, detector.Detect("Acme Corp 2019 - 2023").HasDates)
	require.False(t, detector.Detect("no years mentioned").HasDates)
}

func TestDetectFullyPopulated(t *testing.T) {
	// Every signal must be present even for text that matches nothing.
	sig := New(testKeywords).Detect("zzz")

	require.False(t, sig.HasEmail)
	require.False(t, sig.HasPhone)
	require.False(t, sig.HasDates)
	require.NotNil(t, sig.Sections)
	require.Empty(t, sig.Sections)
	require.Zero(t, sig.BulletCount)
	require.NotNil(t, sig.KeywordHits)
	require.Empty(t, sig.KeywordHits)
	require.Equal(t, 1, sig.WordCount)
	require.Equal(t, TooShort, sig.Length)
	require.False(t, sig.RiskyFormatting)
}

func TestDetectDeterministic(t *testing.T) {
	detector := New(testKeywords)
	text := "Jane jane@example.com 555-123-4567 Experience Education Skills • led • developed 2020"

	first := detector.Detect(text)
	second := detector.Detect(text)
	require.True(t, reflect.DeepEqual(first, second))
}
