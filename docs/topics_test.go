package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be successfully loaded by the tpr topic <topic_name> command.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.

	// Read docs/readme.md line by line and extract topics using regex.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	// Check 1: Every topic listed in docs/readme.md can be successfully loaded.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	// Check 2: Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	var mdFiles []string
	for _, file := range files {
		base := filepath.Base(file)
		if base != "readme.md" {
			mdFiles = append(mdFiles, strings.TrimSuffix(base, ".md"))
		}
	}

	for _, mdFile := range mdFiles {
		found := false
		for _, topic := range topicsInReadme {
			if topic == mdFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in docs/readme.md", mdFile)
		}
	}
}

func TestHeadings(t *testing.T) {
	// Every topic is a standalone document starting with its title.
	topics, err := GetAllTopics()
	require.NoError(t, err)
	require.NotEmpty(t, topics)

	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			require.NoError(t, err)

			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))
			first, ok := root.FirstChild().(*ast.Heading)
			require.True(t, ok, "topic %q must start with a heading", topic)
			assert.Equal(t, 1, first.Level)

			var titles int
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if h, ok := n.(*ast.Heading); ok && entering && h.Level == 1 {
					titles++
				}
				return ast.WalkContinue, nil
			})
			assert.Equal(t, 1, titles, "topic %q must have a single title", topic)
		})
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopic("*")
	require.NoError(t, err)
	for _, title := range []string{"# Methodology", "# Data", "# Usage"} {
		assert.Contains(t, all, title)
	}
	assert.NotContains(t, all, "# Documentation", "readme is not a topic")

	_, err = GetTopic("unknown")
	assert.ErrorContains(t, err, `topic "unknown" not found`)
}

func TestGetAllTopics(t *testing.T) {
	topics, err := GetAllTopics()
	require.NoError(t, err)
	assert.Equal(t, []string{"data", "methodology", "usage"}, topics)
}

func TestGetTopicsStar(t *testing.T) {
	all, err := GetTopic("*")
	require.NoError(t, err)

	got, err := GetTopics("*")
	require.NoError(t, err)
	assert.Equal(t, all+"\n", got, "the star is expanded once")

	got, err = GetTopics("usage", "*")
	require.NoError(t, err)
	usage, err := GetTopic("usage")
	require.NoError(t, err)
	assert.Equal(t, usage+"\n"+all+"\n", got)

	_, err = GetTopics("data", "unknown")
	assert.ErrorContains(t, err, `topic "unknown" not found`)
}

func TestListing(t *testing.T) {
	got, err := Listing()
	require.NoError(t, err)
	assert.Equal(t, "# Topics\n\nShow one with `tpr topic <topic>`, or all of them with `tpr topic '*'`.\n\n"+
		"* data: Data\n"+
		"* methodology: Methodology\n"+
		"* usage: Usage\n", got)
}

func TestMethodologyCharts(t *testing.T) {
	// Charts plot a 0% point on the window start, the base month.
	content, err := GetTopic("methodology")
	require.NoError(t, err)
	assert.Contains(t, content, "start at 0% on the base month of the window")
}
