package picker_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/harborline/caseflow-api/internal/picker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCandidates() []picker.Candidate {
	return []picker.Candidate{
		{ID: uuid.New(), Label: "Rotterdam", Subtitle: "NLRTM"},
		{ID: uuid.New(), Label: "Hamburg", Subtitle: "DEHAM"},
		{ID: uuid.New(), Label: "Antwerp", Subtitle: "BEANR"},
	}
}

func TestPicker_Filtered(t *testing.T) {
	p := picker.New(testCandidates())

	t.Run("empty query returns all", func(t *testing.T) {
		assert.Len(t, p.Filtered(), 3)
	})

	t.Run("matches label case-insensitively", func(t *testing.T) {
		p.SetQuery("rott")
		filtered := p.Filtered()
		require.Len(t, filtered, 1)
		assert.Equal(t, "Rotterdam", filtered[0].Label)
	})

	t.Run("matches subtitle", func(t *testing.T) {
		p.SetQuery("deham")
		filtered := p.Filtered()
		require.Len(t, filtered, 1)
		assert.Equal(t, "Hamburg", filtered[0].Label)
	})

	t.Run("substring not fuzzy", func(t *testing.T) {
		p.SetQuery("rtm")
		filtered := p.Filtered()
		require.Len(t, filtered, 1)
		assert.Equal(t, "Rotterdam", filtered[0].Label)

		p.SetQuery("rtdm")
		assert.Empty(t, p.Filtered())
	})
}

func TestPicker_ArrowKeys(t *testing.T) {
	p := picker.New(testCandidates())

	t.Run("arrow down on closed picker only opens", func(t *testing.T) {
		p.HandleKey(picker.KeyArrowDown)
		assert.True(t, p.IsOpen())
		assert.Equal(t, -1, p.Highlighted())
	})

	t.Run("arrow down moves cursor and clamps at end", func(t *testing.T) {
		p.HandleKey(picker.KeyArrowDown)
		assert.Equal(t, 0, p.Highlighted())

		p.HandleKey(picker.KeyArrowDown)
		p.HandleKey(picker.KeyArrowDown)
		assert.Equal(t, 2, p.Highlighted())

		// No wraparound past the last candidate
		p.HandleKey(picker.KeyArrowDown)
		assert.Equal(t, 2, p.Highlighted())
	})

	t.Run("arrow up clamps at start", func(t *testing.T) {
		p.HandleKey(picker.KeyArrowUp)
		p.HandleKey(picker.KeyArrowUp)
		assert.Equal(t, 0, p.Highlighted())

		p.HandleKey(picker.KeyArrowUp)
		assert.Equal(t, 0, p.Highlighted())
	})
}

func TestPicker_EnterSelectsHighlighted(t *testing.T) {
	candidates := testCandidates()
	p := picker.New(candidates)

	var selected *picker.Selection
	p.OnSelect(func(s picker.Selection) { selected = &s })

	p.Focus()
	p.HandleKey(picker.KeyArrowDown)
	p.HandleKey(picker.KeyArrowDown)
	p.HandleKey(picker.KeyEnter)

	require.NotNil(t, selected)
	require.NotNil(t, selected.Candidate)
	assert.Equal(t, "Hamburg", selected.Candidate.Label)
	assert.Equal(t, "Hamburg", selected.Text)
	assert.Equal(t, "Hamburg", p.Query())
	assert.False(t, p.IsOpen())
}

func TestPicker_EnterCreatesFromFreeText(t *testing.T) {
	p := picker.New(testCandidates())

	created := 0
	createdText := ""
	p.OnCreateNew(func(text string) {
		created++
		createdText = text
	})

	p.SetQuery("Zeebrugge")
	p.HandleKey(picker.KeyEnter)

	assert.Equal(t, 1, created)
	assert.Equal(t, "Zeebrugge", createdText)
	assert.False(t, p.IsOpen())

	// A second Enter on the closed picker must not create again
	p.HandleKey(picker.KeyEnter)
	assert.Equal(t, 1, created)
}

func TestPicker_EnterWithMatchesDoesNotCreate(t *testing.T) {
	p := picker.New(testCandidates())

	created := 0
	p.OnCreateNew(func(string) { created++ })

	// Query matches a candidate but nothing is highlighted
	p.SetQuery("rott")
	p.HandleKey(picker.KeyEnter)

	assert.Equal(t, 0, created)
}

func TestPicker_EscapeCloses(t *testing.T) {
	p := picker.New(testCandidates())

	p.SetQuery("ham")
	p.HandleKey(picker.KeyArrowDown)
	require.True(t, p.IsOpen())

	p.HandleKey(picker.KeyEscape)
	assert.False(t, p.IsOpen())
	assert.Equal(t, -1, p.Highlighted())
	// Escape keeps the typed text
	assert.Equal(t, "ham", p.Query())
}

func TestPicker_SelectByClick(t *testing.T) {
	candidates := testCandidates()
	p := picker.New(candidates)

	var selected *picker.Selection
	p.OnSelect(func(s picker.Selection) { selected = &s })

	p.Select(candidates[2])

	require.NotNil(t, selected)
	assert.Equal(t, candidates[2].ID, selected.Candidate.ID)
	assert.Equal(t, "Antwerp", p.Query())
}

func TestPicker_SetCandidatesResetsHighlight(t *testing.T) {
	p := picker.New(testCandidates())

	p.Focus()
	p.HandleKey(picker.KeyArrowDown)
	require.Equal(t, 0, p.Highlighted())

	p.SetCandidates(testCandidates()[:1])
	assert.Equal(t, -1, p.Highlighted())
}
