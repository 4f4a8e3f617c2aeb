package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cheeselab/cheesequiz/internal/quiz"
)

func TestChoiceList_LabelsFollowSlots(t *testing.T) {
	c := ChoiceList{Choices: []quiz.Choice{
		{Text: "Brie"},
		{},
		{ImageURL: "https://img/x.jpg"},
	}}
	out := c.View(120)

	assert.Contains(t, out, "1)  Brie")
	assert.Contains(t, out, "2)  "+emptySlot)
	assert.Contains(t, out, "3)  [image] https://img/x.jpg")
}

func TestChoiceList_TextAndImage(t *testing.T) {
	c := ChoiceList{Choices: []quiz.Choice{{Text: "Gouda", ImageURL: "https://img/gouda.jpg"}}}
	lines := strings.Split(strings.TrimRight(c.View(120), "\n"), "\n")

	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Gouda")
	assert.Contains(t, lines[1], "[image] https://img/gouda.jpg")
}

func TestChoiceList_Move(t *testing.T) {
	c := ChoiceList{Choices: make([]quiz.Choice, 3)}

	c.Move(1)
	assert.Equal(t, 1, c.Cursor)
	c.Move(5)
	assert.Equal(t, 3, c.Cursor)
	c.Move(-10)
	assert.Equal(t, 1, c.Cursor)

	empty := ChoiceList{}
	empty.Move(1)
	assert.Equal(t, 0, empty.Cursor)
}

func TestChoiceList_MarksSelection(t *testing.T) {
	c := ChoiceList{Choices: []quiz.Choice{{Text: "a"}, {Text: "b"}}, Cursor: 1, Selected: 2}
	lines := strings.Split(strings.TrimRight(c.View(120), "\n"), "\n")

	assert.Contains(t, lines[0], "▸")
	assert.NotContains(t, lines[0], "●")
	assert.Contains(t, lines[1], "●")
}

func TestChoiceList_GradedHidesCursor(t *testing.T) {
	c := ChoiceList{Choices: []quiz.Choice{{Text: "a"}, {Text: "b"}}, Cursor: 1, Selected: 1, Graded: true, CorrectIndex: 2}
	assert.NotContains(t, c.View(120), "▸")
}

func TestScoreBar_Clamps(t *testing.T) {
	assert.Contains(t, ScoreBar{Percent: 150, Width: 20}.View(), "100%")
	assert.Contains(t, ScoreBar{Percent: -3, Width: 20}.View(), "0%")
}

func TestScoreModal(t *testing.T) {
	out := ScoreModal{Percent: 100, CorrectCount: 1, TotalCount: 1, Message: "correct"}.View(80, 24)
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "1 of 1 correct")

	out = ScoreModal{Percent: 0, CorrectCount: 0, TotalCount: 1}.View(80, 24)
	assert.Contains(t, out, "Not quite")
	assert.Contains(t, out, "0 of 1 correct")
}

func TestButtonBar(t *testing.T) {
	out := ButtonBar(NewButton("Grade", "g", true), NewButton("Reload", "r", false))
	assert.Contains(t, out, "[g] Grade")
	assert.Contains(t, out, "[r] Reload")
}
