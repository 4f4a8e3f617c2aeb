package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeChoiceObjects(t *testing.T) {
	raw := `[{"question":"Q1","choiceObjects":[{"text":"A"},{"text":"B"}],"answer":2,"explanation":"because"}]`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Q1", q.Text)
	assert.Equal(t, []Choice{{Text: "A"}, {Text: "B"}}, q.Choices)
	assert.Equal(t, 2, q.CorrectIndex)
	assert.Equal(t, "because", q.Explanation)
}

func TestNormalizeZipsShorterImageArray(t *testing.T) {
	raw := `[{"question":"Q","choices":["A","B"],"choiceImageUrls":["u1"],"correctIndex":1}]`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, []Choice{{Text: "A", ImageURL: "u1"}, {Text: "B", ImageURL: ""}}, q.Choices)
}

func TestNormalizeIgnoresSurplusImages(t *testing.T) {
	raw := `[{"question":"Q","choices":["A"],"choiceImageUrls":["u1","u2"],"correctIndex":1}]`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, []Choice{{Text: "A", ImageURL: "u1"}}, q.Choices)
}

func TestNormalizeFlatImages(t *testing.T) {
	raw := `{"ok":true,"questionText":"Which is brie?","images":["https://img/1.png","https://img/2.png","https://img/3.png"],"correctIndex":"3","explanation":"soft rind"}`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Which is brie?", q.Text)
	require.Len(t, q.Choices, 3)
	for i, c := range q.Choices {
		assert.Empty(t, c.Text)
		assert.NotEmpty(t, c.ImageURL, "slot %d", Label(i))
	}
	assert.Equal(t, 3, q.CorrectIndex)
}

func TestNormalizeImageOnlyFromChoiceImageURLs(t *testing.T) {
	raw := `[{"question":"Q","choiceImageUrls":["u1","u2"],"correctIndex":2}]`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []Choice{{ImageURL: "u1"}, {ImageURL: "u2"}}, q.Choices)
}

func TestNormalizePrecedence(t *testing.T) {
	// choiceObjects wins over choices, which wins over images.
	raw := `[{"question":"Q","choiceObjects":[{"text":"obj"}],"choices":["txt"],"images":["img"],"correctIndex":1}]`
	q, err := Normalize([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []Choice{{Text: "obj"}}, q.Choices)

	raw = `[{"question":"Q","choices":["txt"],"images":["img"],"correctIndex":1}]`
	q, err = Normalize([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, []Choice{{Text: "txt"}}, q.Choices)
}

func TestNormalizeKeepsEmptySlots(t *testing.T) {
	raw := `[{"question":"Q","choiceObjects":[{"text":"A"},{},null,{"imageUrl":"u"}],"correctIndex":4}]`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)

	require.Len(t, q.Choices, 4)
	assert.False(t, q.Choices[0].Empty())
	assert.True(t, q.Choices[1].Empty())
	assert.True(t, q.Choices[2].Empty())
	assert.Equal(t, "u", q.Choices[3].ImageURL)
	assert.Equal(t, 4, q.CorrectIndex)
}

func TestNormalizeCorrectIndexField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"correctIndex number", `[{"choices":["a","b"],"correctIndex":2}]`, 2},
		{"correctIndex string", `[{"choices":["a","b"],"correctIndex":" 2 "}]`, 2},
		{"answer alias", `[{"choices":["a","b"],"answer":1}]`, 1},
		{"correctIndex wins over answer", `[{"choices":["a","b"],"correctIndex":1,"answer":2}]`, 1},
		{"null correctIndex falls back to answer", `[{"choices":["a","b"],"correctIndex":null,"answer":"2"}]`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Normalize([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.CorrectIndex)
		})
	}
}

func TestNormalizeID(t *testing.T) {
	q, err := Normalize([]byte(`[{"id":"q-7","choices":["a"],"correctIndex":1}]`))
	require.NoError(t, err)
	assert.Equal(t, "q-7", q.ID)

	q, err = Normalize([]byte(`[{"id":42,"choices":["a"],"correctIndex":1}]`))
	require.NoError(t, err)
	assert.Equal(t, "42", q.ID)
}

func TestNormalizeReadsOnlyFirstArrayElement(t *testing.T) {
	raw := `[{"question":"Q","choices":["A","B"],"correctIndex":2}, 7, {"choices":"junk"}]`

	q, err := Normalize([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "Q", q.Text)
	assert.Equal(t, 2, q.CorrectIndex)

	_, err = Normalize([]byte(`[7, {"question":"Q","choices":["A"],"correctIndex":1}]`))
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantEmpty bool
	}{
		{"not json", `<html>oops</html>`, false},
		{"wrong top-level type", `"hello"`, false},
		{"choices of wrong type", `[{"choices":[1,2],"correctIndex":1}]`, false},
		{"missing correct index", `[{"choices":["a","b"]}]`, false},
		{"non-numeric correct index", `[{"choices":["a","b"],"correctIndex":"two"}]`, false},
		{"fractional correct index", `[{"choices":["a","b"],"correctIndex":1.5}]`, false},
		{"correct index out of range", `[{"choices":["a","b"],"correctIndex":3}]`, false},
		{"zero correct index", `[{"choices":["a","b"],"correctIndex":0}]`, false},
		{"empty array", `[]`, true},
		{"ok false", `{"ok":false,"error":"no such exam"}`, true},
		{"no choices", `[{"question":"Q","correctIndex":1}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Normalize([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, q)
			assert.True(t, IsLoadError(err))

			var emptyErr *EmptyResultError
			var parseErr *ParseError
			if tt.wantEmpty {
				assert.True(t, errors.As(err, &emptyErr), "want EmptyResultError, got %T", err)
			} else {
				assert.True(t, errors.As(err, &parseErr), "want ParseError, got %T", err)
			}
		})
	}
}
