package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "defaults",
			cfg:  Config{},
			want: DefaultEndpoint + "?limit=1",
		},
		{
			name: "all filters in insertion order",
			cfg: Config{
				Endpoint:   "https://quiz.example/exec",
				Limit:      3,
				Period:     "2024-1",
				Topic:      "cheese",
				Difficulty: "hard",
				ExamKey:    "dev-img-01",
			},
			want: "https://quiz.example/exec?limit=3&period=2024-1&topic=cheese&difficulty=hard&examKey=dev-img-01",
		},
		{
			name: "empty fields omitted",
			cfg:  Config{Endpoint: "https://quiz.example/q", Difficulty: "easy"},
			want: "https://quiz.example/q?limit=1&difficulty=easy",
		},
		{
			name: "values are percent-encoded",
			cfg:  Config{Endpoint: "https://quiz.example/q", Topic: "blue cheese & wine"},
			want: "https://quiz.example/q?limit=1&topic=blue+cheese+%26+wine",
		},
		{
			name: "negative limit falls back to default",
			cfg:  Config{Endpoint: "https://quiz.example/q", Limit: -2},
			want: "https://quiz.example/q?limit=1",
		},
		{
			name: "endpoint with query string",
			cfg:  Config{Endpoint: "https://script.example/exec?v=2", Period: "am"},
			want: "https://script.example/exec?v=2&limit=1&period=am",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.cfg))
		})
	}
}
