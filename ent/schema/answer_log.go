package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerLog records one graded selection submitted by a quiz widget.
type AnswerLog struct {
	ent.Schema
}

func (AnswerLog) Mixin() []ent.Mixin {
	return []ent.Mixin{LogMixin{}}
}

func (AnswerLog) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			Comment("Widget instance that submitted the log"),
		field.String("exam_key").
			Default("").
			Comment("Exam key the question was requested with"),
		field.String("question_id").
			Default("").
			Comment("Question id as sent by the endpoint"),
		field.String("selected_index").
			Comment("1-based selection, as a decimal string"),
		field.String("correct_index").
			Comment("1-based correct index, as a decimal string"),
		field.Bool("is_correct"),
		field.String("difficulty").
			Default(""),
	}
}

func (AnswerLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("exam_key"),
	}
}
