package service

import (
	"github.com/jinzhu/copier"
	"github.com/mockview/practice-api/internal/dto"
	"github.com/mockview/practice-api/internal/model"
	"github.com/rs/zerolog/log"
)

// Model-to-DTO shaping shared by the practice services. Flat fields go
// through copier; feedback and question projections are mapped by hand
// because their DTO shapes differ from the stored ones.

func toQuestionDTO(q *model.Question) dto.QuestionResponseDTO {
	var out dto.QuestionResponseDTO
	if err := copier.Copy(&out, q); err != nil {
		log.Error().Err(err).Uint("questionID", q.ID).Msg("Failed to map question to DTO")
	}
	out.Categories = categoryNames(q.Categories)
	return out
}

func toFeedbackDTO(f *model.Feedback) *dto.FeedbackDTO {
	if f == nil {
		return nil
	}
	return &dto.FeedbackDTO{
		Overall:      f.Overall,
		Strengths:    f.Strengths,
		Improvements: f.Improvements,
	}
}

func toAnswerDTO(a *model.Answer) dto.AnswerResponseDTO {
	var out dto.AnswerResponseDTO
	if err := copier.Copy(&out, a); err != nil {
		log.Error().Err(err).Uint("answerID", a.ID).Msg("Failed to map answer to DTO")
	}
	out.Question = toQuestionDTO(&a.Question)
	out.Feedback = toFeedbackDTO(a.Feedback)
	return out
}

func toSessionDetailDTO(session *model.Session) *dto.SessionDetailDTO {
	var out dto.SessionDetailDTO
	if err := copier.Copy(&out, session); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("Failed to map session to DTO")
	}
	out.Kind = string(session.Kind)
	out.Status = string(session.Status)
	out.Answers = make([]dto.AnswerResponseDTO, len(session.Answers))
	for i := range session.Answers {
		out.Answers[i] = toAnswerDTO(&session.Answers[i])
	}
	return &out
}

func categoryNames(categories []model.Category) []string {
	if len(categories) == 0 {
		return nil
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names
}
