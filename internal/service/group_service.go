package service

import (
	"context"
	"strconv"

	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/logger"

	"go.uber.org/zap"
)

// undefinedGroupID is the literal some clients send when the group has not
// been persisted yet; it is treated the same as an absent ID.
const undefinedGroupID = "undefined"

// GroupService owns the researcher-facing group configuration lifecycle.
type GroupService interface {
	// SaveGroup fully replaces the group row, allocating an ID when the caller
	// supplies none.
	SaveGroup(ctx context.Context, groupID string, req *dto.SaveGroupRequest) (*dto.SaveGroupResponse, error)

	// GetGroup returns one group with its questions deserialized.
	GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error)

	// ListGroups returns every persisted group row.
	ListGroups(ctx context.Context) ([]dto.GroupResponse, error)

	// DeleteQuestion removes a question by case-insensitive text match,
	// deleting the whole group when its last question goes.
	DeleteQuestion(ctx context.Context, groupID, questionText string) (*dto.MessageResponse, error)
}

type groupService struct {
	repo      domain.GroupRepository
	sequences domain.SequenceRepository
}

// NewGroupService creates a new instance of groupService
func NewGroupService(repo domain.GroupRepository, sequences domain.SequenceRepository) GroupService {
	return &groupService{
		repo:      repo,
		sequences: sequences,
	}
}

// SaveGroup implements GroupService
func (s *groupService) SaveGroup(ctx context.Context, groupID string, req *dto.SaveGroupRequest) (*dto.SaveGroupResponse, error) {
	if groupID == "" || groupID == undefinedGroupID {
		next, err := s.sequences.Next(ctx, domain.SequenceGroups)
		if err != nil {
			return nil, domain.NewInternalError("Failed to allocate group ID", err)
		}
		groupID = strconv.FormatInt(next, 10)
		logger.Get().Info("Allocated group ID", zap.String("groupId", groupID))
	}

	group := domain.NewGroup(groupID, req.FontFace, req.ColorScheme, toDomainQuestions(req.Questions))
	if err := group.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, group); err != nil {
		return nil, domain.NewInternalError("Failed to save group", err)
	}

	return &dto.SaveGroupResponse{
		Message: "Group configuration saved",
		GroupID: groupID,
	}, nil
}

// GetGroup implements GroupService
func (s *groupService) GetGroup(ctx context.Context, groupID string) (*dto.GroupResponse, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get group", err)
	}
	if group == nil {
		return nil, domain.NewGroupNotFoundError(groupID)
	}

	response := toGroupResponse(group)
	return &response, nil
}

// ListGroups implements GroupService
func (s *groupService) ListGroups(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list groups", err)
	}

	responses := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		responses = append(responses, toGroupResponse(group))
	}
	return responses, nil
}

// DeleteQuestion implements GroupService. No empty-group rows persist: when
// the last question goes, the row goes with it.
func (s *groupService) DeleteQuestion(ctx context.Context, groupID, questionText string) (*dto.MessageResponse, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get group", err)
	}
	if group == nil {
		return nil, domain.NewGroupNotFoundError(groupID)
	}
	if len(group.Questions) == 0 {
		return nil, domain.NewNotFoundError("Group has no questions to delete")
	}

	removed := group.RemoveQuestion(questionText)
	logger.Get().Info("Deleting question from group",
		zap.String("groupId", groupID),
		zap.Int("removed", removed),
		zap.Int("remaining", len(group.Questions)),
	)

	if len(group.Questions) == 0 {
		if err := s.repo.Delete(ctx, groupID); err != nil {
			return nil, domain.NewInternalError("Failed to delete group", err)
		}
		return &dto.MessageResponse{Message: "Question deleted; empty group removed"}, nil
	}

	if err := s.repo.Save(ctx, group); err != nil {
		return nil, domain.NewInternalError("Failed to rewrite group", err)
	}
	return &dto.MessageResponse{Message: "Question deleted"}, nil
}

func toDomainQuestions(payloads []dto.QuestionPayload) []domain.GroupQuestion {
	questions := make([]domain.GroupQuestion, 0, len(payloads))
	for _, p := range payloads {
		questions = append(questions, domain.GroupQuestion{
			Question:    p.Question,
			PreAnswer:   p.PreAnswer,
			Answer:      p.Answer,
			Delay:       p.Delay.String(),
			FontFace:    p.FontFace,
			ColorScheme: p.ColorScheme,
		})
	}
	return questions
}

func toGroupResponse(group *domain.Group) dto.GroupResponse {
	questions := make([]dto.QuestionPayload, 0, len(group.Questions))
	for _, q := range group.Questions {
		questions = append(questions, dto.QuestionPayload{
			Question:    q.Question,
			PreAnswer:   q.PreAnswer,
			Answer:      q.Answer,
			Delay:       dto.FlexString(q.Delay),
			FontFace:    q.FontFace,
			ColorScheme: q.ColorScheme,
		})
	}
	return dto.GroupResponse{
		GroupID:     group.ID,
		FontFace:    group.FontFace,
		ColorScheme: group.ColorScheme,
		Questions:   questions,
	}
}
