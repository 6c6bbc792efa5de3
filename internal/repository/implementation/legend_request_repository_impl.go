package implementation

import (
	"context"
	"errors"

	"talk-to-legends-be/internal/entity"
	"talk-to-legends-be/internal/mapper"
	"talk-to-legends-be/internal/model"
	"talk-to-legends-be/internal/repository/contract"
	"talk-to-legends-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LegendRequestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LegendRequestMapper
}

func NewLegendRequestRepository(db *gorm.DB) contract.LegendRequestRepository {
	return &LegendRequestRepositoryImpl{
		db:     db,
		mapper: mapper.NewLegendRequestMapper(),
	}
}

func (r *LegendRequestRepositoryImpl) Create(ctx context.Context, request *entity.LegendRequest) error {
	if request.Id == uuid.Nil {
		request.Id = uuid.New()
	}
	m := r.mapper.ToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.ToEntity(m)
	return nil
}

func (r *LegendRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.LegendRequest, error) {
	var m model.LegendRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *LegendRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.LegendRequest, error) {
	var models []*model.LegendRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *LegendRequestRepositoryImpl) IncrementVotes(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&model.LegendRequest{}).
		Where("id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LegendRequestRepositoryImpl) CreateVote(ctx context.Context, vote *entity.LegendRequestVote) error {
	if vote.Id == uuid.Nil {
		vote.Id = uuid.New()
	}
	m := r.mapper.VoteToModel(vote)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*vote = *r.mapper.VoteToEntity(m)
	return nil
}

func (r *LegendRequestRepositoryImpl) CountVotes(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.LegendRequestVote{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
